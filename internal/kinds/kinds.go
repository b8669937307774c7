// Package kinds holds the concrete record types the dashboard can manage.
package kinds

import (
	"fmt"
	"strings"

	"github.com/ramanasai/roster/internal/record"
)

const (
	Pets     = "pets"
	Children = "children"
)

var (
	_ record.Record     = (*Pet)(nil)
	_ record.Ageable    = (*Pet)(nil)
	_ record.Kind[*Pet] = PetKind{}

	_ record.Record       = (*Child)(nil)
	_ record.Ageable      = (*Child)(nil)
	_ record.Kind[*Child] = ChildKind{}
)

// Names lists the kinds accepted by Normalize.
func Names() []string { return []string{Pets, Children} }

// Normalize maps user input such as "Pet" or "child" to a kind name.
func Normalize(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "pet", "pets":
		return Pets, nil
	case "child", "children":
		return Children, nil
	}
	return "", fmt.Errorf("unknown kind %q (want one of %s)", name, strings.Join(Names(), ", "))
}
