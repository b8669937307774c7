package kinds

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/ramanasai/roster/internal/record"
)

// Child is a stored child.
type Child struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Years     int       `json:"age"`
	Birthdate time.Time `json:"birthdate"`
}

func (c *Child) DisplayName() string        { return c.Name }
func (c *Child) SetDisplayName(name string) { c.Name = name }
func (c *Child) Age() int                   { return c.Years }
func (c *Child) SetAge(age int)             { c.Years = age }

func (c *Child) Row() []record.Cell {
	return []record.Cell{
		{Label: "ID", Value: strconv.Itoa(c.ID), Width: 10},
		{Label: "Name", Value: c.Name, Width: 30},
		{Label: "Age", Value: strconv.Itoa(c.Years), Width: 10},
		{Label: "Created At", Value: c.Birthdate.UTC().Format(timeLayout), Width: 50},
	}
}

// ChildKind describes children to the dashboard.
type ChildKind struct{}

func (ChildKind) Name() string    { return "child" }
func (ChildKind) Title() string   { return "Children" }
func (ChildKind) AppName() string { return "Child CLI" }

func (ChildKind) MenuLabels() []string {
	return []string{"Home", "Children", "Add", "Edit Name", "Delete", "Quit"}
}

func (ChildKind) HelpText() []string {
	return []string{
		"Press 'c' to access children, 'a' to add random new children,",
		"'e' to edit the name of currently selected child",
		"and 'd' to delete the currently selected child.",
		"Use up/down to move and left/right to change the age.",
	}
}

func (ChildKind) Keys() record.Keys {
	return record.Keys{Quit: 'q', Home: 'h', Data: 'c', Add: 'a', Delete: 'd', Edit: 'e'}
}

func (ChildKind) NewPlaceholder() *Child {
	return &Child{
		ID:        record.RandomID(),
		Name:      record.RandomName(),
		Years:     1 + rand.Intn(14),
		Birthdate: time.Now().UTC().Truncate(time.Second),
	}
}
