// Package record defines the capability contract every displayable entity
// implements so the dashboard can stay ignorant of concrete fields.
package record

import (
	"math"
	"math/rand"
)

// Record is one entity instance in a managed collection.
type Record interface {
	DisplayName() string
	SetDisplayName(name string)
	// Row returns the labeled cells shown in the detail table.
	Row() []Cell
}

// Cell is one labeled value of a detail row. Width is a percentage of the
// detail pane.
type Cell struct {
	Label string
	Value string
	Width int
}

// Keys holds the mnemonic runes a kind binds to the top-level commands.
type Keys struct {
	Quit   rune
	Home   rune
	Data   rune
	Add    rune
	Delete rune
	Edit   rune
}

// Kind carries the per-type information that does not depend on an instance.
type Kind[R Record] interface {
	// Name is the singular noun used in messages, e.g. "pet".
	Name() string
	// Title names the collection, e.g. "Pets".
	Title() string
	// AppName is used in chrome text.
	AppName() string
	MenuLabels() []string
	HelpText() []string
	Keys() Keys
	// NewPlaceholder returns a randomly populated record.
	NewPlaceholder() R
}

// Ageable is implemented by records with a non-negative age.
type Ageable interface {
	Age() int
	SetAge(age int)
}

// IncrementAge adds amount to the age, saturating at math.MaxInt. A
// non-positive amount leaves the age unchanged.
func IncrementAge(a Ageable, amount int) {
	if amount <= 0 {
		return
	}
	age := max(a.Age(), 0)
	if age > math.MaxInt-amount {
		a.SetAge(math.MaxInt)
		return
	}
	a.SetAge(age + amount)
}

// DecrementAge subtracts amount from the age, saturating at zero. A
// non-positive amount leaves the age unchanged.
func DecrementAge(a Ageable, amount int) {
	if amount <= 0 {
		return
	}
	if a.Age() <= amount {
		a.SetAge(0)
		return
	}
	a.SetAge(a.Age() - amount)
}

// ShiftAge moves the age by delta in either direction.
func ShiftAge(a Ageable, delta int) {
	switch {
	case delta == math.MinInt:
		a.SetAge(0)
	case delta < 0:
		DecrementAge(a, -delta)
	default:
		IncrementAge(a, delta)
	}
}

const (
	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// NameLength is the length of generated names.
	NameLength = 10
)

// RandomName returns a random alphanumeric name of NameLength characters.
func RandomName() string {
	b := make([]byte, NameLength)
	for i := range b {
		b[i] = alphanumeric[rand.Intn(len(alphanumeric))]
	}
	return string(b)
}

// RandomID returns an identifier in [0, 9999999). Collisions are not checked.
func RandomID() int {
	return rand.Intn(9999999)
}
