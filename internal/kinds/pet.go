package kinds

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/ramanasai/roster/internal/record"
)

const timeLayout = "2006-01-02 15:04:05 MST"

// Pet is a stored pet.
type Pet struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Years     int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Pet) DisplayName() string        { return p.Name }
func (p *Pet) SetDisplayName(name string) { p.Name = name }

func (p *Pet) Row() []record.Cell {
	return []record.Cell{
		{Label: "ID", Value: strconv.Itoa(p.ID), Width: 10},
		{Label: "Name", Value: p.Name, Width: 20},
		{Label: "Category", Value: p.Category, Width: 20},
		{Label: "Age", Value: strconv.Itoa(p.Years), Width: 10},
		{Label: "Created At", Value: p.CreatedAt.UTC().Format(timeLayout), Width: 40},
	}
}

func (p *Pet) Age() int       { return p.Years }
func (p *Pet) SetAge(age int) { p.Years = age }

// PetKind describes pets to the dashboard.
type PetKind struct{}

func (PetKind) Name() string    { return "pet" }
func (PetKind) Title() string   { return "Pets" }
func (PetKind) AppName() string { return "pet CLI" }

func (PetKind) MenuLabels() []string {
	return []string{"Home", "Pets", "Add", "Edit Name", "Delete", "Quit"}
}

func (PetKind) HelpText() []string {
	return []string{
		"Press 'p' to access pets, 'a' to add random new pets,",
		"'e' to edit the name of currently selected pet",
		"and 'd' to delete the currently selected pet.",
		"Use up/down to move and left/right to change the age.",
	}
}

func (PetKind) Keys() record.Keys {
	return record.Keys{Quit: 'q', Home: 'h', Data: 'p', Add: 'a', Delete: 'd', Edit: 'e'}
}

var petCategories = []string{"cats", "dogs"}

func (PetKind) NewPlaceholder() *Pet {
	return &Pet{
		ID:        record.RandomID(),
		Name:      record.RandomName(),
		Category:  petCategories[rand.Intn(len(petCategories))],
		Years:     1 + rand.Intn(14),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
