package ui

// View is the screen shown in the content region.
type View int

const (
	ViewHome View = iota
	ViewData
)

func (v View) String() string {
	if v == ViewData {
		return "data"
	}
	return "home"
}

// Selection is a cursor over a circular list. The zero value selects index 0,
// which is also the resting position for an empty list.
type Selection struct {
	index int
}

func (s Selection) Index() int { return s.index }

// Valid reports whether the index can be dereferenced in a list of n records.
func (s Selection) Valid(n int) bool { return s.index >= 0 && s.index < n }

func (s Selection) Next(n int) Selection {
	if n <= 0 {
		return Selection{}
	}
	return Selection{index: (s.index + 1) % n}
}

func (s Selection) Prev(n int) Selection {
	if n <= 0 {
		return Selection{}
	}
	return Selection{index: (s.index - 1 + n) % n}
}

// AfterDelete moves the cursor back by one, stopping at 0, for a list that
// now holds n records.
func (s Selection) AfterDelete(n int) Selection {
	return Selection{index: max(s.index-1, 0)}.Clamp(n)
}

// Clamp keeps the index inside a list of n records.
func (s Selection) Clamp(n int) Selection {
	switch {
	case n <= 0 || s.index < 0:
		return Selection{}
	case s.index >= n:
		return Selection{index: n - 1}
	}
	return s
}
