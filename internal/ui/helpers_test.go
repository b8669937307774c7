package ui

import (
	"errors"
	"sync"

	"github.com/ramanasai/roster/internal/kinds"
)

// memStore keeps copies so in-memory previews never leak into it.
type memStore struct {
	mu       sync.Mutex
	records  []*kinds.Pet
	saves    [][]*kinds.Pet
	loadErr  error
	saveErr  error
	loadHits int
}

func clonePets(in []*kinds.Pet) []*kinds.Pet {
	out := make([]*kinds.Pet, len(in))
	for i, p := range in {
		c := *p
		out[i] = &c
	}
	return out
}

func (m *memStore) Load() ([]*kinds.Pet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadHits++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return clonePets(m.records), nil
}

func (m *memStore) Save(records []*kinds.Pet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = clonePets(records)
	m.saves = append(m.saves, clonePets(records))
	return nil
}

func (m *memStore) Close() error { return nil }

type fakeScreen struct {
	frames  []string
	drawErr error
}

func (s *fakeScreen) Draw(frame string) error {
	if s.drawErr != nil {
		return s.drawErr
	}
	s.frames = append(s.frames, frame)
	return nil
}

func (s *fakeScreen) Size() (int, int) { return 100, 30 }

type fakeNotifier struct{ messages []string }

func (n *fakeNotifier) Warn(title, message string) error {
	n.messages = append(n.messages, title+": "+message)
	return errors.New("no desktop here")
}

func rex() *kinds.Pet {
	return &kinds.Pet{ID: 1, Name: "Rex", Category: "dogs", Years: 3}
}

func pets(names ...string) []*kinds.Pet {
	out := make([]*kinds.Pet, len(names))
	for i, n := range names {
		out[i] = &kinds.Pet{ID: i + 1, Name: n, Category: "cats", Years: i}
	}
	return out
}

func key(r rune) Event { return KeyPress(Key{Code: KeyRune, Rune: r}) }

func special(c KeyCode) Event { return KeyPress(Key{Code: c}) }
