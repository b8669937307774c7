package ui

import (
	"errors"
	"fmt"
)

var (
	// ErrTerminal means the terminal could not be read or drawn to.
	ErrTerminal = errors.New("terminal failure")
	// ErrChannelClosed means the input pump went away.
	ErrChannelClosed = errors.New("input channel closed")
)

type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyBackspace
	KeyEsc
	KeyCtrlC
	KeyOther
)

// Key is one decoded key press. Rune is set only for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

func (k Key) String() string {
	switch k.Code {
	case KeyRune:
		return string(k.Rune)
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyEsc:
		return "esc"
	case KeyCtrlC:
		return "ctrl+c"
	}
	return "other"
}

type EventKind int

const (
	EventKey EventKind = iota
	EventTick
	// EventFatal carries an error the consumer cannot recover from.
	EventFatal
)

type Event struct {
	Kind EventKind
	Key  Key
	Err  error
}

func KeyPress(k Key) Event { return Event{Kind: EventKey, Key: k} }
func Tick() Event          { return Event{Kind: EventTick} }

func fatal(err error) Event { return Event{Kind: EventFatal, Err: err} }

func (e Event) String() string {
	switch e.Kind {
	case EventKey:
		return "key " + e.Key.String()
	case EventTick:
		return "tick"
	}
	return fmt.Sprintf("fatal: %v", e.Err)
}
