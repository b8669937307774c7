// Package ui is the dashboard engine: an input pump, a pure renderer and a
// main loop that stays generic over the record type.
package ui

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ramanasai/roster/internal/record"
	"github.com/ramanasai/roster/internal/store"
)

// Screen paints complete frames.
type Screen interface {
	Draw(frame string) error
	Size() (width, height int)
}

// Notifier surfaces non-fatal failures outside the terminal.
type Notifier interface {
	Warn(title, message string) error
}

type Options struct {
	Logger   *slog.Logger
	Notifier Notifier
	Theme    *Theme
}

// App owns the active view, the selection and the in-memory collection.
// Everything runs on the goroutine that calls Run.
type App[R record.Record] struct {
	kind     record.Kind[R]
	store    store.Store[R]
	screen   Screen
	events   <-chan Event
	log      *slog.Logger
	notifier Notifier
	theme    Theme

	view      View
	selection Selection
	records   []R
	editing   bool
	status    string
	statusErr bool
}

func New[R record.Record](kind record.Kind[R], s store.Store[R], screen Screen, events <-chan Event, opts Options) *App[R] {
	a := &App[R]{
		kind:     kind,
		store:    s,
		screen:   screen,
		events:   events,
		log:      opts.Logger,
		notifier: opts.Notifier,
		theme:    DefaultTheme,
	}
	if a.log == nil {
		a.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Theme != nil {
		a.theme = *opts.Theme
	}
	return a
}

// Load reads the collection from the store. A failure here is fatal.
func (a *App[R]) Load() error {
	records, err := a.store.Load()
	if err != nil {
		return err
	}
	a.records = records
	a.selection = a.selection.Clamp(len(records))
	a.log.Info("collection loaded", "kind", a.kind.Name(), "size", len(records))
	return nil
}

func (a *App[R]) Records() []R         { return a.records }
func (a *App[R]) Selection() Selection { return a.selection }
func (a *App[R]) View() View           { return a.view }
func (a *App[R]) Status() string       { return a.status }

// Run draws, waits for the next event and dispatches it until the quit key
// arrives. It returns nil on quit and an error only for fatal conditions;
// restoring the terminal is left to the caller.
func (a *App[R]) Run() error {
	for {
		if err := a.draw(); err != nil {
			return err
		}
		ev, ok := <-a.events
		if !ok {
			return ErrChannelClosed
		}
		switch ev.Kind {
		case EventFatal:
			a.log.Error("input failure", "error", ev.Err)
			return ev.Err
		case EventTick:
			continue
		}
		quit, err := a.handleKey(ev.Key)
		if err != nil {
			return err
		}
		if quit {
			a.log.Info("quit")
			return nil
		}
	}
}

func (a *App[R]) handleKey(k Key) (bool, error) {
	a.status = ""
	a.statusErr = false
	keys := a.kind.Keys()

	switch k.Code {
	case KeyCtrlC:
		return true, nil
	case KeyDown:
		a.selection = a.selection.Next(len(a.records))
	case KeyUp:
		a.selection = a.selection.Prev(len(a.records))
	case KeyLeft:
		a.shiftAge(-1)
	case KeyRight:
		a.shiftAge(1)
	case KeyRune:
		switch k.Rune {
		case keys.Quit:
			return true, nil
		case keys.Home:
			a.view = ViewHome
		case keys.Data:
			a.view = ViewData
		case keys.Add:
			a.add()
		case keys.Delete:
			a.remove()
		case keys.Edit:
			return false, a.rename()
		}
	}
	return false, nil
}

func (a *App[R]) add() {
	records, err := store.Append(a.store, a.kind.NewPlaceholder())
	if err != nil {
		a.fail("add", err)
		return
	}
	a.records = records
	a.selection = a.selection.Clamp(len(records))
	a.log.Info("record added", "size", len(records))
}

func (a *App[R]) remove() {
	if len(a.records) == 0 {
		a.hint(fmt.Sprintf("No %s to delete.", a.kind.Name()))
		return
	}
	idx := a.selection.Index()
	records, err := store.RemoveAt(a.store, idx)
	if err != nil {
		a.fail("delete", err)
		return
	}
	a.records = records
	a.selection = a.selection.AfterDelete(len(records))
	a.log.Info("record deleted", "index", idx, "size", len(records))
}

// rename hands the event channel to EditLine and persists the result. Only
// a failing terminal or input channel is returned as an error.
func (a *App[R]) rename() error {
	if len(a.records) == 0 {
		a.hint(fmt.Sprintf("No %s to rename.", a.kind.Name()))
		return nil
	}
	idx := a.selection.Index()

	a.editing = true
	name, err := EditLine(a.events, func(buf string) error {
		a.records[idx].SetDisplayName(buf)
		return a.draw()
	})
	a.editing = false
	if err != nil {
		return err
	}

	if name == "" {
		name = record.RandomName()
	}
	records, err := store.Update(a.store, idx, func(r R) { r.SetDisplayName(name) })
	if err != nil {
		a.fail("rename", err)
		return nil
	}
	a.records = records
	a.selection = a.selection.Clamp(len(records))
	a.log.Info("record renamed", "index", idx, "name", name)
	return nil
}

func (a *App[R]) shiftAge(delta int) {
	if len(a.records) == 0 {
		a.hint(fmt.Sprintf("No %s selected.", a.kind.Name()))
		return
	}
	idx := a.selection.Index()
	if _, ok := any(a.records[idx]).(record.Ageable); !ok {
		return
	}
	records, err := store.Update(a.store, idx, func(r R) {
		if ag, ok := any(r).(record.Ageable); ok {
			record.ShiftAge(ag, delta)
		}
	})
	if err != nil {
		a.fail("update", err)
		return
	}
	a.records = records
	a.selection = a.selection.Clamp(len(records))
	a.log.Debug("age shifted", "index", idx, "delta", delta)
}

// fail reports a non-fatal store failure and re-syncs with the store so the
// view never shows state that was not persisted.
func (a *App[R]) fail(op string, err error) {
	a.status = fmt.Sprintf("Could not %s the %s: %v", op, a.kind.Name(), err)
	a.statusErr = true
	a.log.Warn("store command failed", "op", op, "error", err)
	if a.notifier != nil {
		if nerr := a.notifier.Warn(a.kind.AppName(), a.status); nerr != nil {
			a.log.Debug("notification failed", "error", nerr)
		}
	}
	records, lerr := a.store.Load()
	if lerr != nil {
		a.log.Warn("re-sync failed", "error", lerr)
		return
	}
	a.records = records
	a.selection = a.selection.Clamp(len(records))
}

func (a *App[R]) hint(msg string) {
	a.status = msg
	a.statusErr = false
}

func (a *App[R]) frame() Frame {
	w, h := a.screen.Size()
	return Frame{
		Width:         w,
		Height:        h,
		View:          a.view,
		Selection:     a.selection,
		Editing:       a.editing,
		Status:        a.status,
		StatusIsError: a.statusErr,
	}
}

func (a *App[R]) draw() error {
	out := Render(a.kind, a.theme, a.frame(), a.records)
	if err := a.screen.Draw(out); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminal, err)
	}
	return nil
}
