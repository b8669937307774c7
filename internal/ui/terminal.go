package ui

import (
	"errors"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// Terminal drives the real terminal through a bubbletea program: raw mode,
// the alternate screen and key decoding are bubbletea's, while frames come
// from our own loop. Close restores the terminal and must run on every exit
// path.
type Terminal struct {
	program *tea.Program
	keys    chan Key
	errs    chan error
	done    chan struct{}
	exited  chan struct{}
	width   atomic.Int64
	height  atomic.Int64
	once    sync.Once
}

type frameMsg string

type bridgeModel struct {
	t     *Terminal
	frame string
}

// OpenTerminal starts the program in the background. Extra options are
// passed to tea.NewProgram after the alternate-screen option.
func OpenTerminal(opts ...tea.ProgramOption) *Terminal {
	t := &Terminal{
		keys:   make(chan Key, 64),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	t.program = tea.NewProgram(bridgeModel{t: t}, opts...)

	go func() {
		defer close(t.exited)
		_, err := t.program.Run()
		select {
		case <-t.done:
			return
		default:
		}
		if err == nil {
			err = errors.New("terminal program exited")
		}
		t.errs <- err
	}()
	return t
}

func (t *Terminal) Keys() <-chan Key     { return t.keys }
func (t *Terminal) Errors() <-chan error { return t.errs }

func (t *Terminal) Size() (int, int) {
	return int(t.width.Load()), int(t.height.Load())
}

func (t *Terminal) Draw(frame string) error {
	select {
	case <-t.exited:
		return errors.New("terminal program is not running")
	default:
	}
	t.program.Send(frameMsg(frame))
	return nil
}

// Close stops the program and waits until the terminal is restored. It is
// safe to call more than once.
func (t *Terminal) Close() {
	t.once.Do(func() {
		close(t.done)
		t.program.Quit()
		<-t.exited
	})
}

func (m bridgeModel) Init() tea.Cmd { return nil }

func (m bridgeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = string(msg)
	case tea.WindowSizeMsg:
		m.t.width.Store(int64(msg.Width))
		m.t.height.Store(int64(msg.Height))
	case tea.KeyMsg:
		for _, k := range keysFromMsg(msg) {
			select {
			case m.t.keys <- k:
			case <-m.t.done:
				return m, nil
			}
		}
	}
	return m, nil
}

func (m bridgeModel) View() string { return m.frame }

func keysFromMsg(msg tea.KeyMsg) []Key {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return []Key{{Code: KeyOther}}
		}
		keys := make([]Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, Key{Code: KeyRune, Rune: r})
		}
		return keys
	case tea.KeySpace:
		return []Key{{Code: KeyRune, Rune: ' '}}
	case tea.KeyUp:
		return []Key{{Code: KeyUp}}
	case tea.KeyDown:
		return []Key{{Code: KeyDown}}
	case tea.KeyLeft:
		return []Key{{Code: KeyLeft}}
	case tea.KeyRight:
		return []Key{{Code: KeyRight}}
	case tea.KeyEnter:
		return []Key{{Code: KeyEnter}}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []Key{{Code: KeyBackspace}}
	case tea.KeyEsc:
		return []Key{{Code: KeyEsc}}
	case tea.KeyCtrlC:
		return []Key{{Code: KeyCtrlC}}
	}
	return []Key{{Code: KeyOther}}
}
