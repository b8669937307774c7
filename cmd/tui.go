package cmd

import (
	"context"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ramanasai/roster/internal/kinds"
	"github.com/ramanasai/roster/internal/notify"
	"github.com/ramanasai/roster/internal/record"
	"github.com/ramanasai/roster/internal/ui"
)

// tuiCmd opens the dashboard; the root command does the same.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the dashboard",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	return withStore(cmd, args, dashboard[*kinds.Pet], dashboard[*kinds.Child])
}

// dashboard owns the terminal until the quit key. The terminal is restored
// on every return path; the screen is cleared only on a normal quit.
func dashboard[R record.Record](s *session[R], _ []string) error {
	// fail on an unreadable store before taking over the terminal
	if _, err := s.store.Load(); err != nil {
		s.log.Error("startup load failed", "error", err)
		return err
	}

	term := ui.OpenTerminal()
	defer term.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := ui.StartPump(ctx, term, cfg.Tick)

	app := ui.New(s.kind, s.store, term, events, ui.Options{
		Logger:   s.log,
		Notifier: notify.NewDesktop(cfg.Notify.Enabled),
	})
	if err := app.Load(); err != nil {
		return err
	}
	if err := app.Run(); err != nil {
		s.log.Error("dashboard stopped", "error", err)
		return err
	}

	cancel()
	term.Close()
	clearScreen(s)
	return nil
}

func clearScreen[R record.Record](s *session[R]) {
	c := exec.Command("clear")
	if runtime.GOOS == "windows" {
		c = exec.Command("cmd", "/c", "cls")
	}
	c.Stdout = os.Stdout
	if err := c.Run(); err != nil {
		s.log.Debug("clear screen failed", "error", err)
	}
}
