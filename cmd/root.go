package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ramanasai/roster/internal/config"
	"github.com/ramanasai/roster/internal/kinds"
	"github.com/ramanasai/roster/internal/record"
	"github.com/ramanasai/roster/internal/store"
)

var (
	cfgFile string
	cfg     config.Config
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Terminal dashboard for a JSON collection of pets or children",
	Long: `Without a subcommand roster opens the dashboard.

Examples:
	roster                                   # pets dashboard, ./data/db.json
	roster --kind children --db kids.json    # children dashboard
	roster list --format table               # print the collection
	roster age 2 +1                          # one year older`,
	SilenceUsage: true,
	RunE:         runDashboard,
}

// Execute runs the CLI. The log file, if any, is closed on return.
func Execute() error {
	defer func() {
		if logFile != nil {
			_ = logFile.Close()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default ~/.config/roster/config.yaml)")
	pf.String("kind", "", fmt.Sprintf("Record kind: %s", kindList()))
	pf.String("db", "", "Store path (default ./data/db.json, ./data/db.sqlite for sqlite)")
	pf.String("driver", "", "Store driver: json|sqlite")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		return setupLogger(cfg.Log)
	}

	rootCmd.AddCommand(tuiCmd, listCmd, addCmd, rmCmd, renameCmd, ageCmd, versionCmd)
}

func kindList() string {
	names := kinds.Names()
	return names[0] + "|" + names[1]
}

func setupLogger(lc config.LogConfig) error {
	if lc.File == "" {
		return nil
	}
	level, err := lc.SlogLevel()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
		return fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	logFile = f
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

// session is everything a command needs for one record kind.
type session[R record.Record] struct {
	kind  record.Kind[R]
	store store.Store[R]
	out   io.Writer
	log   *slog.Logger
}

// withStore opens the configured store for the configured kind and runs
// the matching action.
func withStore(cmd *cobra.Command, args []string,
	pets func(*session[*kinds.Pet], []string) error,
	children func(*session[*kinds.Child], []string) error,
) error {
	switch cfg.Kind {
	case kinds.Children:
		return runSession[*kinds.Child](cmd, kinds.ChildKind{}, args, children)
	default:
		return runSession[*kinds.Pet](cmd, kinds.PetKind{}, args, pets)
	}
}

func runSession[R record.Record](cmd *cobra.Command, kind record.Kind[R], args []string, fn func(*session[R], []string) error) error {
	s, err := openStore[R](cfg.Store, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	logger.Info("store opened", "kind", kind.Name(), "driver", cfg.Store.Driver, "path", cfg.Store.Path)
	return fn(&session[R]{kind: kind, store: s, out: cmd.OutOrStdout(), log: logger}, args)
}

func openStore[R record.Record](sc config.StoreConfig, log *slog.Logger) (store.Store[R], error) {
	raw, err := store.Open[R](sc.Driver, sc.Path)
	if err != nil {
		return nil, err
	}
	s := store.NewRetrying(raw, sc.Retries, sc.Backoff, log)
	if sc.Create {
		if err := store.Ensure[R](s); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}
