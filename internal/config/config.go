package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ramanasai/roster/internal/kinds"
	"github.com/ramanasai/roster/internal/store"
)

const (
	DefaultJSONPath   = "./data/db.json"
	DefaultSQLitePath = "./data/db.sqlite"
)

type StoreConfig struct {
	Driver  string        `mapstructure:"driver"`  // "json" or "sqlite"
	Path    string        `mapstructure:"path"`    // empty picks the driver default
	Create  bool          `mapstructure:"create"`  // create an empty collection when missing
	Retries int           `mapstructure:"retries"` // attempts for recoverable failures
	Backoff time.Duration `mapstructure:"backoff"`
}

type NotifyConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type Config struct {
	Kind   string        `mapstructure:"kind"`
	Store  StoreConfig   `mapstructure:"store"`
	Tick   time.Duration `mapstructure:"tick"`
	Notify NotifyConfig  `mapstructure:"notify"`
	Log    LogConfig     `mapstructure:"log"`
}

func Default() Config {
	return Config{
		Kind: kinds.Pets,
		Store: StoreConfig{
			Driver:  store.DriverJSON,
			Path:    "",
			Create:  true,
			Retries: 3,
			Backoff: 50 * time.Millisecond,
		},
		Tick:   200 * time.Millisecond,
		Notify: NotifyConfig{Enabled: false},
		Log:    LogConfig{File: "", Level: "info"},
	}
}

// flagKeys maps persistent flag names onto config keys.
var flagKeys = map[string]string{
	"kind":   "kind",
	"db":     "store.path",
	"driver": "store.driver",
}

func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "roster", "config.yaml"), nil
}

// Load reads the config file at path, then ROSTER_* environment variables,
// then any flags in fs that were set on the command line. An empty path
// means the default location, which may be missing.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("ROSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("kind", cfg.Kind)
	v.SetDefault("store.driver", cfg.Store.Driver)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("store.create", cfg.Store.Create)
	v.SetDefault("store.retries", cfg.Store.Retries)
	v.SetDefault("store.backoff", cfg.Store.Backoff)
	v.SetDefault("tick", cfg.Tick)
	v.SetDefault("notify.enabled", cfg.Notify.Enabled)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.level", cfg.Log.Level)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return cfg, fmt.Errorf("config flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config read: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}
	return cfg.normalize()
}

func (c Config) normalize() (Config, error) {
	kind, err := kinds.Normalize(c.Kind)
	if err != nil {
		return c, err
	}
	c.Kind = kind

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case "", store.DriverJSON:
		c.Store.Driver = store.DriverJSON
		if c.Store.Path == "" {
			c.Store.Path = DefaultJSONPath
		}
	case store.DriverSQLite:
		if c.Store.Path == "" {
			c.Store.Path = DefaultSQLitePath
		}
	default:
		return c, fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.Store.Retries < 1 {
		c.Store.Retries = 1
	}
	if c.Store.Backoff < 0 {
		c.Store.Backoff = 0
	}
	if c.Tick <= 0 {
		c.Tick = Default().Tick
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return c, err
	}
	return c, nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(l.Level) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return lvl, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}
