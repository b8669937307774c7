package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("roster", pflag.ContinueOnError)
	fs.String("kind", "", "")
	fs.String("db", "", "")
	fs.String("driver", "", "")
	return fs
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "pets", cfg.Kind)
	assert.Equal(t, "json", cfg.Store.Driver)
	assert.Equal(t, DefaultJSONPath, cfg.Store.Path)
	assert.True(t, cfg.Store.Create)
	assert.Equal(t, 3, cfg.Store.Retries)
	assert.Equal(t, 50*time.Millisecond, cfg.Store.Backoff)
	assert.Equal(t, 200*time.Millisecond, cfg.Tick)
	assert.False(t, cfg.Notify.Enabled)
	assert.Empty(t, cfg.Log.File)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
kind: child
store:
  driver: sqlite
  retries: 5
  backoff: 10ms
tick: 1s
notify:
  enabled: true
log:
  file: /tmp/roster.log
  level: debug
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "children", cfg.Kind)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, DefaultSQLitePath, cfg.Store.Path)
	assert.Equal(t, 5, cfg.Store.Retries)
	assert.Equal(t, 10*time.Millisecond, cfg.Store.Backoff)
	assert.Equal(t, time.Second, cfg.Tick)
	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, "/tmp/roster.log", cfg.Log.File)

	lvl, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestEnvAndFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "kind: pets\nstore:\n  path: from-file.json\n")
	t.Setenv("ROSTER_STORE_PATH", "from-env.json")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.Store.Path)

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--db", "from-flag.db", "--driver", "sqlite", "--kind", "Children"}))
	cfg, err = Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "from-flag.db", cfg.Store.Path)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "children", cfg.Kind)
}

func TestUnsetFlagsKeepFileValues(t *testing.T) {
	path := writeConfig(t, "kind: children\n")
	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "children", cfg.Kind)
	assert.Equal(t, DefaultJSONPath, cfg.Store.Path)
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, body := range map[string]string{
		"kind":   "kind: hamsters\n",
		"driver": "store:\n  driver: postgres\n",
		"level":  "log:\n  level: loud\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body), nil)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeClampsNumbers(t *testing.T) {
	cfg := Default()
	cfg.Store.Retries = 0
	cfg.Store.Backoff = -time.Second
	cfg.Tick = 0

	got, err := cfg.normalize()
	require.NoError(t, err)
	assert.Equal(t, 1, got.Store.Retries)
	assert.Zero(t, got.Store.Backoff)
	assert.Equal(t, 200*time.Millisecond, got.Tick)
}
