package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Age     int       `json:"age"`
	Created time.Time `json:"created_at"`
}

func sample() []*item {
	at := time.Date(2020, 5, 1, 12, 30, 0, 0, time.UTC)
	return []*item{
		{ID: 1, Name: "Rex", Age: 3, Created: at},
		{ID: 2, Name: "Tom", Age: 0, Created: at.Add(time.Hour)},
		{ID: 3, Name: "Kit", Age: 12, Created: at.Add(2 * time.Hour)},
	}
}

func backends(t *testing.T) map[string]Store[*item] {
	dir := t.TempDir()
	sq, err := OpenSQLite[*item](filepath.Join(dir, "db.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store[*item]{
		DriverJSON:   NewJSONFile[*item](filepath.Join(dir, "data", "db.json")),
		DriverSQLite: sq,
	}
}

func TestRoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(sample()))
			got, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, sample(), got)
		})
	}
}

func TestSaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s := NewJSONFile[*item](path)
	require.NoError(t, s.Save(nil))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestJSONIsCompactArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s := NewJSONFile[*item](path)
	require.NoError(t, s.Save(sample()[:1]))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"name":"Rex","age":3,"created_at":"2020-05-01T12:30:00Z"}]`, string(b))
}

func TestJSONSaveKeepsFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")
	s := NewJSONFile[*item](path)

	require.NoError(t, s.Save(sample()))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())

	require.NoError(t, os.Chmod(path, 0o600))
	require.NoError(t, s.Save(sample()[:1]))
	fi, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files left behind")
}

func TestAddThenDeleteKeepsOrder(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(sample()))

			records, err := Append(s, &item{ID: 99, Name: "New"})
			require.NoError(t, err)
			require.Len(t, records, 4)

			records, err = RemoveAt(s, len(records)-1)
			require.NoError(t, err)
			assert.Equal(t, sample(), records)

			stored, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, sample(), stored)
		})
	}
}

func TestUpdate(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(sample()))
			records, err := Update(s, 1, func(it *item) { it.Name = "Rover" })
			require.NoError(t, err)
			assert.Equal(t, "Rover", records[1].Name)

			stored, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, records, stored)
		})
	}
}

func TestIndexOutOfRange(t *testing.T) {
	s := NewJSONFile[*item](filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, s.Save(sample()))

	_, err := RemoveAt(s, 3)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = Update(s, -1, func(*item) {})
	assert.ErrorIs(t, err, ErrIndex)

	stored, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestMissingAndMalformed(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONFile[*item](filepath.Join(dir, "nope", "db.json"))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrRead)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, IsTransient(err))

	require.NoError(t, Ensure[*item](s))
	records, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, records)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"id": "x"`), 0o644))
	_, err = NewJSONFile[*item](bad).Load()
	assert.ErrorIs(t, err, ErrParse)
	assert.False(t, IsTransient(err))
	assert.Error(t, Ensure[*item](NewJSONFile[*item](bad)))
}

func TestSQLitePathWithURICharacters(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("'?' is not allowed in windows file names")
	}
	path := filepath.Join(t.TempDir(), "my pets?v=1#x%20.sqlite")
	s, err := OpenSQLite[*item](path)
	require.NoError(t, err)
	require.NoError(t, s.Save(sample()))
	require.NoError(t, s.Close())

	_, err = os.Stat(path)
	require.NoError(t, err, "database must live at the literal path")

	s, err = OpenSQLite[*item](path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sample(), got)
}

func TestSQLiteDSN(t *testing.T) {
	dsn := sqliteDSN("/tmp/a?b#c.sqlite")
	assert.True(t, strings.HasPrefix(dsn, "file:/tmp/a%3Fb%23c.sqlite?_pragma="), dsn)
	assert.Contains(t, sqliteDSN("data/db.sqlite"), "file:data/db.sqlite?")
}

func TestOpenDrivers(t *testing.T) {
	dir := t.TempDir()
	s, err := Open[*item]("", filepath.Join(dir, "db.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONFile[*item]{}, s)

	s, err = Open[*item](DriverSQLite, filepath.Join(dir, "db.sqlite"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite[*item]{}, s)
	require.NoError(t, s.Close())

	_, err = Open[*item]("csv", "x")
	assert.Error(t, err)
}

type flaky struct {
	failures int
	err      error
	calls    int
	records  []*item
}

func (f *flaky) Load() ([]*item, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return f.records, nil
}

func (f *flaky) Save(records []*item) error {
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	f.records = records
	return nil
}

func (f *flaky) Close() error { return nil }

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestRetryingRecoversFromTransientFailures(t *testing.T) {
	inner := &flaky{failures: 2, err: ErrRead, records: sample()}
	r := NewRetrying[*item](inner, 3, 10*time.Millisecond, quietLogger())
	var waits []time.Duration
	r.sleep = func(d time.Duration) { waits = append(waits, d) }

	got, err := r.Load()
	require.NoError(t, err)
	assert.Equal(t, sample(), got)
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, waits)
}

func TestRetryingGivesUp(t *testing.T) {
	inner := &flaky{failures: 10, err: ErrWrite}
	r := NewRetrying[*item](inner, 3, time.Millisecond, quietLogger())
	r.sleep = func(time.Duration) {}

	err := r.Save(sample())
	assert.ErrorIs(t, err, ErrWrite)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingSkipsPermanentFailures(t *testing.T) {
	for name, cause := range map[string]error{
		"missing":    errors.Join(ErrRead, fs.ErrNotExist),
		"permission": errors.Join(ErrWrite, fs.ErrPermission),
		"malformed":  fmt.Errorf("%w: db.json: unexpected end of JSON input", ErrParse),
		"index":      ErrIndex,
	} {
		t.Run(name, func(t *testing.T) {
			inner := &flaky{failures: 10, err: cause}
			r := NewRetrying[*item](inner, 5, time.Millisecond, quietLogger())
			r.sleep = func(time.Duration) { t.Fatal("should not sleep") }

			_, err := r.Load()
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, 1, inner.calls)
		})
	}
}

func TestRetryingMalformedFileReadsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":`), 0o644))

	r := NewRetrying[*item](NewJSONFile[*item](path), 3, time.Millisecond, quietLogger())
	slept := 0
	r.sleep = func(time.Duration) { slept++ }

	_, err := r.Load()
	assert.ErrorIs(t, err, ErrParse)
	assert.Zero(t, slept)
}
