// Package store persists a whole record collection and implements the
// read-modify-write cycle every mutating command goes through.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
)

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

var (
	ErrRead  = errors.New("error reading the store")
	ErrParse = errors.New("error parsing the store")
	ErrWrite = errors.New("error writing the store")
	// ErrIndex means the selected position is no longer in the persisted
	// collection, usually because another process changed it.
	ErrIndex = errors.New("record not in store")
)

// Store loads and saves an entire collection. There are no partial updates
// and no cross-process locking.
type Store[R any] interface {
	Load() ([]R, error)
	Save(records []R) error
	Close() error
}

// Open returns the backend for driver.
func Open[R any](driver, path string) (Store[R], error) {
	switch driver {
	case "", DriverJSON:
		return NewJSONFile[R](path), nil
	case DriverSQLite:
		return OpenSQLite[R](path)
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}

// IsTransient reports whether retrying the operation may succeed. Missing
// files, permission errors and malformed content are permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || errors.Is(err, ErrParse) {
		return false
	}
	return errors.Is(err, ErrRead) || errors.Is(err, ErrWrite)
}

// Ensure creates an empty collection when the store does not exist yet.
func Ensure[R any](s Store[R]) error {
	_, err := s.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return s.Save([]R{})
	}
	return err
}

// Append reads the collection, appends rec and writes it back.
func Append[R any](s Store[R], rec R) ([]R, error) {
	records, err := s.Load()
	if err != nil {
		return nil, err
	}
	records = append(records, rec)
	if err := s.Save(records); err != nil {
		return nil, err
	}
	return records, nil
}

// RemoveAt reads the collection, drops the record at index i and writes it back.
func RemoveAt[R any](s Store[R], i int) ([]R, error) {
	records, err := s.Load()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(records) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrIndex, i, len(records))
	}
	records = slices.Delete(records, i, i+1)
	if err := s.Save(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Update reads the collection, applies fn to the record at index i and
// writes it back.
func Update[R any](s Store[R], i int, fn func(R)) ([]R, error) {
	records, err := s.Load()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(records) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrIndex, i, len(records))
	}
	fn(records[i])
	if err := s.Save(records); err != nil {
		return nil, err
	}
	return records, nil
}
