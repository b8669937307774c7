package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONFile stores the collection as one JSON array in a file.
type JSONFile[R any] struct {
	Path string
}

func NewJSONFile[R any](path string) *JSONFile[R] {
	return &JSONFile[R]{Path: path}
}

func (f *JSONFile[R]) Load() ([]R, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	var records []R
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, f.Path, err)
	}
	return records, nil
}

func (f *JSONFile[R]) Save(records []R) error {
	if records == nil {
		records = []R{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(f.Path); err == nil {
		perm = fi.Mode().Perm()
	}
	if err := atomicWriteFile(dir, ".db-*.json", f.Path, b, perm); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (f *JSONFile[R]) Close() error { return nil }

// atomicWriteFile writes b to a synced temp file in dir and renames it over
// path, so readers see either the old or the new content.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	tf, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := tf.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := tf.Write(b); err != nil {
		_ = tf.Close()
		return err
	}
	if err := tf.Sync(); err != nil {
		_ = tf.Close()
		return err
	}
	if err := tf.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
