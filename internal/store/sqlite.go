package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// SQLite keeps one row per record, ordered by position. Each save replaces
// the whole table inside one transaction.
type SQLite[R any] struct {
	Path string
	db   *sql.DB
}

func OpenSQLite[R any](path string) (*SQLite[R], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return &SQLite[R]{Path: path, db: db}, nil
}

// sqliteDSN builds a file: URI; the path is escaped so '?', '#' and '%'
// stay part of the file name.
func sqliteDSN(path string) string {
	escaped := (&url.URL{Path: filepath.ToSlash(path)}).EscapedPath()
	return "file:" + escaped +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
}

func migrate(db *sql.DB) error {
	b, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := db.Exec(string(b)); err != nil {
		return errors.Join(fmt.Errorf("schema apply failed"), err)
	}
	return nil
}

func (s *SQLite[R]) Load() ([]R, error) {
	rows, err := s.db.Query(`SELECT body FROM records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer rows.Close()

	records := []R{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
		var rec R
		if err := json.Unmarshal([]byte(body), &rec); err != nil {
			return nil, fmt.Errorf("%w: %s: row %d: %w", ErrParse, s.Path, len(records), err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return records, nil
}

func (s *SQLite[R]) Save(records []R) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	stmt, err := tx.Prepare(`INSERT INTO records(position, body) VALUES(?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer stmt.Close()

	for i, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		if _, err := stmt.Exec(i, string(b)); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (s *SQLite[R]) Close() error { return s.db.Close() }
