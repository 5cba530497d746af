// Package sqlite owns the SQLite connection used by the idea store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"casa_criativa/internal/storage"
)

const ideaTable = "ideas"

const schema = `
CREATE TABLE IF NOT EXISTS ` + ideaTable + ` (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	image TEXT,
	title TEXT NOT NULL,
	category TEXT NOT NULL,
	description TEXT NOT NULL,
	link TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

var pragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"foreign_keys(1)",
	"synchronous(NORMAL)",
}

type Storage struct {
	db *sql.DB
}

// New opens (creating if needed) the database file at storagePath.
func New(ctx context.Context, storagePath string) (*Storage, error) {
	const op = "storage.sqlite.New"

	if dir := filepath.Dir(storagePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrStorageUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite", dsn(storagePath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrStorageUnavailable, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrStorageUnavailable, err)
	}

	return &Storage{db: db}, nil
}

func dsn(path string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}

	return "file:" + path + "?" + q.Encode()
}

// EnsureSchema creates the ideas table when it is missing. Safe to call repeatedly.
func (s *Storage) EnsureSchema(ctx context.Context) error {
	const op = "storage.sqlite.EnsureSchema"

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w: %w", op, storage.ErrStorageUnavailable, err)
	}

	return nil
}

func (s *Storage) DB() *sql.DB {
	return s.db
}

func (s *Storage) Stop() error {
	return s.db.Close()
}
