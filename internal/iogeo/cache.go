package iogeo

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// responseCache keeps raw bodies of detail responses in SQLite.
type responseCache struct {
	path string
	db   *sql.DB
}

const cacheDDL = `CREATE TABLE IF NOT EXISTS responses (
	key TEXT PRIMARY KEY,
	body BLOB NOT NULL,
	created_at INTEGER NOT NULL
)`

func openCache(path string) (*responseCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, CacheError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, CacheError(path, err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(cacheDDL); err != nil {
		db.Close()
		return nil, CacheError(path, err)
	}
	return &responseCache{path: path, db: db}, nil
}

func (c *responseCache) get(ctx context.Context, key string) ([]byte, bool, error) {
	var body []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT body FROM responses WHERE key = ?", key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, CacheError(c.path, err)
	}
	return body, true, nil
}

func (c *responseCache) put(ctx context.Context, key string, body []byte) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO responses (key, body, created_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body,
		created_at = excluded.created_at`,
		key, body, time.Now().Unix(),
	)
	if err != nil {
		return CacheError(c.path, err)
	}
	return nil
}

func (c *responseCache) close() error {
	return c.db.Close()
}
