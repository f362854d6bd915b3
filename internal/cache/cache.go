package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists the most recently fetched news payload. One logical value:
// the raw /news body plus the time it was fetched. Every successful fetch
// overwrites it wholesale; there is no expiry beyond an explicit Clear.
type Cache struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

const (
	payloadKey   = "latest_news"
	fetchedAtKey = "fetched_at"
)

func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	c := &Cache{readDB: readDB, writeDB: writeDB}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	_, err := c.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	var errs []error
	if c.readDB != nil {
		errs = append(errs, c.readDB.Close())
	}
	if c.writeDB != nil {
		errs = append(errs, c.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Read returns the cached payload bytes, or ok=false when nothing is cached.
func (c *Cache) Read() ([]byte, bool, error) {
	var value string
	err := c.readDB.QueryRow("SELECT value FROM kv WHERE key = ?", payloadKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cached payload: %w", err)
	}
	return []byte(value), true, nil
}

// Write stores raw as the latest payload, replacing whatever was there.
func (c *Cache) Write(raw []byte) error {
	tx, err := c.writeDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsert := `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := tx.Exec(upsert, payloadKey, string(raw)); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}
	if _, err := tx.Exec(upsert, fetchedAtKey, time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing fetch time: %w", err)
	}
	return tx.Commit()
}

// Clear drops the cached payload. The next popup open refetches.
func (c *Cache) Clear() error {
	_, err := c.writeDB.Exec("DELETE FROM kv WHERE key IN (?, ?)", payloadKey, fetchedAtKey)
	if err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// FetchedAt returns when the cached payload was written, ok=false when
// nothing is cached or the stored timestamp is unreadable.
func (c *Cache) FetchedAt() (time.Time, bool) {
	var value string
	err := c.readDB.QueryRow("SELECT value FROM kv WHERE key = ?", fetchedAtKey).Scan(&value)
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
