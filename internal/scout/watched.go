package scout

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// WatchedStore records URLs that have already been served, so a story is
// handed to clients at most once across batches.
type WatchedStore struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func OpenWatched(dbPath string) (*WatchedStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
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

	w := &WatchedStore{readDB: readDB, writeDB: writeDB}
	if err := w.init(); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func (w *WatchedStore) init() error {
	_, err := w.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS watched (
			url        TEXT PRIMARY KEY,
			watched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (w *WatchedStore) Close() error {
	var errs []error
	if w.readDB != nil {
		errs = append(errs, w.readDB.Close())
	}
	if w.writeDB != nil {
		errs = append(errs, w.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Seen reports whether url has been served before.
func (w *WatchedStore) Seen(url string) (bool, error) {
	var one int
	err := w.readDB.QueryRow(`SELECT 1 FROM watched WHERE url = ?`, url).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying watched: %w", err)
	}
	return true, nil
}

// Mark records url as served. Marking the same url again is a no-op.
func (w *WatchedStore) Mark(url string) error {
	if _, err := w.writeDB.Exec(`INSERT OR IGNORE INTO watched (url) VALUES (?)`, url); err != nil {
		return fmt.Errorf("marking watched: %w", err)
	}
	return nil
}

// Count returns the number of URLs served so far.
func (w *WatchedStore) Count() (int, error) {
	var n int
	if err := w.readDB.QueryRow(`SELECT COUNT(*) FROM watched`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting watched: %w", err)
	}
	return n, nil
}
