// Package lookup handles the SQLite lookup cache derived from the canonical
// map. The cache is rebuilt wholesale from the persisted artifact, never
// patched incrementally.
package lookup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/quilldocs/quill/internal/config"
	"github.com/quilldocs/quill/internal/merge"
	"github.com/quilldocs/quill/internal/naming"
)

// schemaVersion is bumped when the cache layout changes; an incompatible
// cache is dropped and rebuilt.
const schemaVersion = 1

// ErrNotFound indicates the requested name is not in the lookup cache,
// neither exactly nor by wildcard containment.
var ErrNotFound = errors.New("name not found in lookup cache")

// Database is the lookup cache handle.
type Database struct {
	db *sql.DB
}

// Open opens or creates the lookup cache under <corpus>/.quill/lookup.db.
func Open(corpusPath string) (*Database, error) {
	dbDir := filepath.Join(corpusPath, config.DerivedDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", config.DerivedDir, err)
	}

	dbPath := filepath.Join(dbDir, "lookup.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup cache: %w", err)
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database handle.
func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) initialize() error {
	if _, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS entries (
			name       TEXT PRIMARY KEY,
			path       TEXT NOT NULL,
			summary    TEXT NOT NULL DEFAULT '',
			is_pattern INTEGER NOT NULL DEFAULT 0
		);
	`); err != nil {
		return fmt.Errorf("failed to initialize lookup cache: %w", err)
	}

	var stored string
	err := d.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = d.db.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)`,
			strconv.Itoa(schemaVersion))
		return err
	case err != nil:
		return fmt.Errorf("failed to read cache schema version: %w", err)
	}

	if stored != strconv.Itoa(schemaVersion) {
		// Incompatible cache: drop everything, it's rebuildable.
		if _, err := d.db.Exec(`DELETE FROM entries`); err != nil {
			return err
		}
		_, err := d.db.Exec(`UPDATE meta SET value = ? WHERE key = 'schema_version'`,
			strconv.Itoa(schemaVersion))
		return err
	}
	return nil
}

// Rebuild replaces the cache contents with the given canonical map, in one
// transaction.
func (d *Database) Rebuild(m *merge.CanonicalMap) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin rebuild: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("failed to clear lookup cache: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO entries (name, path, summary, is_pattern) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range m.Entries() {
		isPattern := 0
		if naming.IsPattern(e.Name) {
			isPattern = 1
		}
		if _, err := stmt.Exec(e.Name, e.Path, e.Summary, isPattern); err != nil {
			return fmt.Errorf("failed to insert %q: %w", e.Name, err)
		}
	}

	return tx.Commit()
}

// Get resolves a name to its map entry: exact match first, then wildcard
// containment over the pattern rows (the family page is the location for
// every runtime name it covers).
func (d *Database) Get(name string) (merge.Entry, error) {
	var e merge.Entry
	err := d.db.QueryRow(`SELECT name, path, summary FROM entries WHERE name = ?`, name).
		Scan(&e.Name, &e.Path, &e.Summary)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return merge.Entry{}, fmt.Errorf("lookup %q: %w", name, err)
	}

	rows, err := d.db.Query(`SELECT name, path, summary FROM entries WHERE is_pattern = 1 ORDER BY name`)
	if err != nil {
		return merge.Entry{}, fmt.Errorf("lookup patterns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p merge.Entry
		if err := rows.Scan(&p.Name, &p.Path, &p.Summary); err != nil {
			return merge.Entry{}, err
		}
		if naming.MatchPattern(p.Name, name) {
			return p, nil
		}
	}
	if err := rows.Err(); err != nil {
		return merge.Entry{}, err
	}

	return merge.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Count returns the number of cached entries.
func (d *Database) Count() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n)
	return n, err
}
