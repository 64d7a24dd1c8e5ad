package idset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrSetNotFound is returned by Load for an unknown set name.
var ErrSetNotFound = errors.New("idset: set not found in store")

// Conventional set names used by the build command.
const (
	FeatureSetName = "features"
	ClassSetName   = "classes"
)

// SQLiteStore persists id sets so a later run can reuse them.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS id_sets (
		name       TEXT PRIMARY KEY,
		first_id   INTEGER NOT NULL,
		frozen     INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS id_entries (
		set_name TEXT NOT NULL REFERENCES id_sets(name) ON DELETE CASCADE,
		id       INTEGER NOT NULL,
		name     TEXT NOT NULL,
		PRIMARY KEY (set_name, id),
		UNIQUE (set_name, name)
	);
	`
	_, err := s.db.Exec(schema)

	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces the stored copy of the named set with set's current content.
func (s *SQLiteStore) Save(ctx context.Context, name string, set *IDSet) error {
	names := set.Names()
	frozen := 0
	if set.Frozen() {
		frozen = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM id_sets WHERE name = ?`, name); err != nil {
		return fmt.Errorf("clear set %s: %w", name, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO id_sets (name, first_id, frozen, updated_at) VALUES (?, ?, ?, ?)`,
		name, set.FirstID(), frozen, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert set %s: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO id_entries (set_name, id, name) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for k, n := range names {
		if _, err = stmt.ExecContext(ctx, name, set.FirstID()+k, n); err != nil {
			return fmt.Errorf("insert entry %q: %w", n, err)
		}
	}

	return tx.Commit()
}

// Load reads the named set. The returned set keeps the stored frozen state.
func (s *SQLiteStore) Load(ctx context.Context, name string) (*IDSet, error) {
	var firstID, frozen int
	err := s.db.QueryRowContext(ctx,
		`SELECT first_id, frozen FROM id_sets WHERE name = ?`, name).Scan(&firstID, &frozen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrSetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load set %s: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM id_entries WHERE set_name = ? ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("load entries %s: %w", name, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	set, err := FromNames(firstID, names)
	if err != nil {
		return nil, err
	}
	if frozen == 1 {
		set.Freeze()
	}

	return set, nil
}
