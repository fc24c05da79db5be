package state

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const createPrefsTable = `
CREATE TABLE IF NOT EXISTS prefs (
    key TEXT PRIMARY KEY,
    type TEXT NOT NULL,
    value TEXT NOT NULL,
    position INTEGER NOT NULL
);
`

// SQLiteBackend stores one row per entry. Save rewrites the table inside a
// single transaction.
type SQLiteBackend struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(createPrefsTable); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create prefs table: %w", err)
	}
	return &SQLiteBackend{sqlDB: sqlDB}, nil
}

func (s *SQLiteBackend) Name() string { return "sqlite" }

// Close closes the SQLite handle.
func (s *SQLiteBackend) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteBackend) Load() ([]Entry, error) {
	rows, err := s.sqlDB.Query(`SELECT key, type, value FROM prefs ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query prefs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var key, tag, value string
		if err := rows.Scan(&key, &tag, &value); err != nil {
			return nil, fmt.Errorf("scan prefs: %w", err)
		}
		e, err := decodeJSONValue(key, Tag(tag), []byte(value))
		if err != nil {
			return nil, fmt.Errorf("decode prefs row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prefs: %w", err)
	}
	return entries, nil
}

func (s *SQLiteBackend) Save(entries []Entry) error {
	ctx := context.Background()
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM prefs`); err != nil {
		return fmt.Errorf("clear prefs: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO prefs (key, type, value, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		raw, err := e.encodeValue()
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, e.Key, string(e.Type), string(raw), i); err != nil {
			return fmt.Errorf("insert %s: %w", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit prefs: %w", err)
	}
	return nil
}
