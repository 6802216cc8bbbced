// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current history database schema version.
const SchemaVersion = "1"

// SQLite is a modernc.org/sqlite-backed Store, so a REPL session's
// transcript survives process restarts. The schema-version metadata row
// and migration gate follow the same pattern as the teacher's
// store.SQLite.NewSQLite.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if necessary) a history database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			session TEXT NOT NULL,
			seq     INTEGER NOT NULL,
			source  TEXT NOT NULL,
			result  TEXT NOT NULL,
			ts      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%f', 'now')),
			PRIMARY KEY (session, seq)
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db}
	version, err := s.getMetadata("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	if version == "" {
		if err := s.setMetadata("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	} else if version != SchemaVersion {
		db.Close()
		return nil, fmt.Errorf("unsupported history schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

func (s *SQLite) Append(session string, e Entry) error {
	var seq int
	err := s.db.QueryRow("SELECT COALESCE(MAX(seq), 0) FROM entries WHERE session = ?", session).Scan(&seq)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		"INSERT INTO entries (session, seq, source, result) VALUES (?, ?, ?, ?)",
		session, seq+1, e.Source, e.Result,
	)
	return err
}

func (s *SQLite) Recent(session string, limit int) ([]Entry, error) {
	query := "SELECT seq, source, result, ts FROM entries WHERE session = ? ORDER BY seq DESC"
	args := []any{session}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Seq, &e.Source, &e.Result, &e.Ts); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse: the query fetched newest-first to make LIMIT cheap, but
	// callers expect oldest-first transcript order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (s *SQLite) getMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (s *SQLite) setMetadata(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
