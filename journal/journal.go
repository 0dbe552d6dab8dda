// Package journal keeps a local sqlite log of confirmed stage moves, so the
// activity pane can show recent changes without another round-trip.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps a connection to the local activity journal.
type DB struct {
	db *sql.DB
}

// Entry is one recorded stage move.
type Entry struct {
	ID        int64
	Board     string // "applications" or "jobs"
	CardID    string
	CardName  string
	FromStage string
	ToStage   string
	Note      string
	MovedAt   time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS moves (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	board      TEXT NOT NULL,
	card_id    TEXT NOT NULL,
	card_name  TEXT NOT NULL,
	from_stage TEXT NOT NULL,
	to_stage   TEXT NOT NULL,
	note       TEXT NOT NULL DEFAULT '',
	moved_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_moves_moved_at ON moves(moved_at DESC);
`

// Open opens (creating if needed) the journal at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("initializing journal: %w", err)
	}
	return &DB{db: sqlDB}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Record appends a confirmed move.
func (d *DB) Record(e Entry) error {
	at := e.MovedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := d.db.Exec(`INSERT INTO moves (board, card_id, card_name, from_stage, to_stage, note, moved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Board, e.CardID, e.CardName, e.FromStage, e.ToStage, e.Note, at.Unix())
	return err
}

// Recent returns the N most recent moves, newest first.
func (d *DB) Recent(limit int) ([]Entry, error) {
	rows, err := d.db.Query(`SELECT id, board, card_id, card_name, from_stage, to_stage, note, moved_at
		FROM moves ORDER BY moved_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.ID, &e.Board, &e.CardID, &e.CardName,
			&e.FromStage, &e.ToStage, &e.Note, &at); err != nil {
			return nil, err
		}
		e.MovedAt = time.Unix(at, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CardHistory returns the locally recorded moves for one card, newest first.
func (d *DB) CardHistory(cardID string, limit int) ([]Entry, error) {
	rows, err := d.db.Query(`SELECT id, board, card_id, card_name, from_stage, to_stage, note, moved_at
		FROM moves WHERE card_id = ? ORDER BY moved_at DESC, id DESC LIMIT ?`, cardID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.ID, &e.Board, &e.CardID, &e.CardName,
			&e.FromStage, &e.ToStage, &e.Note, &at); err != nil {
			return nil, err
		}
		e.MovedAt = time.Unix(at, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
