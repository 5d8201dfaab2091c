package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mountainops/lifthire/internal/hiring"
)

// SQLite is a durable ApplicantStore. Each applicant is one row holding
// the whole record as JSON, matching the engine's whole-record write
// rule, with a sequence column preserving insertion order.
type SQLite struct {
	db *sql.DB
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS applicants (
	id TEXT PRIMARY KEY,
	seq INTEGER,
	record TEXT NOT NULL
);
`

// NewSQLite opens (or creates) the database at dbPath.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// WAL keeps concurrent reads cheap while single writes serialize.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set WAL mode: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create tables: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(id string) (*hiring.Applicant, error) {
	var record string
	err := s.db.QueryRow(`SELECT record FROM applicants WHERE id = ?`, id).Scan(&record)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get applicant %s: %w", id, err)
	}

	var a hiring.Applicant
	if err := json.Unmarshal([]byte(record), &a); err != nil {
		return nil, fmt.Errorf("store: decode applicant %s: %w", id, err)
	}
	return &a, nil
}

func (s *SQLite) List() (*hiring.Applicants, error) {
	rows, err := s.db.Query(`SELECT record FROM applicants ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("store: list applicants: %w", err)
	}
	defer rows.Close()

	all := &hiring.Applicants{}
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("store: scan applicant row: %w", err)
		}
		var a hiring.Applicant
		if err := json.Unmarshal([]byte(record), &a); err != nil {
			return nil, fmt.Errorf("store: decode applicant row: %w", err)
		}
		all.Items = append(all.Items, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list applicants: %w", err)
	}
	return all, nil
}

func (s *SQLite) Put(a *hiring.Applicant) error {
	if a == nil || a.ID == "" {
		return fmt.Errorf("applicant id is required")
	}

	record, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("store: encode applicant %s: %w", a.ID, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO applicants (id, seq, record)
		 VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM applicants), ?)
		 ON CONFLICT(id) DO UPDATE SET record = excluded.record`,
		a.ID, string(record),
	)
	if err != nil {
		return fmt.Errorf("store: save applicant %s: %w", a.ID, err)
	}
	return nil
}

func (s *SQLite) Reset(roster []*hiring.Applicant) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM applicants`); err != nil {
		return fmt.Errorf("store: clear applicants: %w", err)
	}

	for i, a := range roster {
		record, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("store: encode applicant %s: %w", a.ID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO applicants (id, seq, record) VALUES (?, ?, ?)`,
			a.ID, i+1, string(record),
		); err != nil {
			return fmt.Errorf("store: seed applicant %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit reset: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
