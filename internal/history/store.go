package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run outcomes.
const (
	StatusApplied = "applied"
	StatusFailed  = "failed"
)

// Run is one apply of a console profile to a target directory.
type Run struct {
	ID          int64     `json:"id"`
	Console     string    `json:"console"`
	DisplayName string    `json:"display_name"`
	Brand       string    `json:"brand"`
	Language    string    `json:"language"`
	Target      string    `json:"target"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	Files       int       `json:"files"`
	Extras      []string  `json:"extras,omitempty"`
	Warnings    []string  `json:"warnings,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store persists runs to SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path.
func Open(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			console       TEXT NOT NULL,
			display_name  TEXT NOT NULL DEFAULT '',
			brand         TEXT NOT NULL DEFAULT '',
			language      TEXT NOT NULL DEFAULT '',
			target        TEXT NOT NULL DEFAULT '',
			status        TEXT NOT NULL,
			error         TEXT NOT NULL DEFAULT '',
			files         INTEGER NOT NULL DEFAULT 0,
			extras_json   TEXT NOT NULL DEFAULT '[]',
			warnings_json TEXT NOT NULL DEFAULT '[]',
			created_at    TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`)
	return err
}

// Record inserts r and sets its ID. A zero CreatedAt is set to now.
func (s *Store) Record(r *Run) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	extrasJSON := marshalList(r.Extras)
	warningsJSON := marshalList(r.Warnings)

	res, err := s.db.Exec(`INSERT INTO runs (console, display_name, brand, language, target, status, error, files, extras_json, warnings_json, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Console, r.DisplayName, r.Brand, r.Language, r.Target, r.Status, r.Error,
		r.Files, extrasJSON, warningsJSON, r.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	r.ID, err = res.LastInsertId()
	return err
}

// List returns the most recent runs first. limit <= 0 returns all of them.
func (s *Store) List(limit int) ([]*Run, error) {
	q := `SELECT id, console, display_name, brand, language, target, status, error, files, extras_json, warnings_json, created_at FROM runs ORDER BY id DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Last returns the most recent successful run, or nil if there is none.
func (s *Store) Last() (*Run, error) {
	row := s.db.QueryRow(`SELECT id, console, display_name, brand, language, target, status, error, files, extras_json, warnings_json, created_at FROM runs WHERE status=? ORDER BY id DESC LIMIT 1`, StatusApplied)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var r Run
	var extrasJSON, warningsJSON, createdAt string
	err := sc.Scan(&r.ID, &r.Console, &r.DisplayName, &r.Brand, &r.Language, &r.Target,
		&r.Status, &r.Error, &r.Files, &extrasJSON, &warningsJSON, &createdAt)
	if err != nil {
		return nil, err
	}
	json.Unmarshal([]byte(extrasJSON), &r.Extras)
	json.Unmarshal([]byte(warningsJSON), &r.Warnings)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &r, nil
}

func marshalList(v []string) string {
	if len(v) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(v)
	return string(data)
}

// Lazy opens the store at Path on the first Record, so that a run which
// never applies anything leaves no database behind.
type Lazy struct {
	Path string

	store *Store
	err   error
}

// Record opens the store if needed and inserts r.
func (l *Lazy) Record(r *Run) error {
	if l.store == nil {
		if l.err != nil {
			return l.err
		}
		s, err := Open(l.Path)
		if err != nil {
			l.err = err
			return err
		}
		l.store = s
	}
	return l.store.Record(r)
}

// Close closes the store if it was opened.
func (l *Lazy) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}
