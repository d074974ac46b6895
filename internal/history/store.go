// Package history persists analysis reports in a local SQLite database
// so past grades and findings survive between runs.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/pipeline"

	// sqlite driver for the report store.
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no stored report matches the given id.
var ErrNotFound = errors.New("report not found")

// Store keeps past analysis reports.
type Store struct {
	db   *sql.DB
	path string
}

// Entry is the summary row for one stored report.
type Entry struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Title         string    `json:"title,omitempty"`
	Valid         bool      `json:"valid"`
	Overall       int       `json:"overall"`
	Structure     int       `json:"structure"`
	Prosody       int       `json:"prosody"`
	Originality   int       `json:"originality"`
	Commerciality int       `json:"commerciality"`
	Findings      int       `json:"findings"`
	Errors        int       `json:"errors"`
	Warnings      int       `json:"warnings"`
	CreatedAt     time.Time `json:"created_at"`
}

// Open opens the report store at path, creating the database and its
// parent directory if needed, and brings the schema up to date.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Save stores one report and returns its ID. A report without an ID is
// assigned a fresh UUID; the report's own ID is never mutated.
func (s *Store) Save(ctx context.Context, rep *pipeline.Report) (string, error) {
	id := rep.ID
	if id == "" {
		id = uuid.New().String()
	}

	title := ""
	if rep.Song != nil {
		title = rep.Song.Title()
	}

	// The stored JSON is the report as the CLI and API emit it; the
	// song itself is excluded from marshaling and never persisted.
	stored := *rep
	stored.ID = id
	raw, err := json.Marshal(&stored)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	counts := lint.CountBySeverity(rep.Findings)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, name, title, valid, overall, structure, prosody, originality, commerciality, findings, errors, warnings, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rep.Name, title, rep.Valid,
		rep.Grade.Overall,
		rep.Grade.Breakdown.Structure, rep.Grade.Breakdown.Prosody,
		rep.Grade.Breakdown.Originality, rep.Grade.Breakdown.Commerciality,
		len(rep.Findings), counts[lint.SeverityError], counts[lint.SeverityWarning],
		string(raw), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	return id, nil
}

const entryColumns = `id, name, title, valid, overall, structure, prosody, originality, commerciality, findings, errors, warnings, created_at`

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM reports ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Title, &e.Valid,
			&e.Overall, &e.Structure, &e.Prosody, &e.Originality, &e.Commerciality,
			&e.Findings, &e.Errors, &e.Warnings, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report rows: %w", err)
	}

	return entries, nil
}

// Get returns the summary entry for one report. A unique id prefix is
// enough, so the short ids printed in listings resolve.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	full, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}

	var e Entry
	err = s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM reports WHERE id = ?`, full,
	).Scan(&e.ID, &e.Name, &e.Title, &e.Valid,
		&e.Overall, &e.Structure, &e.Prosody, &e.Originality, &e.Commerciality,
		&e.Findings, &e.Errors, &e.Warnings, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &e, nil
}

// GetReport returns the full stored report for one entry. Like Get it
// accepts a unique id prefix.
func (s *Store) GetReport(ctx context.Context, id string) (*pipeline.Report, error) {
	full, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}

	var raw string
	if err := s.db.QueryRowContext(ctx, `SELECT report FROM reports WHERE id = ?`, full).Scan(&raw); err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var rep pipeline.Report
	if err := json.Unmarshal([]byte(raw), &rep); err != nil {
		return nil, fmt.Errorf("failed to decode stored report %s: %w", full, err)
	}
	return &rep, nil
}

// resolveID expands an id or id prefix to the single stored id it
// names. Report ids are hex uuids, so no LIKE metacharacters can
// sneak in through a prefix.
func (s *Store) resolveID(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: (empty id)", ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM reports WHERE id LIKE ? || '%' LIMIT 2`, id)
	if err != nil {
		return "", fmt.Errorf("failed to resolve report id: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var full string
		if err := rows.Scan(&full); err != nil {
			return "", fmt.Errorf("failed to resolve report id: %w", err)
		}
		ids = append(ids, full)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to resolve report id: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("report id %q is ambiguous", id)
	}
}

// Clear deletes all stored reports and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear reports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared reports: %w", err)
	}
	return n, nil
}

// Count returns the number of stored reports.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return n, nil
}
