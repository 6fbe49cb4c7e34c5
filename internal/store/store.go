// Package store keeps a local SQLite history of saved routines and judged
// scores.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/somersault/internal/judge"
	"github.com/papapumpkin/somersault/internal/routine"
	"github.com/papapumpkin/somersault/internal/skill"
)

// ErrNotFound is returned when no routine is saved under a path.
var ErrNotFound = errors.New("routine not found")

// schema is executed on every open.
const schema = `
CREATE TABLE IF NOT EXISTS routines (
    path             TEXT PRIMARY KEY,
    name             TEXT NOT NULL,
    notations        TEXT NOT NULL,
    difficulty       REAL NOT NULL,
    largest_rotation REAL NOT NULL,
    largest_twist    REAL NOT NULL,
    updated_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scores (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    sheet      TEXT NOT NULL,
    routine    TEXT NOT NULL,
    judges     INTEGER NOT NULL,
    difficulty REAL NOT NULL,
    execution  REAL NOT NULL,
    hd         REAL NOT NULL,
    tof        REAL NOT NULL,
    total      REAL NOT NULL,
    scored_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS scores_routine ON scores (routine);
`

// SavedRoutine is a routine row.
type SavedRoutine struct {
	Path      string        `json:"path"`
	Name      string        `json:"name"`
	Notations []string      `json:"notations"`
	Stats     routine.Stats `json:"stats"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Score is a recorded judge summary.
type Score struct {
	ID       int64     `json:"id"`
	Sheet    string    `json:"sheet"`
	ScoredAt time.Time `json:"scored_at"`
	judge.Summary
}

// Store is a SQLite-backed history. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path, enables WAL mode and a busy
// timeout, and creates the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// SQLite has a single writer.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRoutine upserts the routine loaded from path.
func (s *Store) SaveRoutine(ctx context.Context, path string, r *routine.Routine) error {
	notations := make([]string, 0, routine.Length)
	for _, sk := range r.Skills {
		notations = append(notations, skill.Encode(sk))
	}
	data, err := json.Marshal(notations)
	if err != nil {
		return fmt.Errorf("store: encode notations: %w", err)
	}
	st := r.Stats()

	const q = `
		INSERT INTO routines (path, name, notations, difficulty, largest_rotation, largest_twist, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name             = excluded.name,
			notations        = excluded.notations,
			difficulty       = excluded.difficulty,
			largest_rotation = excluded.largest_rotation,
			largest_twist    = excluded.largest_twist,
			updated_at       = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, q, path, r.Name, string(data),
		st.TotalDifficulty, st.LargestRotation, st.LargestTwist, s.timestamp()); err != nil {
		return fmt.Errorf("store: save routine %q: %w", path, err)
	}
	return nil
}

// Routine returns the routine saved under path, rebuilt from its notations.
func (s *Store) Routine(ctx context.Context, path string) (*routine.Routine, error) {
	var name, data string
	err := s.db.QueryRowContext(ctx, "SELECT name, notations FROM routines WHERE path = ?", path).Scan(&name, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: %q: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get routine %q: %w", path, err)
	}
	var notations []string
	if err := json.Unmarshal([]byte(data), &notations); err != nil {
		return nil, fmt.Errorf("store: decode notations for %q: %w", path, err)
	}
	return routine.Build(name, notations)
}

// Routines lists saved routines, most difficult first.
func (s *Store) Routines(ctx context.Context) ([]SavedRoutine, error) {
	const q = `SELECT path, name, notations, difficulty, largest_rotation, largest_twist, updated_at
		FROM routines ORDER BY difficulty DESC, path`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("store: query routines: %w", err)
	}
	defer rows.Close()

	var result []SavedRoutine
	for rows.Next() {
		var sr SavedRoutine
		var data, ts string
		if err := rows.Scan(&sr.Path, &sr.Name, &data, &sr.Stats.TotalDifficulty,
			&sr.Stats.LargestRotation, &sr.Stats.LargestTwist, &ts); err != nil {
			return nil, fmt.Errorf("store: scan routine: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &sr.Notations); err != nil {
			return nil, fmt.Errorf("store: decode notations for %q: %w", sr.Path, err)
		}
		sr.Stats.LargestRotationDegrees = sr.Stats.LargestRotation * 360
		sr.Stats.LargestTwistDegrees = sr.Stats.LargestTwist * 360
		if sr.UpdatedAt, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		result = append(result, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate routines: %w", err)
	}
	return result, nil
}

// RecordScore appends a judged summary for the judge sheet at sheet.
func (s *Store) RecordScore(ctx context.Context, sheet string, sum judge.Summary) error {
	const q = `
		INSERT INTO scores (sheet, routine, judges, difficulty, execution, hd, tof, total, scored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, sheet, sum.Routine, sum.Judges,
		sum.Difficulty, sum.Execution, sum.HD, sum.TOF, sum.Total, s.timestamp()); err != nil {
		return fmt.Errorf("store: record score for %q: %w", sheet, err)
	}
	return nil
}

// Scores returns recorded scores, newest first. A routine name filters the
// results; limit <= 0 returns every row.
func (s *Store) Scores(ctx context.Context, routineName string, limit int) ([]Score, error) {
	q := `SELECT id, sheet, routine, judges, difficulty, execution, hd, tof, total, scored_at FROM scores`
	var args []any
	if routineName != "" {
		q += ` WHERE routine = ?`
		args = append(args, routineName)
	}
	q += ` ORDER BY id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query scores: %w", err)
	}
	defer rows.Close()

	var result []Score
	for rows.Next() {
		var sc Score
		var ts string
		if err := rows.Scan(&sc.ID, &sc.Sheet, &sc.Routine, &sc.Judges, &sc.Difficulty,
			&sc.Execution, &sc.HD, &sc.TOF, &sc.Total, &ts); err != nil {
			return nil, fmt.Errorf("store: scan score: %w", err)
		}
		if sc.ScoredAt, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate scores: %w", err)
	}
	return result, nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("store: parse timestamp %q: %w", ts, err)
	}
	return t, nil
}
