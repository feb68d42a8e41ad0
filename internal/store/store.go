// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typesprint/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const highScoreKey = "high_score"

// Store wraps SQLite access for the high score and session results.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			correct INTEGER NOT NULL,
			wrong INTEGER NOT NULL,
			elapsed_s INTEGER NOT NULL,
			outcome TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_ended_at ON results(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// HighScore returns the stored high score, if any.
func (s *Store) HighScore(ctx context.Context) (int, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, highScoreKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("invalid stored high score %q: %w", raw, err)
	}
	return score, true, nil
}

// SetHighScore stores the high score.
func (s *Store) SetHighScore(ctx context.Context, score int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		highScoreKey, strconv.Itoa(score))
	return err
}

// ClearHighScore removes the stored high score.
func (s *Store) ClearHighScore(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, highScoreKey)
	return err
}

// RecordResult stores a completed session. A missing ID is generated.
func (s *Store) RecordResult(ctx context.Context, r model.Result) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (id, started_at, ended_at, mode, difficulty, wpm, accuracy, correct, wrong, elapsed_s, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.StartedAt.UTC().Format(time.RFC3339Nano),
		r.EndedAt.UTC().Format(time.RFC3339Nano),
		string(r.Mode),
		string(r.Difficulty),
		r.WordsPerMinute,
		r.Accuracy,
		r.Correct,
		r.Wrong,
		r.ElapsedSeconds,
		string(r.Outcome),
	)
	return err
}

// ListResults returns results filtered by stats config, oldest first.
func (s *Store) ListResults(ctx context.Context, cfg model.StatsConfig) ([]model.Result, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, string(cfg.Mode))
	}
	if cfg.Difficulty != "" {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, string(cfg.Difficulty))
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, mode, difficulty, wpm, accuracy, correct, wrong, elapsed_s, outcome
		FROM results
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.Result
	for rows.Next() {
		var r model.Result
		var startedAt, endedAt, mode, difficulty, outcome string
		if err := rows.Scan(&r.ID, &startedAt, &endedAt, &mode, &difficulty, &r.WordsPerMinute, &r.Accuracy, &r.Correct, &r.Wrong, &r.ElapsedSeconds, &outcome); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if r.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		r.Mode = model.Mode(mode)
		r.Difficulty = model.Difficulty(difficulty)
		r.Outcome = model.Outcome(outcome)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(results) > cfg.Last {
		results = results[len(results)-cfg.Last:]
	}
	return results, nil
}
