// Package store handles SQLite persistence of answer attempts.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/ladder/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout sorts lexically in UTC.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for attempt history.
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
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY,
			answered_at TEXT NOT NULL,
			category TEXT NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			input TEXT NOT NULL,
			correct INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_answered_at ON attempts(answered_at);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_category ON attempts(category);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAttempt stores a submitted answer.
func (s *Store) InsertAttempt(ctx context.Context, a model.Attempt) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (answered_at, category, question, answer, input, correct)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.AnsweredAt.UTC().Format(timeLayout),
		a.Category,
		a.Question,
		a.Answer,
		a.Input,
		boolToInt(a.Correct),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAttempts returns attempts matching cfg in chronological order. Last keeps
// only the most recent N attempts.
func (s *Store) ListAttempts(ctx context.Context, cfg model.StatsConfig) ([]model.Attempt, error) {
	from, args := scopedAttempts(cfg)
	query := fmt.Sprintf(`SELECT id, answered_at, category, question, answer, input, correct
		FROM %s
		ORDER BY answered_at ASC, id ASC`, from)
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

	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		var answeredAt string
		var correct int
		if err := rows.Scan(&a.ID, &answeredAt, &a.Category, &a.Question, &a.Answer, &a.Input, &correct); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, answeredAt)
		if err != nil {
			return nil, err
		}
		a.AnsweredAt = parsed
		a.Correct = correct != 0
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attempts, nil
}

// ListCategoryAggregates sums attempts per category.
func (s *Store) ListCategoryAggregates(ctx context.Context, cfg model.StatsConfig) ([]model.CategoryAggregate, error) {
	from, args := scopedAttempts(cfg)
	query := fmt.Sprintf(`SELECT category, SUM(correct) AS correct, SUM(1 - correct) AS incorrect,
		MAX(answered_at) AS last_at
		FROM %s
		GROUP BY category
		ORDER BY category ASC`, from)
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

	var result []model.CategoryAggregate
	for rows.Next() {
		var agg model.CategoryAggregate
		var lastAt string
		if err := rows.Scan(&agg.Category, &agg.Correct, &agg.Incorrect, &lastAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, lastAt)
		if err != nil {
			return nil, err
		}
		agg.LastAt = parsed
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListWordAggregates sums attempts per (category, question).
func (s *Store) ListWordAggregates(ctx context.Context, cfg model.StatsConfig) ([]model.WordAggregate, error) {
	from, args := scopedAttempts(cfg)
	query := fmt.Sprintf(`SELECT category, question, SUM(correct) AS correct, SUM(1 - correct) AS incorrect
		FROM %s
		GROUP BY category, question`, from)
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

	var result []model.WordAggregate
	for rows.Next() {
		var agg model.WordAggregate
		if err := rows.Scan(&agg.Category, &agg.Question, &agg.Correct, &agg.Incorrect); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// scopedAttempts returns the attempts source shared by every listing, so that
// Last narrows the aggregates to the same most recent N rows as ListAttempts.
func scopedAttempts(cfg model.StatsConfig) (string, []any) {
	where, args := filterClause(cfg)
	if cfg.Last <= 0 {
		return fmt.Sprintf("(SELECT * FROM attempts WHERE %s) AS scoped", where), args
	}
	from := fmt.Sprintf(`(SELECT * FROM attempts WHERE %s
		ORDER BY answered_at DESC, id DESC
		LIMIT ?) AS scoped`, where)
	return from, append(args, cfg.Last)
}

func filterClause(cfg model.StatsConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, cfg.Category)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "answered_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	return strings.Join(clauses, " AND "), args
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
