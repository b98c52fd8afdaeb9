// Package history keeps sweep evaluations in SQLite.
package history

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

type Sweep struct {
	ID        string
	Design    string
	Objective string
	Points    int
	StartedAt time.Time
}

// Evaluation is one design point. Err is empty for a successful synthesis.
type Evaluation struct {
	Index        int
	Params       map[string]float64
	DryMass      float64
	CG           float64
	CP           float64
	StaticMargin float64
	Score        float64
	Feasible     bool
	Err          string
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		var found int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE name = ?`, file).Scan(&found)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration %s: %w", file, err)
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(upSection(string(content))); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`, file, time.Now().UTC().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

func upSection(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	if i := strings.Index(content, up); i >= 0 {
		content = content[i+len(up):]
	}
	if i := strings.Index(content, down); i >= 0 {
		content = content[:i]
	}
	return content
}

func (s *Store) CreateSweep(ctx context.Context, sw Sweep) error {
	if strings.TrimSpace(sw.ID) == "" {
		return fmt.Errorf("sweep id is required")
	}
	started := sw.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sweeps (id, design, objective, points, started_at) VALUES (?, ?, ?, ?, ?)`,
		sw.ID, sw.Design, sw.Objective, sw.Points, started.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("create sweep %s: %w", sw.ID, err)
	}
	return nil
}

// Record stores evaluations of one sweep in a single transaction.
func (s *Store) Record(ctx context.Context, sweepID string, evals []Evaluation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO evaluations
    (sweep_id, idx, params, dry_mass, cg, cp, static_margin, score, feasible, error)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range evals {
		params, err := json.Marshal(e.Params)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, sweepID, e.Index, string(params),
			e.DryMass, e.CG, e.CP, e.StaticMargin, e.Score, e.Feasible, e.Err); err != nil {
			return fmt.Errorf("record evaluation %d: %w", e.Index, err)
		}
	}
	return tx.Commit()
}

// Best returns up to limit feasible evaluations with the lowest score.
func (s *Store) Best(ctx context.Context, sweepID string, limit int) ([]Evaluation, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, params, dry_mass, cg, cp, static_margin, score, feasible, error
         FROM evaluations
         WHERE sweep_id = ? AND feasible = 1 AND error = ''
         ORDER BY score ASC, idx ASC
         LIMIT ?`, sweepID, limit)
	if err != nil {
		return nil, fmt.Errorf("best of %s: %w", sweepID, err)
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		var e Evaluation
		var params string
		if err := rows.Scan(&e.Index, &params, &e.DryMass, &e.CG, &e.CP, &e.StaticMargin, &e.Score, &e.Feasible, &e.Err); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(params), &e.Params); err != nil {
			return nil, fmt.Errorf("evaluation %d params: %w", e.Index, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Counts returns the number of evaluations and of failed ones in a sweep.
func (s *Store) Counts(ctx context.Context, sweepID string) (total, failed int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN error != '' THEN 1 ELSE 0 END), 0) FROM evaluations WHERE sweep_id = ?`,
		sweepID).Scan(&total, &failed)
	return total, failed, err
}

// Sweeps lists sweeps, newest first.
func (s *Store) Sweeps(ctx context.Context) ([]Sweep, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, design, objective, points, started_at FROM sweeps ORDER BY started_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sweep
	for rows.Next() {
		var sw Sweep
		var started int64
		if err := rows.Scan(&sw.ID, &sw.Design, &sw.Objective, &sw.Points, &started); err != nil {
			return nil, err
		}
		sw.StartedAt = time.UnixMilli(started).UTC()
		out = append(out, sw)
	}
	return out, rows.Err()
}
