// Package storage provides SQLite-based persistence for progress flags and
// level run history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies; the schema is managed by goose migrations embedded in the binary.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/penquin/internal/progress"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// RunEntry represents a single recorded level attempt.
type RunEntry struct {
	ID        int64
	Level     int
	Outcome   string // "complete", "menu", "quit"
	Ticks     int
	Coins     int
	Deaths    int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate applies all pending schema migrations.
func (s *Store) migrate(ctx context.Context) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetFlag implements progress.Flags. Absent keys return "".
func (s *Store) GetFlag(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM progress_flags WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot read flag %s: %w", key, err)
	}
	return value, nil
}

// SetFlag implements progress.Flags.
func (s *Store) SetFlag(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO progress_flags (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write flag %s: %w", key, err)
	}
	return nil
}

// DeleteFlags implements progress.Flags. All keys are removed in one transaction.
func (s *Store) DeleteFlags(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	for _, k := range keys {
		if _, err := tx.Exec("DELETE FROM progress_flags WHERE key = ?", k); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot delete flag %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit flag deletion: %w", err)
	}
	return nil
}

// AllFlags returns every stored flag, keyed by name.
func (s *Store) AllFlags() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM progress_flags")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query flags: %w", err)
	}
	defer rows.Close()

	flags := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("storage: cannot scan flag row: %w", err)
		}
		flags[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return flags, nil
}

// FlagKeys returns every stored flag name, sorted.
func (s *Store) FlagKeys() ([]string, error) {
	flags, err := s.AllFlags()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(flags))
	for k := range flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearFlags deletes every progress flag.
func (s *Store) ClearFlags() error {
	if _, err := s.db.Exec("DELETE FROM progress_flags"); err != nil {
		return fmt.Errorf("storage: cannot clear flags: %w", err)
	}
	return nil
}

var _ progress.Flags = (*Store)(nil)

// SaveRun records a finished level attempt.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO level_runs (level, outcome, ticks, coins, deaths) VALUES (?, ?, ?, ?, ?)",
		run.Level, run.Outcome, run.Ticks, run.Coins, run.Deaths,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestRuns retrieves the fastest completed runs for a level.
// Results are ordered by ticks ascending.
func (s *Store) BestRuns(level, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, level, outcome, ticks, coins, deaths, created_at
		 FROM level_runs
		 WHERE level = ? AND outcome = 'complete'
		 ORDER BY ticks ASC, id ASC
		 LIMIT ?`,
		level, limit,
	)
}

// RecentRuns retrieves the most recent runs across all levels.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, level, outcome, ticks, coins, deaths, created_at
		 FROM level_runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Level, &e.Outcome, &e.Ticks, &e.Coins, &e.Deaths, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearRuns deletes the run history of every level.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM level_runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	Level       int
	Attempts    int
	Completions int
	BestTicks   int // 0 when never completed
	TotalDeaths int
	TotalCoins  int
	LastPlayed  time.Time
}

// GetAllLevelStats retrieves statistics for every level that has been played.
func (s *Store) GetAllLevelStats() (map[int]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level,
		        COUNT(*),
		        SUM(CASE WHEN outcome = 'complete' THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN outcome = 'complete' THEN ticks END), 0),
		        SUM(deaths),
		        SUM(coins),
		        MAX(created_at)
		 FROM level_runs
		 GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.Level, &st.Attempts, &st.Completions, &st.BestTicks,
			&st.TotalDeaths, &st.TotalCoins, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Level] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes returned by the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
