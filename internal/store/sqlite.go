// Package store persists cached curricula and the LLM request log in a
// local SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yusufk/chefmate/internal/llm"
)

// Store implements the curriculum cache and the LLM request log on SQLite.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the database location: CHEFMATE_DB when set,
// otherwise $XDG_DATA_HOME/chefmate/chefmate.db falling back to
// ~/.local/share.
func DefaultPath() string {
	if p := os.Getenv("CHEFMATE_DB"); p != "" {
		return p
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "chefmate.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "chefmate", "chefmate.db")
}

// Open opens or creates the database at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS curricula (
		cache_key  TEXT PRIMARY KEY,
		topic      TEXT NOT NULL,
		config_key TEXT NOT NULL,
		raw        TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_curricula_topic ON curricula(topic);

	CREATE TABLE IF NOT EXISTS llm_requests (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		purpose       TEXT NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error         TEXT,
		created_at    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_requests_created ON llm_requests(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the cached raw curriculum for key, or ok=false on a miss.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT raw FROM curricula WHERE cache_key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

// Put stores raw curriculum text under key, replacing any prior entry.
func (s *Store) Put(ctx context.Context, key, topic, configKey, raw string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO curricula (cache_key, topic, config_key, raw, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		   topic = excluded.topic,
		   config_key = excluded.config_key,
		   raw = excluded.raw,
		   created_at = excluded.created_at`,
		key, topic, configKey, raw, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert curriculum: %w", err)
	}
	return nil
}

// CachedCurriculum describes one cache entry for inspection.
type CachedCurriculum struct {
	Key       string
	Topic     string
	ConfigKey string
	CreatedAt time.Time
}

// ListCurricula returns every cache entry, newest first.
func (s *Store) ListCurricula(ctx context.Context) ([]CachedCurriculum, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cache_key, topic, config_key, created_at FROM curricula ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []CachedCurriculum
	for rows.Next() {
		var e CachedCurriculum
		var createdAt string
		if err := rows.Scan(&e.Key, &e.Topic, &e.ConfigKey, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearCurricula deletes every cache entry and returns how many were removed.
func (s *Store) ClearCurricula(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM curricula`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AppendRequest records one LLM request.
func (s *Store) AppendRequest(ctx context.Context, rec llm.RequestRecord) error {
	var errMsg *string
	if rec.ErrorMessage != "" {
		errMsg = &rec.ErrorMessage
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_requests (purpose, provider, model, input_tokens, output_tokens, latency_ms, success, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Purpose, rec.Provider, rec.Model, rec.InputTokens, rec.OutputTokens,
		rec.LatencyMs, boolToInt(rec.Success), errMsg, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert request record: %w", err)
	}
	return nil
}

// RequestEvent is one logged LLM request row.
type RequestEvent struct {
	ID           int64
	Purpose      string
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	Error        string
	CreatedAt    time.Time
}

// ListRequests returns the most recent logged LLM requests, newest first.
func (s *Store) ListRequests(ctx context.Context, limit int) ([]RequestEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, purpose, provider, model, input_tokens, output_tokens, latency_ms, success, error, created_at
		 FROM llm_requests ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []RequestEvent
	for rows.Next() {
		var e RequestEvent
		var success int
		var errMsg sql.NullString
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Purpose, &e.Provider, &e.Model, &e.InputTokens,
			&e.OutputTokens, &e.LatencyMs, &success, &errMsg, &createdAt); err != nil {
			return nil, err
		}
		e.Success = success != 0
		if errMsg.Valid {
			e.Error = errMsg.String
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		events = append(events, e)
	}
	return events, rows.Err()
}

// RequestCount returns the number of logged LLM requests.
func (s *Store) RequestCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM llm_requests`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
