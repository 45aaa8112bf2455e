package propstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"layoutkit/internal/config"
	"layoutkit/internal/layout"
)

// SQLite keeps items and their properties in a SQLite database.
type SQLite struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *SQLite) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// Open connects to the property database named by the config, creating the
// data directory and seeding the canvas resolution on first use.
func Open(cfg *config.Config) (*SQLite, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	store, err := OpenPath(cfg.StorePath())
	if err != nil {
		return nil, err
	}
	if err := store.seedApp(context.Background(), map[string]string{
		layout.KeyResolution: cfg.CanvasResolutionValue(),
	}); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// OpenPath initializes or connects to the database at path.
func OpenPath(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &SQLite{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *SQLite) Path() string {
	return s.path
}

// AppProperty returns an application-level property, or "" when unset.
func (s *SQLite) AppProperty(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ensureContext(ctx), `SELECT value FROM app_properties WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get app property: %w", err)
	}
	return value, nil
}

// SetAppProperty writes an application-level property.
func (s *SQLite) SetAppProperty(ctx context.Context, key, value string) error {
	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO app_properties (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		now(),
	)
	if err != nil {
		return fmt.Errorf("set app property: %w", err)
	}
	return nil
}

// seedApp writes app properties that have never been set.
func (s *SQLite) seedApp(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if _, err := s.execWithRetry(
			ctx,
			`INSERT INTO app_properties (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO NOTHING`,
			key,
			value,
			now(),
		); err != nil {
			return fmt.Errorf("seed app property %s: %w", key, err)
		}
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
