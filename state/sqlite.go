// Package state is the durable store shared by every CLI invocation:
// the per-UTC-day notional ledger, the single live-unlock token row, and
// the guardrail audit trail, all in one small SQLite file.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"ordergate/pkg/clierr"
)

type Store struct {
	db *sql.DB

	// now is swapped out in tests; UTC day keys derive from it.
	now func() time.Time
}

// NewSQLite opens (or creates) the state database at path, creating
// parent directories and the schema as needed.
func NewSQLite(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, clierr.Internal("create state dir", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, clierr.Internal("open state db", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, clierr.Internal("init state schema", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// day returns the current UTC calendar day key, "YYYY-MM-DD". The day
// boundary is UTC midnight; there is no timezone configuration.
func (s *Store) day() string {
	return s.now().UTC().Format("2006-01-02")
}

// TodayNotional returns the notional already recorded for the current
// UTC day, or 0 if no row exists yet.
func (s *Store) TodayNotional() (float64, error) {
	var notional float64
	err := s.db.QueryRow(
		`SELECT notional FROM daily_notional WHERE day = ?`, s.day(),
	).Scan(&notional)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, clierr.Internal("read daily notional", err)
	}
	return notional, nil
}

// RecordNotional adds amount to the current UTC day's row, inserting it
// at amount if absent. The upsert is a single statement so concurrent
// invocations on the same day cannot lose updates.
func (s *Store) RecordNotional(amount float64) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_notional(day, notional)
		VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET notional = notional + excluded.notional`,
		s.day(), amount,
	)
	if err != nil {
		return clierr.Internal("record daily notional", err)
	}
	return nil
}

// UnlockRow is the stored live-unlock token. At most one exists; expiry
// is checked by readers, the row is never auto-deleted.
type UnlockRow struct {
	Token     string
	IssuedAt  int64
	ExpiresAt int64
}

// PutUnlock replaces the stored token row atomically. Issuing a new
// token always supersedes the previous one.
func (s *Store) PutUnlock(token string, issuedAt, expiresAt int64) error {
	_, err := s.db.Exec(`
		INSERT INTO live_unlock(id, token, issued_at, expires_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			issued_at = excluded.issued_at,
			expires_at = excluded.expires_at`,
		token, issuedAt, expiresAt,
	)
	if err != nil {
		return clierr.Internal("store unlock token", err)
	}
	return nil
}

// GetUnlock returns the stored token row, or nil when none exists.
func (s *Store) GetUnlock() (*UnlockRow, error) {
	var row UnlockRow
	err := s.db.QueryRow(
		`SELECT token, issued_at, expires_at FROM live_unlock WHERE id = 1`,
	).Scan(&row.Token, &row.IssuedAt, &row.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, clierr.Internal("read unlock token", err)
	}
	return &row, nil
}

// ClearUnlock deletes the token row. Idempotent.
func (s *Store) ClearUnlock() error {
	if _, err := s.db.Exec(`DELETE FROM live_unlock WHERE id = 1`); err != nil {
		return clierr.Internal("clear unlock token", err)
	}
	return nil
}
