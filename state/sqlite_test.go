package state

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "state.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func TestSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('daily_notional','live_unlock','guard_audit')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["daily_notional"])
	assert.True(t, found["live_unlock"])
	assert.True(t, found["guard_audit"])
}

func TestNotionalAccumulates(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	notional, err := s.TodayNotional()
	require.NoError(t, err)
	assert.Zero(t, notional)

	require.NoError(t, s.RecordNotional(100))
	require.NoError(t, s.RecordNotional(50))

	notional, err = s.TodayNotional()
	require.NoError(t, err)
	assert.InDelta(t, 150.0, notional, 1e-9)
}

func TestNotionalResetsOnNewDay(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	day1 := time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day1 }
	require.NoError(t, s.RecordNotional(300))

	notional, err := s.TodayNotional()
	require.NoError(t, err)
	assert.InDelta(t, 300.0, notional, 1e-9)

	// Past UTC midnight the total starts from zero; the old row stays.
	s.now = func() time.Time { return day1.Add(2 * time.Hour) }
	notional, err = s.TodayNotional()
	require.NoError(t, err)
	assert.Zero(t, notional)

	require.NoError(t, s.RecordNotional(25))
	notional, err = s.TodayNotional()
	require.NoError(t, err)
	assert.InDelta(t, 25.0, notional, 1e-9)

	s.now = func() time.Time { return day1 }
	notional, err = s.TodayNotional()
	require.NoError(t, err)
	assert.InDelta(t, 300.0, notional, 1e-9)
}

func TestDayKeyIsUTC(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	// 23:30 UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	s.now = func() time.Time {
		return time.Date(2026, 9, 1, 23, 30, 0, 0, loc)
	}
	assert.Equal(t, "2026-09-02", s.day())
}

func TestUnlockRowRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	row, err := s.GetUnlock()
	require.NoError(t, err)
	assert.Nil(t, row)

	require.NoError(t, s.PutUnlock("tok-1", 1000, 1900))
	row, err = s.GetUnlock()
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "tok-1", row.Token)
	assert.Equal(t, int64(1000), row.IssuedAt)
	assert.Equal(t, int64(1900), row.ExpiresAt)

	// Replacement keeps a single row.
	require.NoError(t, s.PutUnlock("tok-2", 2000, 2900))
	row, err = s.GetUnlock()
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "tok-2", row.Token)

	require.NoError(t, s.ClearUnlock())
	row, err = s.GetUnlock()
	require.NoError(t, err)
	assert.Nil(t, row)

	// Clearing again is a no-op.
	require.NoError(t, s.ClearUnlock())
}
