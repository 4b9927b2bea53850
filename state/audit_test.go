package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordergate/pkg/id"
)

func TestAuditRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	at := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	rec := AuditRecord{
		AuditID:   id.New(),
		At:        at,
		Command:   "check stock",
		Symbol:    "AAPL",
		AssetType: "stock",
		Verdict:   VerdictBlocked,
		Reason:    "estimated order notional 600.00 exceeds max_order_notional 500.00",
		Notional:  0,
	}
	require.NoError(t, s.RecordAudit(rec))

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	recs, err := s.ListAuditBetween(start, start.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	got := recs[0]
	assert.Equal(t, rec.AuditID, got.AuditID)
	assert.True(t, got.At.Equal(at))
	assert.Equal(t, rec.Command, got.Command)
	assert.Equal(t, rec.Symbol, got.Symbol)
	assert.Equal(t, rec.AssetType, got.AssetType)
	assert.Equal(t, rec.Verdict, got.Verdict)
	assert.Equal(t, rec.Reason, got.Reason)
}

func TestAuditFiltersByDayAndOrders(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	day1 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	put := func(at time.Time, symbol string) {
		require.NoError(t, s.RecordAudit(AuditRecord{
			AuditID:   id.New(),
			At:        at,
			Command:   "check stock",
			Symbol:    symbol,
			AssetType: "stock",
			Verdict:   VerdictAllowed,
			Notional:  100,
		}))
	}

	put(day1.Add(15*time.Hour), "MSFT")
	put(day1.Add(9*time.Hour), "AAPL")
	put(day2.Add(time.Hour), "TSLA")

	recs, err := s.ListAuditBetween(day1, day2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	// Oldest first.
	assert.Equal(t, "AAPL", recs[0].Symbol)
	assert.Equal(t, "MSFT", recs[1].Symbol)

	recs, err = s.ListAuditBetween(day2, day2.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "TSLA", recs[0].Symbol)
}
