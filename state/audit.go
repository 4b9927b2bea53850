package state

import (
	"time"

	"ordergate/pkg/clierr"
)

// AuditRecord is one guardrail decision as observed by the command
// layer. Recorded after the decision is made, never by the enforcer
// itself, so a blocked check still leaves a trace without the engine
// taking on side effects.
type AuditRecord struct {
	AuditID   string
	At        time.Time
	Command   string
	Symbol    string
	AssetType string
	Verdict   string
	Reason    string
	Notional  float64
}

const (
	VerdictAllowed = "allowed"
	VerdictBlocked = "blocked"
)

func (s *Store) RecordAudit(rec AuditRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO guard_audit
		(audit_id, at, command, symbol, asset_type, verdict, reason, notional)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.AuditID, rec.At, rec.Command, rec.Symbol,
		rec.AssetType, rec.Verdict, rec.Reason, rec.Notional,
	)
	if err != nil {
		return clierr.Internal("record audit entry", err)
	}
	return nil
}

// ListAuditBetween returns audit records with at within [start, end),
// oldest first.
func (s *Store) ListAuditBetween(start, end time.Time) ([]AuditRecord, error) {
	rows, err := s.db.Query(`
		SELECT audit_id, at, command, symbol, asset_type, verdict, reason, notional
		FROM guard_audit
		WHERE at >= ? AND at < ?
		ORDER BY at ASC`, start, end)
	if err != nil {
		return nil, clierr.Internal("query audit entries", err)
	}
	defer rows.Close()

	var out []AuditRecord
	for rows.Next() {
		var rec AuditRecord
		if err := rows.Scan(
			&rec.AuditID,
			&rec.At,
			&rec.Command,
			&rec.Symbol,
			&rec.AssetType,
			&rec.Verdict,
			&rec.Reason,
			&rec.Notional,
		); err != nil {
			return nil, clierr.Internal("scan audit entry", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, clierr.Internal("iterate audit entries", err)
	}
	return out, nil
}
