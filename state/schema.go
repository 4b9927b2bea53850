// state/schema.go
package state

const Schema = `
CREATE TABLE IF NOT EXISTS daily_notional (
	day TEXT PRIMARY KEY,
	notional REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS live_unlock (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	token TEXT NOT NULL,
	issued_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS guard_audit (
	audit_id TEXT PRIMARY KEY,
	at DATETIME NOT NULL,
	command TEXT NOT NULL,
	symbol TEXT NOT NULL,
	asset_type TEXT NOT NULL,
	verdict TEXT NOT NULL,
	reason TEXT NOT NULL,
	notional REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_guard_audit_at ON guard_audit(at);
`
