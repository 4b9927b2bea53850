package guard

import (
	"time"

	"ordergate/config"
	"ordergate/pkg/clierr"
	"ordergate/pkg/id"
	"ordergate/state"
)

// Gate is the live-mode arm step: a persisted on/off flag plus a
// time-boxed single-slot unlock token, required together before any
// real-money order regardless of credential validity.
type Gate struct {
	cfg   *config.SafetyConfig
	store *state.Store

	now func() time.Time
}

func NewGate(cfg *config.SafetyConfig, store *state.Store) *Gate {
	return &Gate{cfg: cfg, store: store, now: time.Now}
}

// SetLiveMode toggles the config flag only. Existing tokens are
// untouched; persisting the config is the caller's job.
func (g *Gate) SetLiveMode(enabled bool) {
	g.cfg.LiveMode = enabled
}

func (g *Gate) LiveModeEnabled() bool {
	return g.cfg.LiveMode
}

// RequireLiveMode fails when the live-mode flag is off. Callers check
// this before attempting token authorization.
func (g *Gate) RequireLiveMode() error {
	if !g.cfg.LiveMode {
		return clierr.New(clierr.LiveModeOff,
			"Live mode is OFF. Enable with `ordergate live on`.")
	}
	return nil
}

// IssueUnlock generates a fresh opaque token valid for ttlSeconds
// (clamped to at least 1) and atomically replaces any prior token. This
// is the only way a valid token comes into existence.
func (g *Gate) IssueUnlock(ttlSeconds int) (token string, expiresAt int64, err error) {
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	token = id.NewSecret()
	issuedAt := g.now().Unix()
	expiresAt = issuedAt + int64(ttlSeconds)

	if err := g.store.PutUnlock(token, issuedAt, expiresAt); err != nil {
		return "", 0, err
	}
	return token, expiresAt, nil
}

// UnlockStatus reports whether an unexpired token is currently stored.
// ExpiresAt is nil when no token row exists.
type UnlockStatus struct {
	Active    bool   `json:"active"`
	ExpiresAt *int64 `json:"expires_at"`
}

func (g *Gate) Status() (UnlockStatus, error) {
	row, err := g.store.GetUnlock()
	if err != nil {
		return UnlockStatus{}, err
	}
	if row == nil {
		return UnlockStatus{Active: false, ExpiresAt: nil}, nil
	}
	exp := row.ExpiresAt
	return UnlockStatus{
		Active:    g.now().Unix() < exp,
		ExpiresAt: &exp,
	}, nil
}

// Clear deletes the stored token unconditionally. Idempotent.
func (g *Gate) Clear() error {
	return g.store.ClearUnlock()
}

// RequireAuthorization validates suppliedToken against the stored token:
// it must exist, match exactly, and be unexpired. This is a pure
// read-time check, it transitions no state and deliberately does not
// re-check the live-mode flag (callers gate on RequireLiveMode first).
func (g *Gate) RequireAuthorization(suppliedToken string) error {
	row, err := g.store.GetUnlock()
	if err != nil {
		return err
	}
	if row == nil {
		return clierr.Blockf("no live unlock token issued; run `ordergate live unlock`")
	}
	if suppliedToken == "" || suppliedToken != row.Token {
		return clierr.Blockf("live unlock token missing or does not match")
	}
	if g.now().Unix() >= row.ExpiresAt {
		return clierr.Blockf("live unlock token expired at %d; run `ordergate live unlock`", row.ExpiresAt)
	}
	return nil
}
