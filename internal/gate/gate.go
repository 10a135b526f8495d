// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package gate implements the client-side usage policy: one free generation
// for anonymous visitors, then sign-in, then a rolling daily cap for free
// accounts, with paid tiers exempt. The gate holds only in-memory counters
// and is advisory — the server enforces the authoritative quota separately.
package gate

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"prompthis/internal/models"
)

const (
	// FreeSessionLimit is how many generations an anonymous visitor gets
	// before sign-in is required.
	FreeSessionLimit = 1

	// DailyLimit is the per-day cap for authenticated free-tier accounts.
	DailyLimit = 4
)

// Email markers for the legacy tier convention. Only consulted when the
// identity carries no server-resolved tier.
const (
	markerPlus     = "@plus."
	markerPlatinum = "@platinum."
)

// User-facing messages for the two block reasons.
const (
	MsgSignInRequired = "Please log in to continue generating prompts."
	MsgDailyLimit     = "Daily limit reached! Upgrade to Plus for unlimited prompts."
)

// TierFromEmail infers a tier from the identity's email address by
// substring markers. This is spoofable and exists only as a fallback for
// identities without a server-side entitlement record.
func TierFromEmail(email string) models.Tier {
	switch {
	case strings.Contains(email, markerPlatinum):
		return models.TierPlatinum
	case strings.Contains(email, markerPlus):
		return models.TierPlus
	default:
		return models.TierFree
	}
}

// Identity is the signed-in user as the gate sees it. Tier, when set, is
// the server-resolved entitlement; when empty the email-marker convention
// applies.
type Identity struct {
	ID    uuid.UUID
	Email string
	Tier  models.Tier
}

// tier resolves the identity's effective tier.
func (id *Identity) tier() models.Tier {
	if id == nil {
		return models.TierFree
	}
	if id.Tier != "" {
		return id.Tier
	}
	return TierFromEmail(id.Email)
}

// State is the derived gate state. It is computed on demand, never stored.
type State int

const (
	StateAnonymousUnused State = iota
	StateAnonymousUsed
	StateFreeUnderCap
	StateFreeAtCap
	StatePaid
)

// Reason says why a generation was blocked.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonSignInRequired
	ReasonUpgradeRequired
)

// Decision is the result of a gate check. Blocked decisions carry an
// actionable message naming sign-in or upgrade.
type Decision struct {
	Allowed bool
	Reason  Reason
	Message string
}

// Outcome reports side effects of recording a successful generation.
// PromptSignIn is informational: the generation already succeeded, but the
// UI should now invite the anonymous visitor to create an account.
type Outcome struct {
	PromptSignIn bool
}

// Gate tracks usage counters for one UI session. Counter updates are
// mutex-guarded so two generations completing back to back cannot corrupt
// the state, even though the UI normally serializes requests.
type Gate struct {
	mu           sync.Mutex
	sessionCount int    // lifetime generations this session, any identity
	dailyCount   int    // generations today for the free-tier identity
	lastDate     string // calendar date the daily counter belongs to
}

// New creates a gate with zeroed counters, as on page load.
func New() *Gate {
	return &Gate{}
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Check decides whether a generation attempt may proceed. It never mutates
// counters; call RecordSuccess after the generation completes.
func (g *Gate) Check(id *Identity, now time.Time) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id == nil {
		if g.sessionCount >= FreeSessionLimit {
			return Decision{Reason: ReasonSignInRequired, Message: MsgSignInRequired}
		}
		return Decision{Allowed: true}
	}

	if !id.tier().Paid() {
		if g.effectiveDaily(now) >= DailyLimit {
			return Decision{Reason: ReasonUpgradeRequired, Message: MsgDailyLimit}
		}
	}

	return Decision{Allowed: true}
}

// effectiveDaily returns the daily count as of now: zero if the stored
// date is not today. Caller must hold g.mu.
func (g *Gate) effectiveDaily(now time.Time) int {
	if g.lastDate != dateKey(now) {
		return 0
	}
	return g.dailyCount
}

// RecordSuccess updates the counters after a generation succeeded. The
// lifetime counter always advances; the daily counter advances only for a
// free-tier identity, resetting first if the calendar date changed.
func (g *Gate) RecordSuccess(id *Identity, now time.Time) Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.sessionCount++

	if id != nil && !id.tier().Paid() {
		today := dateKey(now)
		if g.lastDate != today {
			g.dailyCount = 1
			g.lastDate = today
		} else {
			g.dailyCount++
		}
	}

	return Outcome{PromptSignIn: g.sessionCount == FreeSessionLimit && id == nil}
}

// SignOut clears the lifetime session counter. The daily counter is kept:
// it is keyed to the calendar date, not the session.
func (g *Gate) SignOut() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessionCount = 0
}

// State derives the current gate state for the given identity.
func (g *Gate) State(id *Identity, now time.Time) State {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id == nil {
		if g.sessionCount >= FreeSessionLimit {
			return StateAnonymousUsed
		}
		return StateAnonymousUnused
	}
	if id.tier().Paid() {
		return StatePaid
	}
	if g.effectiveDaily(now) >= DailyLimit {
		return StateFreeAtCap
	}
	return StateFreeUnderCap
}

// Counts returns the current session and daily counters, for display.
func (g *Gate) Counts() (session, daily int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessionCount, g.dailyCount
}
