// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Tier is a subscription level. Free accounts are capped at a daily number
// of generations; paid tiers are exempt.
type Tier string

const (
	TierFree     Tier = "free"
	TierPlus     Tier = "plus"
	TierPlatinum Tier = "platinum"
)

// Paid returns true for tiers exempt from the daily generation cap.
func (t Tier) Paid() bool {
	return t == TierPlus || t == TierPlatinum
}

// User represents an account with password authentication and optional
// TOTP two-factor fields.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA enrollment
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
