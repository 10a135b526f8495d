package models

import (
	"time"

	"github.com/google/uuid"
)

// Entitlement is the server-controlled record of a user's paid tier.
// Rows are written only by the billing webhook handler after a completed
// checkout; nothing derived from client-visible data may update them.
type Entitlement struct {
	UserID         uuid.UUID `json:"user_id"`
	Tier           Tier      `json:"tier"`
	SubscriptionID string    `json:"subscription_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
