package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"prompthis/internal/models"
)

// EntitlementStore handles the server-controlled plan-tier records.
// Only the billing webhook handler writes here; the generation endpoint
// and the session handler read.
type EntitlementStore struct {
	db *sql.DB
}

// NewEntitlementStore creates a new EntitlementStore.
func NewEntitlementStore(db *sql.DB) *EntitlementStore {
	return &EntitlementStore{db: db}
}

// Get retrieves the entitlement for a user. Returns nil if the user has
// never purchased a plan.
func (s *EntitlementStore) Get(userID uuid.UUID) (*models.Entitlement, error) {
	e := &models.Entitlement{}
	err := s.db.QueryRow(`
		SELECT user_id, tier, subscription_id, created_at, updated_at
		FROM entitlements WHERE user_id = $1
	`, userID).Scan(&e.UserID, &e.Tier, &e.SubscriptionID, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entitlement: %w", err)
	}
	return e, nil
}

// Upsert records or replaces the user's tier after a completed checkout.
func (s *EntitlementStore) Upsert(userID uuid.UUID, tier models.Tier, subscriptionID string) error {
	_, err := s.db.Exec(`
		INSERT INTO entitlements (user_id, tier, subscription_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET tier = EXCLUDED.tier, subscription_id = EXCLUDED.subscription_id, updated_at = NOW()
	`, userID, tier, subscriptionID)
	if err != nil {
		return fmt.Errorf("upsert entitlement: %w", err)
	}
	return nil
}

// Delete removes a user's entitlement, dropping them back to the free tier.
func (s *EntitlementStore) Delete(userID uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM entitlements WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete entitlement: %w", err)
	}
	return nil
}
