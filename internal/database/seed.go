package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: one free-tier
// account and one account with a plus entitlement, so the daily cap and the
// paid exemption can both be exercised locally. No-op if users exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var freeID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id
	`, "demo@prompthis.local", string(hash)).Scan(&freeID)
	if err != nil {
		return fmt.Errorf("seed insert free user: %w", err)
	}

	var paidID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id
	`, "paid@prompthis.local", string(hash)).Scan(&paidID)
	if err != nil {
		return fmt.Errorf("seed insert paid user: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO entitlements (user_id, tier, subscription_id) VALUES ($1, 'plus', 'seed')
	`, paidID)
	if err != nil {
		return fmt.Errorf("seed insert entitlement: %w", err)
	}

	slog.Info("database seeded with demo users",
		"free", "demo@prompthis.local",
		"paid", "paid@prompthis.local",
		"password", "password",
	)

	return nil
}
