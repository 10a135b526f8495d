// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package usage provides the authoritative daily generation quota, counted
// in Valkey per user id and calendar date. The client-side gate is advisory;
// this counter is what the generation endpoint actually enforces for
// authenticated free-tier users.
package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces quota keys in Valkey.
	keyPrefix = "usage:"

	// DefaultDailyLimit matches the client-side gate's free-tier cap.
	DefaultDailyLimit = 4

	// keyTTL keeps a day's counter around long enough to cover clock skew
	// between server and clients before Valkey expires it.
	keyTTL = 48 * time.Hour
)

// Quota counts generations per user per calendar day.
type Quota struct {
	client *redis.Client
	limit  int
}

// New creates a quota counter backed by the given Valkey client.
func New(client *redis.Client, limit int) *Quota {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	return &Quota{client: client, limit: limit}
}

// Limit returns the configured daily cap.
func (q *Quota) Limit() int { return q.limit }

func key(userID uuid.UUID, day time.Time) string {
	return keyPrefix + userID.String() + ":" + day.Format("2006-01-02")
}

// Reserve atomically takes one slot from the user's daily quota. It returns
// false when the day's limit is already spent. INCR creates the key at 1 on
// first use, so the check and the increment cannot race across concurrent
// requests.
func (q *Quota) Reserve(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error) {
	k := key(userID, now)

	n, err := q.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("usage reserve: %w", err)
	}
	if n == 1 {
		// First generation of the day; set the expiry once.
		if err := q.client.Expire(ctx, k, keyTTL).Err(); err != nil {
			return false, fmt.Errorf("usage expire: %w", err)
		}
	}

	return n <= int64(q.limit), nil
}

// Release gives back a slot reserved by Reserve, used when the upstream
// generation fails so the user does not burn quota on provider errors.
func (q *Quota) Release(ctx context.Context, userID uuid.UUID, now time.Time) error {
	if err := q.client.Decr(ctx, key(userID, now)).Err(); err != nil {
		return fmt.Errorf("usage release: %w", err)
	}
	return nil
}

// Count returns the number of generations recorded for the user today.
func (q *Quota) Count(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	n, err := q.client.Get(ctx, key(userID, now)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("usage count: %w", err)
	}
	return n, nil
}
