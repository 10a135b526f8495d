// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Integration tests — skipped when Valkey is unavailable.
package usage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testClient returns a Valkey client on DB 15, skipping if unreachable.
func testClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "usage:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func TestReserve_CapEnforced(t *testing.T) {
	q := New(testClient(t), 4)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	for i := 1; i <= 4; i++ {
		ok, err := q.Reserve(ctx, userID, now)
		if err != nil {
			t.Fatalf("Reserve %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("Reserve %d: expected slot within the limit", i)
		}
	}

	ok, err := q.Reserve(ctx, userID, now)
	if err != nil {
		t.Fatalf("Reserve over limit: %v", err)
	}
	if ok {
		t.Error("Reserve: fifth slot must be denied")
	}
}

func TestReserve_SeparateDaysAndUsers(t *testing.T) {
	q := New(testClient(t), 1)
	ctx := context.Background()
	userA, userB := uuid.New(), uuid.New()
	today := time.Now()
	tomorrow := today.Add(24 * time.Hour)

	if ok, _ := q.Reserve(ctx, userA, today); !ok {
		t.Fatal("first slot for user A today must succeed")
	}
	if ok, _ := q.Reserve(ctx, userA, today); ok {
		t.Error("second slot for user A today must be denied")
	}
	if ok, _ := q.Reserve(ctx, userA, tomorrow); !ok {
		t.Error("user A must get a fresh counter tomorrow")
	}
	if ok, _ := q.Reserve(ctx, userB, today); !ok {
		t.Error("user B must have an independent counter")
	}
}

func TestRelease_ReturnsSlot(t *testing.T) {
	q := New(testClient(t), 1)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	if ok, _ := q.Reserve(ctx, userID, now); !ok {
		t.Fatal("first slot must succeed")
	}
	if err := q.Release(ctx, userID, now); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if ok, _ := q.Reserve(ctx, userID, now); !ok {
		t.Error("slot must be available again after Release")
	}

	n, err := q.Count(ctx, userID, now)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count: got %d, want 1", n)
	}
}

func TestCount_ZeroWithoutKey(t *testing.T) {
	q := New(testClient(t), 4)
	n, err := q.Count(context.Background(), uuid.New(), time.Now())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("Count on fresh user: got %d, want 0", n)
	}
}
