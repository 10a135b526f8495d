// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gate

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"prompthis/internal/models"
)

var (
	monday  = time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	tuesday = monday.Add(24 * time.Hour)
)

func freeIdentity() *Identity {
	return &Identity{ID: uuid.New(), Email: "user@example.com"}
}

func TestTierFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  models.Tier
	}{
		{"user@example.com", models.TierFree},
		{"user@plus.example.com", models.TierPlus},
		{"user@platinum.example.com", models.TierPlatinum},
		{"", models.TierFree},
	}
	for _, tt := range tests {
		if got := TierFromEmail(tt.email); got != tt.want {
			t.Errorf("TierFromEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestAnonymous_ExactlyOneFreeGeneration(t *testing.T) {
	g := New()

	d := g.Check(nil, monday)
	if !d.Allowed {
		t.Fatalf("fresh anonymous session must permit the first generation: %+v", d)
	}

	out := g.RecordSuccess(nil, monday)
	if !out.PromptSignIn {
		t.Error("first anonymous success must prompt sign-in (informational)")
	}

	d = g.Check(nil, monday)
	if d.Allowed {
		t.Fatal("second anonymous attempt must be blocked")
	}
	if d.Reason != ReasonSignInRequired || d.Message != MsgSignInRequired {
		t.Errorf("block: got %+v", d)
	}
}

func TestSignedInIdentity_NoSignInPrompt(t *testing.T) {
	g := New()
	if out := g.RecordSuccess(freeIdentity(), monday); out.PromptSignIn {
		t.Error("signed-in success must not prompt sign-in")
	}
}

func TestDailyReset_NewDayTreatsCounterAsZero(t *testing.T) {
	g := New()
	g.dailyCount = 4
	g.lastDate = dateKey(monday)
	id := freeIdentity()

	if d := g.Check(id, monday); d.Allowed {
		t.Fatal("at-cap identity must be blocked on the same day")
	}

	d := g.Check(id, tuesday)
	if !d.Allowed {
		t.Fatalf("new day must reset the counter for the check: %+v", d)
	}

	g.RecordSuccess(id, tuesday)
	if g.dailyCount != 1 || g.lastDate != dateKey(tuesday) {
		t.Errorf("after success on new day: daily=%d date=%q, want 1 and %q",
			g.dailyCount, g.lastDate, dateKey(tuesday))
	}
}

func TestDailyCap_BlocksWithUpgradeOffer(t *testing.T) {
	g := New()
	g.dailyCount = DailyLimit
	g.lastDate = dateKey(monday)

	d := g.Check(freeIdentity(), monday)
	if d.Allowed {
		t.Fatal("free identity at cap must be blocked")
	}
	if d.Reason != ReasonUpgradeRequired || d.Message != MsgDailyLimit {
		t.Errorf("block: got %+v", d)
	}
}

func TestPaidTier_ExemptFromDailyCap(t *testing.T) {
	g := New()
	g.dailyCount = 10
	g.lastDate = dateKey(monday)

	plus := &Identity{ID: uuid.New(), Email: "user@plus.example.com"}
	if d := g.Check(plus, monday); !d.Allowed {
		t.Errorf("plus-marker identity must be permitted at any count: %+v", d)
	}

	// Server-resolved tier wins over the email convention.
	resolved := &Identity{ID: uuid.New(), Email: "user@example.com", Tier: models.TierPlatinum}
	if d := g.Check(resolved, monday); !d.Allowed {
		t.Errorf("entitled identity must be permitted: %+v", d)
	}

	// Paid successes advance only the lifetime counter.
	g.RecordSuccess(plus, monday)
	if g.dailyCount != 10 {
		t.Errorf("paid success must not touch the daily counter: got %d", g.dailyCount)
	}
}

func TestResolvedFreeTier_OverridesPaidEmailMarker(t *testing.T) {
	g := New()
	g.dailyCount = DailyLimit
	g.lastDate = dateKey(monday)

	// Entitlement record says free even though the email claims plus.
	id := &Identity{ID: uuid.New(), Email: "user@plus.example.com", Tier: models.TierFree}
	if d := g.Check(id, monday); d.Allowed {
		t.Error("server-resolved free tier must be capped despite the email marker")
	}
}

func TestDailyIncrement_SameDay(t *testing.T) {
	g := New()
	id := freeIdentity()

	for i := 1; i <= DailyLimit; i++ {
		if d := g.Check(id, monday); !d.Allowed {
			t.Fatalf("generation %d must be permitted", i)
		}
		g.RecordSuccess(id, monday)
		if g.dailyCount != i {
			t.Fatalf("after %d successes: daily=%d", i, g.dailyCount)
		}
	}

	if d := g.Check(id, monday); d.Allowed {
		t.Errorf("generation %d must be blocked", DailyLimit+1)
	}
}

func TestSignOut_ClearsSessionNotDaily(t *testing.T) {
	g := New()
	id := freeIdentity()
	g.RecordSuccess(id, monday)
	g.RecordSuccess(id, monday)

	g.SignOut()

	session, daily := g.Counts()
	if session != 0 {
		t.Errorf("session counter after sign-out: got %d, want 0", session)
	}
	if daily != 2 {
		t.Errorf("daily counter after sign-out: got %d, want 2", daily)
	}
}

func TestState_Derivation(t *testing.T) {
	g := New()

	if s := g.State(nil, monday); s != StateAnonymousUnused {
		t.Errorf("fresh: got %v", s)
	}
	g.RecordSuccess(nil, monday)
	if s := g.State(nil, monday); s != StateAnonymousUsed {
		t.Errorf("after one: got %v", s)
	}

	id := freeIdentity()
	if s := g.State(id, monday); s != StateFreeUnderCap {
		t.Errorf("free under cap: got %v", s)
	}

	g.dailyCount = DailyLimit
	g.lastDate = dateKey(monday)
	if s := g.State(id, monday); s != StateFreeAtCap {
		t.Errorf("free at cap: got %v", s)
	}
	if s := g.State(id, tuesday); s != StateFreeUnderCap {
		t.Errorf("at cap but new day: got %v", s)
	}

	plus := &Identity{Email: "a@plus.b"}
	if s := g.State(plus, monday); s != StatePaid {
		t.Errorf("paid: got %v", s)
	}
}

func TestRecordSuccess_SafeUnderConcurrentCompletions(t *testing.T) {
	g := New()
	id := freeIdentity()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.RecordSuccess(id, monday)
		}()
	}
	wg.Wait()

	session, daily := g.Counts()
	if session != 2 || daily != 2 {
		t.Errorf("counters after two racing completions: session=%d daily=%d, want 2/2", session, daily)
	}
}
