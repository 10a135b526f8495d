// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package client

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"prompthis/internal/gate"
)

// Mode is the single surface state of the session. The UI derives what to
// render from this one value instead of juggling boolean flags.
type Mode int

const (
	ModeIdle Mode = iota
	ModeGenerating
	ModeSignInRequired
	ModeUpgradeRequired
)

// HistoryEntry is one successful generation, most recent first.
type HistoryEntry struct {
	ID        uuid.UUID
	Text      string
	Template  string
	CreatedAt time.Time
}

// maxHistory bounds the in-memory history like a scrollback buffer.
const maxHistory = 50

// Session is the per-tab facade tying together the usage gate, the HTTP
// client, the current identity, and the generation history. Safe for
// concurrent use, though the UI normally serializes calls.
type Session struct {
	mu       sync.Mutex
	client   *Client
	gate     *gate.Gate
	identity *gate.Identity
	history  []HistoryEntry
	mode     Mode

	// now is injectable so tests can pin the gate's calendar day.
	now func() time.Time
}

// NewSession creates a session in the anonymous idle state.
func NewSession(c *Client) *Session {
	return &Session{
		client: c,
		gate:   gate.New(),
		now:    time.Now,
	}
}

// SignIn installs the identity and clears any sign-in block. History is
// cleared: it belongs to the account, not the tab.
func (s *Session) SignIn(id *gate.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = id
	s.history = nil
	s.mode = ModeIdle
}

// SignOut drops the identity, clears the history, and resets the gate's
// session counter so a newly signed-in account starts fresh.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.history = nil
	s.gate.SignOut()
	s.mode = ModeIdle
}

// Identity returns the current identity, nil when anonymous.
func (s *Session) Identity() *gate.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Mode returns the current surface state.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// History returns a copy of the generation history, most recent first.
func (s *Session) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// Generate runs one gated generation. A blocked attempt returns the gate's
// message without any network call and parks the session in the matching
// mode; a successful one records usage and prepends the history.
func (s *Session) Generate(ctx context.Context, req Request) Result {
	s.mu.Lock()
	id := s.identity
	now := s.now()

	decision := s.gate.Check(id, now)
	if !decision.Allowed {
		switch decision.Reason {
		case gate.ReasonSignInRequired:
			s.mode = ModeSignInRequired
		case gate.ReasonUpgradeRequired:
			s.mode = ModeUpgradeRequired
		}
		s.mu.Unlock()
		return Result{Err: decision.Message}
	}

	s.mode = ModeGenerating
	s.mu.Unlock()

	res := s.client.Generate(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeIdle

	if res.Failed() {
		return res
	}

	outcome := s.gate.RecordSuccess(id, s.now())
	if outcome.PromptSignIn {
		s.mode = ModeSignInRequired
	}

	s.history = append([]HistoryEntry{{
		ID:        uuid.New(),
		Text:      res.Text,
		Template:  req.Template,
		CreatedAt: s.now(),
	}}, s.history...)
	if len(s.history) > maxHistory {
		s.history = s.history[:maxHistory]
	}

	return res
}

// GateState exposes the gate's derived state for the current identity.
func (s *Session) GateState() gate.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.State(s.identity, s.now())
}
