// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"prompthis/internal/ai"
	"prompthis/internal/gate"
	"prompthis/internal/middleware"
	"prompthis/internal/models"
	"prompthis/internal/prompt"
	"prompthis/internal/session"
)

// Client-facing messages for the generation endpoint. The secret key and
// provider details never leak into these.
const (
	msgMisconfigured = "AI provider is not configured properly. Please contact support."
	msgRateLimited   = "Rate limit exceeded. Please try again in a moment."
	msgUpstream      = "AI provider error. Please try again later."
	msgNetwork       = "Network error. Please try again."
	msgGenerateFail  = "Failed to generate prompt. Please try again."
)

// generateRequest is the body of POST /api/generate-prompt. All fields are
// optional; an empty body composes an (empty) template prompt.
type generateRequest struct {
	Template     string            `json:"template"`
	Parameters   map[string]string `json:"parameters"`
	CustomPrompt string            `json:"customPrompt"`
}

// GeneratePrompt proxies a prompt-enhancement request to the active AI
// provider. Anonymous visitors are served; authenticated free-tier users
// spend one slot of their daily quota per successful generation.
func (a *API) GeneratePrompt(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	// Credential preflight: a missing or implausible key is a server
	// misconfiguration, reported before any quota or upstream spend.
	provider, err := a.registry.Active()
	if err != nil || !provider.Ready() {
		slog.Error("generation blocked: provider not configured", "provider", a.registry.ActiveName())
		writeError(w, http.StatusInternalServerError, msgMisconfigured)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	release, err := a.reserveQuota(r, sess)
	if err != nil {
		writeError(w, http.StatusTooManyRequests, gate.MsgDailyLimit)
		return
	}

	instr := prompt.Compose(req.Template, req.Parameters, req.CustomPrompt)

	text, err := a.registry.Generate(r.Context(), instr.System, instr.User)
	if err != nil {
		release()
		a.writeGenerateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"generatedPrompt": strings.TrimSpace(text),
	})
}

// errQuotaSpent reports a daily cap hit to GeneratePrompt.
var errQuotaSpent = errors.New("daily quota spent")

// timeNow is swapped out by tests that pin the quota day.
var timeNow = time.Now

// reserveQuota takes a daily quota slot for authenticated free-tier users.
// Paid users and anonymous visitors pass through. The returned func gives
// the slot back; it is a no-op when nothing was reserved.
func (a *API) reserveQuota(r *http.Request, sess *session.Data) (func(), error) {
	noop := func() {}

	if sess == nil || !sess.TwoFADone || a.quota == nil {
		return noop, nil
	}
	if a.resolveTier(sess).Paid() {
		return noop, nil
	}

	ok, err := a.quota.Reserve(r.Context(), sess.UserID, timeNow())
	if err != nil {
		// Quota backend down: log and let the request through rather than
		// failing every free-tier generation.
		slog.Warn("quota reserve failed, allowing request", "error", err)
		return noop, nil
	}
	if !ok {
		return noop, errQuotaSpent
	}

	userID := sess.UserID
	return func() {
		if err := a.quota.Release(r.Context(), userID, timeNow()); err != nil {
			slog.Warn("quota release failed", "error", err)
		}
	}, nil
}

// resolveTier determines the user's effective tier: the entitlement record
// written by the billing webhook wins; the email-marker convention is only
// a fallback for accounts that never went through checkout.
func (a *API) resolveTier(sess *session.Data) models.Tier {
	if a.entitlements != nil {
		ent, err := a.entitlements.Get(sess.UserID)
		if err != nil {
			slog.Error("entitlement lookup failed", "error", err, "user_id", sess.UserID)
		} else if ent != nil {
			return ent.Tier
		}
	}
	return gate.TierFromEmail(sess.Email)
}

// writeGenerateError maps a provider failure to the endpoint's error
// contract.
func (a *API) writeGenerateError(w http.ResponseWriter, err error) {
	var statusErr *ai.StatusError
	var urlErr *url.Error

	switch {
	case errors.Is(err, ai.ErrNotConfigured), errors.Is(err, ai.ErrUnauthorized):
		slog.Error("provider credential rejected", "error", err)
		writeError(w, http.StatusInternalServerError, msgMisconfigured)
	case errors.Is(err, ai.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, msgRateLimited)
	case errors.Is(err, ai.ErrUpstream):
		writeError(w, http.StatusBadGateway, msgUpstream)
	case errors.As(err, &statusErr):
		msg := statusErr.Message
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", statusErr.StatusCode)
		}
		writeError(w, statusErr.StatusCode, msg)
	case errors.As(err, &urlErr):
		slog.Error("provider unreachable", "error", err)
		writeError(w, http.StatusInternalServerError, msgNetwork)
	default:
		slog.Error("generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgGenerateFail)
	}
}
