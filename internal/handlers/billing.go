// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"prompthis/internal/billing"
	"prompthis/internal/middleware"
	"prompthis/internal/models"
)

// maxWebhookBody bounds the webhook payload we are willing to read.
const maxWebhookBody = 1 << 20

// Plans returns the pricing catalog for the upgrade screen.
func (a *API) Plans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"plans": a.plans})
}

// CreateCheckout starts a subscription checkout for the signed-in user and
// returns the provider URL to redirect the browser to.
func (a *API) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	if a.billing == nil || !a.billing.Configured() {
		writeError(w, http.StatusInternalServerError, "Billing is not configured. Please contact support.")
		return
	}

	var req struct {
		Plan string `json:"plan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	plan, ok := models.FindPlan(a.plans, req.Plan)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown plan.")
		return
	}

	session, err := a.billing.CreateCheckoutSession(r.Context(), billing.CheckoutParams{
		PriceID:    plan.PriceID,
		PlanID:     plan.ID,
		UserID:     sess.UserID.String(),
		SuccessURL: a.successURL,
		CancelURL:  a.cancelURL,
	})
	if err != nil {
		slog.Error("checkout session failed", "error", err, "plan", plan.ID)
		writeError(w, http.StatusBadGateway, "Could not start checkout. Please try again later.")
		return
	}

	slog.Info("checkout started", "user_id", sess.UserID, "plan", plan.ID)
	writeJSON(w, http.StatusOK, map[string]string{"url": session.URL})
}

// Webhook receives billing provider events. A verified
// checkout.session.completed event writes the user's entitlement; this is
// the only code path that grants a paid tier.
func (a *API) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read request body.")
		return
	}

	event, err := billing.ParseEvent(payload, r.Header.Get("Stripe-Signature"), a.webhookSecret, time.Now())
	if err != nil {
		slog.Warn("webhook rejected", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid signature.")
		return
	}

	if event.Type != "checkout.session.completed" {
		// Not an event we act on; acknowledge so the provider stops retrying.
		w.WriteHeader(http.StatusOK)
		return
	}

	checkout, err := event.Checkout()
	if err != nil {
		slog.Error("webhook decode failed", "error", err, "event", event.ID)
		writeError(w, http.StatusBadRequest, "Malformed event.")
		return
	}

	userID, err := uuid.Parse(checkout.ClientReferenceID)
	if err != nil {
		slog.Error("webhook has no valid user reference", "event", event.ID)
		writeError(w, http.StatusBadRequest, "Malformed event.")
		return
	}

	tier, ok := models.PlanTier(checkout.Metadata.Plan)
	if !ok {
		slog.Error("webhook names unknown plan", "event", event.ID, "plan", checkout.Metadata.Plan)
		writeError(w, http.StatusBadRequest, "Malformed event.")
		return
	}

	if err := a.entitlements.Upsert(userID, tier, checkout.Subscription); err != nil {
		slog.Error("entitlement upsert failed", "error", err, "user_id", userID)
		// Non-2xx so the provider retries the event.
		writeError(w, http.StatusInternalServerError, "Could not record entitlement.")
		return
	}

	slog.Info("entitlement granted", "user_id", userID, "tier", tier)
	w.WriteHeader(http.StatusOK)
}
