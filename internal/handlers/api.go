// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON API handlers: prompt generation,
// authentication, templates, and billing.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"prompthis/internal/ai"
	"prompthis/internal/billing"
	"prompthis/internal/models"
	"prompthis/internal/session"
	"prompthis/internal/store"
	"prompthis/internal/usage"
)

// API groups the HTTP handlers and their dependencies.
type API struct {
	sessions     *session.Store
	users        *store.UserStore
	entitlements *store.EntitlementStore
	registry     *ai.Registry
	quota        *usage.Quota
	billing      *billing.Client

	webhookSecret string
	plans         []models.Plan
	successURL    string
	cancelURL     string
}

// Config carries the handler dependencies and billing settings.
type Config struct {
	Sessions     *session.Store
	Users        *store.UserStore
	Entitlements *store.EntitlementStore
	Registry     *ai.Registry
	Quota        *usage.Quota
	Billing      *billing.Client

	WebhookSecret string
	Plans         []models.Plan
	SuccessURL    string
	CancelURL     string
}

// NewAPI creates the API handler group.
func NewAPI(cfg Config) *API {
	return &API{
		sessions:      cfg.Sessions,
		users:         cfg.Users,
		entitlements:  cfg.Entitlements,
		registry:      cfg.Registry,
		quota:         cfg.Quota,
		billing:       cfg.Billing,
		webhookSecret: cfg.WebhookSecret,
		plans:         cfg.Plans,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
	}
}

// writeJSON encodes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError sends the API's uniform error shape: {"error": "..."}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Health answers liveness probes.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
