// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package billing is a thin client for the payment provider's REST API.
// This service only starts checkout sessions and records the webhook
// confirmations; settlement itself happens entirely on the provider's
// hosted pages.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client calls the billing provider with the server-held secret key.
type Client struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

// New creates a billing client. baseURL defaults to the provider's
// production endpoint.
func New(secretKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &Client{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether a secret key is present. Checkout endpoints
// answer with a misconfiguration error when it is not.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.secretKey) != ""
}

// CheckoutSession is the provider's session handle. URL is where the
// browser is redirected to complete payment.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutParams describes one subscription checkout.
type CheckoutParams struct {
	PriceID    string
	PlanID     string // recorded as metadata so the webhook knows the tier
	UserID     string // client_reference_id, ties the session to our account
	SuccessURL string
	CancelURL  string
}

// CreateCheckoutSession starts a subscription checkout and returns the
// session to redirect the user to.
func (c *Client) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("payment_method_types[]", "card")
	form.Set("line_items[0][price]", p.PriceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)
	form.Set("client_reference_id", p.UserID)
	form.Set("metadata[plan]", p.PlanID)

	endpoint := c.baseURL + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("billing request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("billing http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("billing read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("billing API error (status %d): %s", resp.StatusCode, providerErrorMessage(body))
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("billing unmarshal: %w", err)
	}
	return &session, nil
}

// providerErrorMessage pulls the human-readable message out of a provider
// error body, falling back to the raw body.
func providerErrorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return string(body)
}
