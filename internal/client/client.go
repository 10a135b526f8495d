// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package client is the front-end side of the generation API: an
// error-normalizing HTTP caller plus the per-tab session facade that
// applies the usage gate and keeps generation history.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// User-facing messages for the two failure families the UI distinguishes.
const (
	msgNetworkError = "Network error. Please check your internet connection and try again."
)

// Request is the body of a generation call. All fields are optional; the
// server composes whatever it is given.
type Request struct {
	Template     string            `json:"template"`
	Parameters   map[string]string `json:"parameters,omitempty"`
	CustomPrompt string            `json:"customPrompt,omitempty"`
}

// Result is the outcome of a generation call. Failures are carried as a
// display-ready message in Err, never as a Go error: the UI renders them,
// it does not branch on them.
type Result struct {
	Text string
	Err  string
}

// Failed reports whether the call produced an error message.
func (r Result) Failed() bool { return r.Err != "" }

// Client calls the generation endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a generation client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 90 * time.Second},
	}
}

// Generate calls POST /api/generate-prompt and normalizes every failure
// into Result.Err. Transport failures get the network message; HTTP
// failures surface the server's {error} message when one is present.
func (c *Client) Generate(ctx context.Context, req Request) Result {
	payload, err := json.Marshal(req)
	if err != nil {
		return Result{Err: "Failed to generate prompt. Please try again."}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-prompt", bytes.NewReader(payload))
	if err != nil {
		return Result{Err: "Failed to generate prompt. Please try again."}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{Err: msgNetworkError}
	}
	defer resp.Body.Close()

	var body struct {
		GeneratedPrompt string `json:"generatedPrompt"`
		Error           string `json:"error"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && body.Error != "" {
			return Result{Err: body.Error}
		}
		return Result{Err: fmt.Sprintf("Request failed (%d)", resp.StatusCode)}
	}

	if decodeErr != nil {
		return Result{Err: "Failed to generate prompt. Please try again."}
	}
	return Result{Text: body.GeneratedPrompt}
}
