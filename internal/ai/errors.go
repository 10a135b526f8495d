// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying provider failures. The generation endpoint
// maps these to HTTP statuses; everything else surfaces as *StatusError or
// a transport error.
var (
	// ErrNotConfigured means the provider credential is missing or too
	// short to be real. Retrying cannot fix this.
	ErrNotConfigured = errors.New("ai: provider credential not configured")

	// ErrUnauthorized means the provider rejected our credential.
	// Like ErrNotConfigured, this is a server-side misconfiguration.
	ErrUnauthorized = errors.New("ai: provider rejected credentials")

	// ErrRateLimited means the provider throttled the request. Retryable
	// after a delay.
	ErrRateLimited = errors.New("ai: provider rate limit exceeded")

	// ErrUpstream means the provider reported an internal failure.
	ErrUpstream = errors.New("ai: provider internal error")
)

// StatusError carries any other non-success provider status along with the
// provider's own error message, if it sent one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ai: provider error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ai: provider error (status %d)", e.StatusCode)
}

// classifyStatus converts a non-200 provider status into the matching
// sentinel error, falling back to a StatusError with the provider message.
func classifyStatus(status int, message string) error {
	switch status {
	case 401:
		return ErrUnauthorized
	case 429:
		return ErrRateLimited
	case 500:
		return ErrUpstream
	default:
		return &StatusError{StatusCode: status, Message: message}
	}
}
