// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides HTTP clients for LLM providers behind a common
// Provider interface. The Registry selects the active provider by name.
// Provider failures are classified into the sentinel errors in errors.go
// so the generation endpoint can map them to client-facing categories.
package ai

import (
	"context"
	"strings"
	"sync"
)

// Generation parameters shared by all providers. Output length is bounded
// and the temperature favours coherent but non-deterministic phrasing.
const (
	maxOutputTokens = 500
	temperature     = 0.7

	// minKeyLength is the shortest credential we accept as plausibly real.
	// Anything shorter is treated as a server misconfiguration before any
	// external call is made.
	minKeyLength = 20
)

// Provider is implemented by each LLM client. Each provider handles its
// own HTTP communication and response parsing.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the generated text.
	// systemPrompt sets the model's behaviour; userPrompt is the request.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name returns the provider identifier (e.g. "openai").
	Name() string

	// Ready reports whether the provider has a plausibly valid credential.
	// Callers must check this before Generate so misconfiguration is
	// detected without spending an upstream call.
	Ready() bool
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// keyPlausible reports whether an API key is present and long enough to
// possibly be real.
func keyPlausible(key string) bool {
	return len(strings.TrimSpace(key)) >= minKeyLength
}

// Registry holds the configured providers and selects the active one.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
}

// NewRegistry creates a registry and initialises providers for every config
// with a non-empty API key. Keys that are present but implausibly short
// still get a provider, so the misconfiguration surfaces through Ready()
// rather than as a missing provider.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch name {
		case "openai":
			r.providers[name] = newOpenAI(cfg)
		case "claude":
			r.providers[name] = newClaude(cfg)
		}
	}

	return r
}

// Active returns the currently active provider, or ErrNotConfigured if the
// active name has no provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, ErrNotConfigured
	}
	return p, nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Available returns the names of all providers with configured keys.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Register adds or replaces a provider. Used to inject fakes in tests.
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// Generate calls the active provider after verifying it is ready.
func (r *Registry) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	if !p.Ready() {
		return "", ErrNotConfigured
	}
	return p.Generate(ctx, systemPrompt, userPrompt)
}
