// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// LLM client types and interfaces

package llm

import (
	"context"
	"errors"
	"time"
)

// Default timeouts
const (
	DefaultTimeout = 60 * time.Second
	MaxTimeout     = 300 * time.Second
)

// DefaultMaxTokens bounds completion length when the caller does not set one
const DefaultMaxTokens = 8192

// TransientRetries is how many times a provider retries a transient
// failure (network error, 5xx, rate limit) before giving up. This is
// internal to the LLM boundary and independent of the pipeline's
// repair budget.
const TransientRetries = 2

// ProviderType identifies the LLM provider
type ProviderType string

const (
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOpenAI     ProviderType = "openai"
	ProviderOllama     ProviderType = "ollama"
	ProviderHTTP       ProviderType = "http"
	ProviderMock       ProviderType = "mock"
)

// SupportedProviders lists all provider types, in auto-select order
var SupportedProviders = []ProviderType{
	ProviderOpenRouter,
	ProviderAnthropic,
	ProviderOpenAI,
	ProviderOllama,
	ProviderHTTP,
	ProviderMock,
}

// Client errors
var (
	ErrUnknownProvider = errors.New("unknown provider type")
	ErrMissingEndpoint = errors.New("HTTP provider requires endpoint")
	ErrMissingToken    = errors.New("provider requires API token")
	ErrTimeout         = errors.New("LLM request timed out")
	ErrEmptyResponse   = errors.New("LLM returned empty response")
)

// Request is a single completion request
type Request struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Response is the provider's completion
type Response struct {
	Content string
	Model   string
}

// Client is the LLM provider boundary. Implementations handle their
// own transient-failure retries; callers treat any returned error as a
// stage failure, never a crash.
type Client interface {
	// Name returns the provider name
	Name() string
	// Complete performs one completion request
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// Config holds configuration for LLM providers
type Config struct {
	Type     ProviderType
	Endpoint string
	Model    string
	Token    string
	Timeout  time.Duration
	Verbose  bool
}

// Validate checks if the provider config is valid
func (c *Config) Validate() error {
	switch c.Type {
	case ProviderHTTP:
		if c.Endpoint == "" {
			return ErrMissingEndpoint
		}
	case ProviderOpenRouter, ProviderAnthropic, ProviderOpenAI:
		// Token validation happens in provider constructor
	case ProviderOllama, ProviderMock:
		// No validation required
	default:
		return ErrUnknownProvider
	}
	return nil
}

// WithDefaults applies default values to the config
func (c *Config) WithDefaults() *Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Timeout > MaxTimeout {
		c.Timeout = MaxTimeout
	}
	return c
}

// WithDefaults applies per-request defaults
func (r *Request) WithDefaults() *Request {
	if r.MaxTokens <= 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	return r
}

// MaskToken returns a masked version of the token for logging
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "[REDACTED]"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
