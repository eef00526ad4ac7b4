// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// OpenRouter provider (recommended default, routes to many models)

package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/sony-level/lamport/internal/llm"
)

const (
	OpenRouterEndpoint     = "https://openrouter.ai/api/v1/chat/completions"
	DefaultOpenRouterModel = "anthropic/claude-sonnet-4-20250514"
)

// OpenRouterClient uses the OpenRouter API for completions
type OpenRouterClient struct {
	config *llm.Config
	chat   *chatClient
}

// NewOpenRouterClient creates a new OpenRouter client
func NewOpenRouterClient(config *llm.Config) (*OpenRouterClient, error) {
	config = config.WithDefaults()
	token := getOpenRouterToken(config)
	if token == "" {
		return nil, fmt.Errorf("OpenRouter API key not found (set OPENROUTER_API_KEY or use --llm-token): %w", llm.ErrMissingToken)
	}
	config.Token = token

	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"HTTP-Referer":  "https://github.com/sony-level/lamport",
		"X-Title":       "lamport",
	}

	return &OpenRouterClient{
		config: config,
		chat:   newChatClient(OpenRouterEndpoint, config, headers),
	}, nil
}

func getOpenRouterToken(config *llm.Config) string {
	if config.Token != "" {
		return config.Token
	}
	return os.Getenv("OPENROUTER_API_KEY")
}

// Name returns the provider name
func (c *OpenRouterClient) Name() string {
	return "openrouter"
}

// Complete performs a completion via OpenRouter
func (c *OpenRouterClient) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	model := req.Model
	if model == "" {
		model = c.config.Model
	}
	if model == "" {
		model = DefaultOpenRouterModel
	}

	callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	return withTransientRetry(callCtx, c.config.Verbose, c.Name(), func() (*llm.Response, error) {
		return c.chat.complete(callCtx, model, req)
	})
}

// IsOpenRouterKeyAvailable checks if the OpenRouter API key is configured
func IsOpenRouterKeyAvailable() bool {
	return os.Getenv("OPENROUTER_API_KEY") != ""
}
