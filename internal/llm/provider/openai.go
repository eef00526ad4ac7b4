// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// OpenAI API provider for completions

package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/sony-level/lamport/internal/llm"
)

const (
	OpenAIEndpoint     = "https://api.openai.com/v1/chat/completions"
	DefaultOpenAIModel = "gpt-4o"
)

// OpenAIClient uses the OpenAI chat completions API
type OpenAIClient struct {
	config *llm.Config
	chat   *chatClient
}

// NewOpenAIClient creates a new OpenAI API client
func NewOpenAIClient(config *llm.Config) (*OpenAIClient, error) {
	config = config.WithDefaults()
	token := getOpenAIToken(config)
	if token == "" {
		return nil, fmt.Errorf("OpenAI API key not found (set OPENAI_API_KEY or use --llm-token): %w", llm.ErrMissingToken)
	}
	config.Token = token

	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}

	return &OpenAIClient{
		config: config,
		chat:   newChatClient(OpenAIEndpoint, config, headers),
	}, nil
}

func getOpenAIToken(config *llm.Config) string {
	if config.Token != "" {
		return config.Token
	}
	return os.Getenv("OPENAI_API_KEY")
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Complete performs a completion via OpenAI
func (c *OpenAIClient) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	model := req.Model
	if model == "" {
		model = c.config.Model
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	return withTransientRetry(callCtx, c.config.Verbose, c.Name(), func() (*llm.Response, error) {
		return c.chat.complete(callCtx, model, req)
	})
}

// IsOpenAIKeyAvailable checks if the OpenAI API key is configured
func IsOpenAIKeyAvailable() bool {
	return os.Getenv("OPENAI_API_KEY") != ""
}
