// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Ollama local provider (no API key needed)

package provider

import (
	"context"
	"os"
	"strings"

	"github.com/sony-level/lamport/internal/llm"
)

const (
	DefaultOllamaEndpoint = "http://localhost:11434"
	DefaultOllamaModel    = "qwen2.5-coder:14b"
)

// OllamaClient talks to a local Ollama server through its
// OpenAI-compatible endpoint
type OllamaClient struct {
	config *llm.Config
	chat   *chatClient
}

// NewOllamaClient creates a new Ollama client
func NewOllamaClient(config *llm.Config) (*OllamaClient, error) {
	config = config.WithDefaults()
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv("OLLAMA_HOST")
	}
	if endpoint == "" {
		endpoint = DefaultOllamaEndpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/") + "/v1/chat/completions"

	return &OllamaClient{
		config: config,
		chat:   newChatClient(endpoint, config, nil),
	}, nil
}

// Name returns the provider name
func (c *OllamaClient) Name() string {
	return "ollama"
}

// Complete performs a completion via the local Ollama server
func (c *OllamaClient) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	model := req.Model
	if model == "" {
		model = c.config.Model
	}
	if model == "" {
		model = DefaultOllamaModel
	}

	callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	return withTransientRetry(callCtx, c.config.Verbose, c.Name(), func() (*llm.Response, error) {
		return c.chat.complete(callCtx, model, req)
	})
}
