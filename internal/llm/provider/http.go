// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Generic HTTP provider for custom OpenAI-compatible endpoints

package provider

import (
	"context"

	"github.com/sony-level/lamport/internal/llm"
)

// HTTPClient targets any OpenAI-compatible chat completion endpoint
type HTTPClient struct {
	config *llm.Config
	chat   *chatClient
}

// NewHTTPClient creates a client for a custom endpoint
func NewHTTPClient(config *llm.Config) (*HTTPClient, error) {
	config = config.WithDefaults()
	if config.Endpoint == "" {
		return nil, llm.ErrMissingEndpoint
	}

	var headers map[string]string
	if config.Token != "" {
		headers = map[string]string{"Authorization": "Bearer " + config.Token}
	}

	return &HTTPClient{
		config: config,
		chat:   newChatClient(config.Endpoint, config, headers),
	}, nil
}

// Name returns the provider name
func (c *HTTPClient) Name() string {
	return "http"
}

// Complete performs a completion against the custom endpoint
func (c *HTTPClient) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	model := req.Model
	if model == "" {
		model = c.config.Model
	}

	callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	return withTransientRetry(callCtx, c.config.Verbose, c.Name(), func() (*llm.Response, error) {
		return c.chat.complete(callCtx, model, req)
	})
}
