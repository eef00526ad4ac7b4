// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Anthropic API provider for completions

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/sony-level/lamport/internal/llm"
)

const (
	AnthropicEndpoint     = "https://api.anthropic.com/v1/messages"
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	AnthropicAPIVersion   = "2023-06-01"
)

// AnthropicClient uses the Anthropic Messages API
type AnthropicClient struct {
	config *llm.Config
	client *http.Client
}

// NewAnthropicClient creates a new Anthropic API client
func NewAnthropicClient(config *llm.Config) (*AnthropicClient, error) {
	config = config.WithDefaults()
	token := getAnthropicToken(config)
	if token == "" {
		return nil, fmt.Errorf("Anthropic API key not found (set ANTHROPIC_API_KEY or use --llm-token): %w", llm.ErrMissingToken)
	}
	config.Token = token

	return &AnthropicClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}, nil
}

func getAnthropicToken(config *llm.Config) string {
	if config.Token != "" {
		return config.Token
	}
	return os.Getenv("ANTHROPIC_API_KEY")
}

// Name returns the provider name
func (c *AnthropicClient) Name() string {
	return "anthropic"
}

// AnthropicRequest is the request body for the Messages API
type AnthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []AnthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
}

// AnthropicMessage represents a chat message
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnthropicResponse is the response from the Messages API
type AnthropicResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete performs a completion via the Messages API
func (c *AnthropicClient) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	return withTransientRetry(callCtx, c.config.Verbose, c.Name(), func() (*llm.Response, error) {
		return c.callAPI(callCtx, req)
	})
}

func (c *AnthropicClient) callAPI(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	req = req.WithDefaults()

	model := req.Model
	if model == "" {
		model = c.config.Model
	}
	if model == "" {
		model = DefaultAnthropicModel
	}

	reqBody := AnthropicRequest{
		Model:       model,
		MaxTokens:   req.MaxTokens,
		System:      req.System,
		Temperature: req.Temperature,
		Messages: []AnthropicMessage{
			{Role: "user", Content: req.Prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", AnthropicEndpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.config.Token)
	httpReq.Header.Set("anthropic-version", AnthropicAPIVersion)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, llm.ErrTimeout
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseAnthropicError(resp.StatusCode, body)
	}

	return parseAnthropicResponse(body)
}

func parseAnthropicError(status int, body []byte) error {
	var errResp struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		switch status {
		case 401:
			return fmt.Errorf("HTTP 401: invalid API key - check ANTHROPIC_API_KEY")
		case 403:
			return fmt.Errorf("HTTP 403: access forbidden - %s", errResp.Error.Message)
		case 429:
			return fmt.Errorf("HTTP 429: rate limited - %s", errResp.Error.Message)
		default:
			return fmt.Errorf("HTTP %d: %s", status, errResp.Error.Message)
		}
	}
	return fmt.Errorf("HTTP %d: %s", status, TruncateForError(string(body), 200))
}

func parseAnthropicResponse(body []byte) (*llm.Response, error) {
	var resp AnthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("API error: %s", resp.Error.Message)
	}

	var content string
	for _, c := range resp.Content {
		if c.Type == "text" {
			content = c.Text
			break
		}
	}
	if content == "" {
		return nil, llm.ErrEmptyResponse
	}

	return &llm.Response{Content: content, Model: resp.Model}, nil
}

// IsAnthropicKeyAvailable checks if the Anthropic API key is configured
func IsAnthropicKeyAvailable() bool {
	return os.Getenv("ANTHROPIC_API_KEY") != ""
}
