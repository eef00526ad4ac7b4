// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Shared client for OpenAI-compatible chat completion APIs

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sony-level/lamport/internal/llm"
)

// ChatRequest is the OpenAI-compatible chat completion request body
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

// ChatMessage represents a chat message
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the OpenAI-compatible chat completion response
type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// chatClient issues OpenAI-compatible completions against an endpoint
type chatClient struct {
	endpoint string
	client   *http.Client
	headers  map[string]string
}

func newChatClient(endpoint string, config *llm.Config, headers map[string]string) *chatClient {
	return &chatClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: config.Timeout},
		headers:  headers,
	}
}

// complete performs one chat completion round-trip
func (c *chatClient) complete(ctx context.Context, model string, req *llm.Request) (*llm.Response, error) {
	req = req.WithDefaults()

	body := ChatRequest{
		Model:       model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages:    buildMessages(req),
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, llm.ErrTimeout
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseChatError(resp.StatusCode, respBody)
	}

	return parseChatResponse(respBody)
}

func buildMessages(req *llm.Request) []ChatMessage {
	msgs := make([]ChatMessage, 0, 2)
	if req.System != "" {
		msgs = append(msgs, ChatMessage{Role: "system", Content: req.System})
	}
	msgs = append(msgs, ChatMessage{Role: "user", Content: req.Prompt})
	return msgs
}

func parseChatError(status int, body []byte) error {
	var errResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		switch status {
		case 401:
			return fmt.Errorf("HTTP 401: invalid API key")
		case 429:
			return fmt.Errorf("HTTP 429: rate limited - %s", errResp.Error.Message)
		default:
			return fmt.Errorf("HTTP %d: %s", status, errResp.Error.Message)
		}
	}
	return fmt.Errorf("HTTP %d: %s", status, TruncateForError(string(body), 200))
}

func parseChatResponse(body []byte) (*llm.Response, error) {
	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("API error: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, llm.ErrEmptyResponse
	}

	return &llm.Response{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
	}, nil
}
