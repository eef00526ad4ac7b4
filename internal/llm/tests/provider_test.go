// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for provider clients

package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/lamport/internal/llm"
	"github.com/sony-level/lamport/internal/llm/provider"
)

func TestMockDispatchByMarker(t *testing.T) {
	client := provider.NewMockClient()
	ctx := context.Background()

	resp, err := client.Complete(ctx, &llm.Request{
		System: "You are a Solana smart contract architect. Your job is to design a proper\nAnchor project structure.",
		Prompt: "Create Anchor project structure for: ...",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "Anchor.toml")

	resp, err = client.Complete(ctx, &llm.Request{
		System: "You are an expert Solana smart contract Rust developer.",
		Prompt: "Generate Rust instruction implementations for: ...",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "lib.rs")

	resp, err = client.Complete(ctx, &llm.Request{
		System: "Your job is to analyze build and validation errors and generate precise fixes.",
		Prompt: "Analyze and fix these errors: ...",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "patches")
}

func TestMockFixedResponses(t *testing.T) {
	client := provider.NewMockClientWithResponses(map[string]string{
		"magic marker": `{"name": "Fixed", "symbol": "FIX", "features": []}`,
	})

	resp, err := client.Complete(context.Background(), &llm.Request{Prompt: "this has the magic marker inside"})
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "Fixed")
}

func TestHTTPClientRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req provider.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Messages)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"model": req.Model,
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "hello from server"}},
			},
		})
	}))
	defer server.Close()

	client, err := provider.NewHTTPClient(&llm.Config{
		Type:     llm.ProviderHTTP,
		Endpoint: server.URL,
		Model:    "test-model",
		Token:    "test-token",
	})
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), &llm.Request{
		System: "sys",
		Prompt: "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello from server", resp.Content)
}

func TestHTTPClientRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "recovered"}},
			},
		})
	}))
	defer server.Close()

	client, err := provider.NewHTTPClient(&llm.Config{
		Type:     llm.ProviderHTTP,
		Endpoint: server.URL,
	})
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), &llm.Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.Content)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClientDoesNotRetryAuthFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "bad key"}}`))
	}))
	defer server.Close()

	client, err := provider.NewHTTPClient(&llm.Config{
		Type:     llm.ProviderHTTP,
		Endpoint: server.URL,
	})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), &llm.Request{Prompt: "hi"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClientEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client, err := provider.NewHTTPClient(&llm.Config{
		Type:     llm.ProviderHTTP,
		Endpoint: server.URL,
	})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), &llm.Request{Prompt: "hi"})
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}
