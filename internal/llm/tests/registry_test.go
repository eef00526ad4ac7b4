// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for the client registry and auto-selection

package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/lamport/internal/llm"
	_ "github.com/sony-level/lamport/internal/llm/provider"
)

func TestGetMockClient(t *testing.T) {
	client, err := llm.NewClient(&llm.Config{Type: llm.ProviderMock})
	require.NoError(t, err)
	assert.Equal(t, "mock", client.Name())
}

func TestGetUnknownProviderErrors(t *testing.T) {
	_, err := llm.NewClient(&llm.Config{Type: llm.ProviderType("carrier-pigeon")})
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrUnknownProvider)
}

func TestHTTPProviderRequiresEndpoint(t *testing.T) {
	_, err := llm.NewClient(&llm.Config{Type: llm.ProviderHTTP})
	assert.Error(t, err)
}

func TestAutoSelectPriority(t *testing.T) {
	for _, env := range []string{"OPENROUTER_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "OLLAMA_HOST"} {
		t.Setenv(env, "")
	}
	assert.Equal(t, llm.ProviderMock, llm.AutoSelect())

	t.Setenv("OPENAI_API_KEY", "sk-x")
	assert.Equal(t, llm.ProviderOpenAI, llm.AutoSelect())

	t.Setenv("ANTHROPIC_API_KEY", "sk-y")
	assert.Equal(t, llm.ProviderAnthropic, llm.AutoSelect())

	t.Setenv("OPENROUTER_API_KEY", "sk-z")
	assert.Equal(t, llm.ProviderOpenRouter, llm.AutoSelect())
}

func TestMockCompletesOffline(t *testing.T) {
	client := llm.DefaultRegistry.Mock()
	require.NotNil(t, client)

	resp, err := client.Complete(context.Background(), &llm.Request{
		System: "You are a Solana smart contract specification interpreter.",
		Prompt: "Interpret this specification:\n\na mintable token",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "mintable")
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", llm.MaskToken(""))
	masked := llm.MaskToken("sk-or-v1-abcdef123456")
	assert.NotContains(t, masked, "abcdef123456")
}
