// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Provider registration - registers all clients with the LLM registry

package provider

import (
	"github.com/sony-level/lamport/internal/llm"
)

func init() {
	RegisterClients()
}

// RegisterClients registers all built-in clients with the default registry
func RegisterClients() {
	reg := llm.DefaultRegistry

	reg.SetMockFactory(func(config *llm.Config) (llm.Client, error) {
		return NewMockClient(), nil
	})

	reg.Register(llm.ProviderOpenRouter, func(config *llm.Config) (llm.Client, error) {
		return NewOpenRouterClient(config)
	})

	reg.Register(llm.ProviderAnthropic, func(config *llm.Config) (llm.Client, error) {
		return NewAnthropicClient(config)
	})

	reg.Register(llm.ProviderOpenAI, func(config *llm.Config) (llm.Client, error) {
		return NewOpenAIClient(config)
	})

	reg.Register(llm.ProviderOllama, func(config *llm.Config) (llm.Client, error) {
		return NewOllamaClient(config)
	})

	reg.Register(llm.ProviderHTTP, func(config *llm.Config) (llm.Client, error) {
		return NewHTTPClient(config)
	})
}
