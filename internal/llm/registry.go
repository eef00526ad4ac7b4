// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Client registry with factory pattern and auto-selection

package llm

import (
	"fmt"
	"os"
	"sync"
)

// ClientFactory creates a client from config
type ClientFactory func(config *Config) (Client, error)

// Registry manages client factories
type Registry struct {
	mu          sync.RWMutex
	factories   map[ProviderType]ClientFactory
	mockFactory ClientFactory
}

// DefaultRegistry is the global client registry
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new client registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[ProviderType]ClientFactory),
	}
}

// SetMockFactory sets the mock client factory used by offline mode
func (r *Registry) SetMockFactory(factory ClientFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mockFactory = factory
	r.factories[ProviderMock] = factory
}

// Register adds a client factory to the registry
func (r *Registry) Register(providerType ProviderType, factory ClientFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[providerType] = factory
}

// Get creates the requested client. An unknown type or a failing
// constructor is an error: generation with a silently-wrong provider
// would waste a real pipeline run.
func (r *Registry) Get(config *Config) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if config == nil {
		config = &Config{Type: ProviderMock}
	}
	config = config.WithDefaults()

	if config.Type == "" {
		config.Type = AutoSelect()
	}

	factory, ok := r.factories[config.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, config.Type)
	}

	client, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", config.Type, err)
	}
	return client, nil
}

// Mock returns a mock client regardless of configuration
func (r *Registry) Mock() Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.mockFactory == nil {
		return nil
	}
	client, err := r.mockFactory(&Config{Type: ProviderMock})
	if err != nil {
		return nil
	}
	return client
}

// AutoSelect picks a provider from available API keys:
// openrouter > anthropic > openai > ollama > mock
func AutoSelect() ProviderType {
	if os.Getenv("OPENROUTER_API_KEY") != "" {
		return ProviderOpenRouter
	}
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		return ProviderAnthropic
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return ProviderOpenAI
	}
	if os.Getenv("OLLAMA_HOST") != "" {
		return ProviderOllama
	}
	return ProviderMock
}

// NewClient creates a client from the default registry
func NewClient(config *Config) (Client, error) {
	return DefaultRegistry.Get(config)
}
