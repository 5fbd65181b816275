package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type ProviderFactory func(ctx context.Context, model string) (Provider, error)

type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ProviderFactory)}
}

func (r *Registry) Register(name string, f ProviderFactory) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

func (r *Registry) Get(ctx context.Context, name string, model string) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown ai provider: %s", name)
	}
	return f(ctx, model)
}

// ProviderConfig carries the per-provider settings the built-in factories
// close over. An empty model at Get time falls back to the configured default.
type ProviderConfig struct {
	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string

	OllamaBaseURL string
	OllamaModel   string
}

// NewProviderRegistry returns a registry with the built-in providers
// registered.
func NewProviderRegistry(cfg ProviderConfig) *Registry {
	r := NewRegistry()
	r.Register("openai", func(_ context.Context, model string) (Provider, error) {
		if model == "" {
			model = cfg.OpenAIModel
		}
		return NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, model), nil
	})
	r.Register("ollama", func(_ context.Context, model string) (Provider, error) {
		if model == "" {
			model = cfg.OllamaModel
		}
		return NewOllamaProvider(cfg.OllamaBaseURL, model), nil
	})
	return r
}
