package ai

import (
	"context"
	"errors"
	"testing"
)

type staticProvider struct{ reply string }

func (p *staticProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	return p.reply, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register("Static", func(ctx context.Context, model string) (Provider, error) {
		return &staticProvider{reply: model}, nil
	})

	p, err := r.Get(context.Background(), "  static ", "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got, _ := p.Chat(context.Background(), nil)
	if got != "m1" {
		t.Fatalf("model not passed to factory: %q", got)
	}
}

func TestRegistry_UnknownProvider(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get(context.Background(), "nope", ""); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestRegistry_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	r.Register("bad", func(ctx context.Context, model string) (Provider, error) {
		return nil, boom
	})
	if _, err := r.Get(context.Background(), "bad", ""); !errors.Is(err, boom) {
		t.Fatalf("factory error not propagated: %v", err)
	}
}

func TestNewProviderRegistry_Defaults(t *testing.T) {
	r := NewProviderRegistry(ProviderConfig{
		OpenAIBaseURL: "https://example.com/v1",
		OpenAIAPIKey:  "k",
		OpenAIModel:   "gpt-4o-mini",
		OllamaBaseURL: "http://localhost:11434",
		OllamaModel:   "llama3:latest",
	})

	p, err := r.Get(context.Background(), "openai", "")
	if err != nil {
		t.Fatalf("get openai: %v", err)
	}
	oa, ok := p.(*OpenAIProvider)
	if !ok {
		t.Fatalf("wrong provider type: %T", p)
	}
	if oa.Model != "gpt-4o-mini" {
		t.Fatalf("default model not applied: %q", oa.Model)
	}

	p, err = r.Get(context.Background(), "ollama", "mistral")
	if err != nil {
		t.Fatalf("get ollama: %v", err)
	}
	ol, ok := p.(*OllamaProvider)
	if !ok {
		t.Fatalf("wrong provider type: %T", p)
	}
	if ol.Model != "mistral" {
		t.Fatalf("explicit model lost: %q", ol.Model)
	}
}
