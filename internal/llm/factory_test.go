package llm

import (
	"strings"
	"testing"

	"github.com/claimlens/claimlens/internal/model"
)

func TestNewProvider(t *testing.T) {
	t.Run("openai requires key", func(t *testing.T) {
		_, err := NewProvider(Config{Provider: "openai"})
		if err == nil {
			t.Error("expected error without API key")
		}
	})

	t.Run("openai with key", func(t *testing.T) {
		p, err := NewProvider(Config{Provider: "openai", APIKey: "sk-test"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name() != "openai" {
			t.Errorf("Name() = %s", p.Name())
		}
	})

	t.Run("ollama", func(t *testing.T) {
		p, err := NewProvider(Config{Provider: "ollama", Model: "llama3.1:8b"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name() != "ollama" {
			t.Errorf("Name() = %s", p.Name())
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		p, err := NewProvider(Config{Provider: "OLLAMA"})
		if err != nil || p == nil {
			t.Errorf("uppercase provider name rejected: %v", err)
		}
	})

	t.Run("empty disables", func(t *testing.T) {
		p, err := NewProvider(Config{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != nil {
			t.Error("empty provider should return nil")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewProvider(Config{Provider: "claude"})
		if err == nil || !strings.Contains(err.Error(), "unknown LLM provider") {
			t.Errorf("expected unknown-provider error, got %v", err)
		}
	})
}

func TestConfigFromModel(t *testing.T) {
	cfg := ConfigFromModel(model.LLMConfig{
		Provider:  "ollama",
		Model:     "llama3.1:8b",
		APIKey:    "secret",
		BaseURL:   "http://localhost:11434",
		Timeout:   45,
		MaxTokens: 500,
	}, "http://proxy:3128", "", "localhost")

	if cfg.Provider != "ollama" || cfg.Model != "llama3.1:8b" {
		t.Errorf("provider/model not carried over: %+v", cfg)
	}
	if cfg.HTTPProxy != "http://proxy:3128" || cfg.NoProxy != "localhost" {
		t.Errorf("proxy settings not carried over: %+v", cfg)
	}
}
