package factory

import (
	"testing"
	"time"

	"building-chat-be/pkg/llm/ollama"
	"building-chat-be/pkg/llm/openai"
)

func TestNewLLMProviderAppliesTimeout(t *testing.T) {
	provider, err := NewLLMProvider("openai", "gpt-4o-mini", "", "sk-test", 15*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	oai, ok := provider.(*openai.OpenAIProvider)
	if !ok {
		t.Fatalf("provider type = %T, want *openai.OpenAIProvider", provider)
	}
	if oai.Client.Timeout != 15*time.Second {
		t.Errorf("client timeout = %s, want 15s", oai.Client.Timeout)
	}
}

func TestNewLLMProviderZeroTimeoutUsesDefault(t *testing.T) {
	provider, err := NewLLMProvider("ollama", "llama3", "", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ol, ok := provider.(*ollama.OllamaProvider)
	if !ok {
		t.Fatalf("provider type = %T, want *ollama.OllamaProvider", provider)
	}
	if ol.Client.Timeout != 120*time.Second {
		t.Errorf("client timeout = %s, want the 120s default", ol.Client.Timeout)
	}
}

func TestNewLLMProviderRejectsUnknownType(t *testing.T) {
	if _, err := NewLLMProvider("bedrock", "x", "", "", 0); err == nil {
		t.Error("expected error for unsupported provider")
	}
}
