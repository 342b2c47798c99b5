package embedding

import (
	"testing"
	"time"
)

func TestNewProviderAppliesTimeout(t *testing.T) {
	provider, err := NewProvider("openai", "text-embedding-3-small", "", "sk-test", 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	oai, ok := provider.(*OpenAIProvider)
	if !ok {
		t.Fatalf("provider type = %T, want *OpenAIProvider", provider)
	}
	if oai.Client.Timeout != 5*time.Second {
		t.Errorf("client timeout = %s, want 5s", oai.Client.Timeout)
	}
}

func TestNewProviderZeroTimeoutUsesDefault(t *testing.T) {
	provider, err := NewProvider("ollama", "nomic-embed-text", "", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ol, ok := provider.(*OllamaProvider)
	if !ok {
		t.Fatalf("provider type = %T, want *OllamaProvider", provider)
	}
	if ol.Client.Timeout != 60*time.Second {
		t.Errorf("client timeout = %s, want the 60s default", ol.Client.Timeout)
	}
}

func TestNewProviderRejectsUnknownType(t *testing.T) {
	if _, err := NewProvider("vertex", "x", "", "", 0); err == nil {
		t.Error("expected error for unsupported provider")
	}
}
