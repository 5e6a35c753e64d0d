package providers

import (
	"strings"
	"testing"

	"repo-summarizer/internal/config"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		provider string
	}{
		{"gemini"},
		{"nebius"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			client, err := NewClient(&config.Config{ModelProvider: tt.provider})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			switch tt.provider {
			case "gemini":
				if _, ok := client.(*GeminiClient); !ok {
					t.Errorf("expected *GeminiClient, got %T", client)
				}
			case "nebius":
				if _, ok := client.(*NebiusClient); !ok {
					t.Errorf("expected *NebiusClient, got %T", client)
				}
			}
		})
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(&config.Config{ModelProvider: "openai"})
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
	if !strings.Contains(err.Error(), "unsupported model provider") {
		t.Errorf("unexpected error: %v", err)
	}
}
