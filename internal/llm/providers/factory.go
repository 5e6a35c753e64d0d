package providers

import (
	"fmt"

	"repo-summarizer/internal/config"
)

// NewClient creates the appropriate LLM client based on configuration
func NewClient(cfg *config.Config) (LLMClient, error) {
	switch cfg.ModelProvider {
	case "gemini":
		return NewGemini(cfg), nil

	case "nebius":
		return NewNebius(cfg), nil

	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.ModelProvider)
	}
}
