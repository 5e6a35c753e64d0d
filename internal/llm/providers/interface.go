package providers

// LLMClient interface for all LLM providers
type LLMClient interface {
	Summarize(userPrompt string) (string, error)
}
