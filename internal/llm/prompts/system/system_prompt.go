package system

import (
	_ "embed"
)

//go:embed system_prompt_v1.md
var systemPromptV1 string

// GetSystemPrompt returns the system prompt for repository summarization
func GetSystemPrompt() string {
	return systemPromptV1
}
