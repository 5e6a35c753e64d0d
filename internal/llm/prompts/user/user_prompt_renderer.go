package user

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed user_prompt_template_v1.md
var userPromptTemplateV1 string

var userPromptTemplate *template.Template

func init() {
	userPromptTemplate = template.Must(
		template.New("user_prompt").Parse(userPromptTemplateV1),
	)
}

// TruncationInfo describes how much of the repository had to be cut to fit
// the context budget
type TruncationInfo struct {
	IncludedCount        int
	TruncatedCount       int
	OmittedCount         int
	OmittedBytesEstimate int
	LimitChars           int
}

// PromptData holds the data for the user prompt template
type PromptData struct {
	Context    string
	Truncation *TruncationInfo // Optional truncation information
}

// RenderUserPrompt formats the user prompt with the prepared repository
// context, conditionally appending truncation metadata when files were cut
func RenderUserPrompt(context string, truncation *TruncationInfo) (string, error) {
	data := PromptData{
		Context: context,
	}

	// Only include truncation metadata if it's meaningful
	if truncation != nil && (truncation.TruncatedCount > 0 || truncation.OmittedCount > 0) {
		data.Truncation = truncation
	}

	var buf bytes.Buffer
	if err := userPromptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute user prompt template: %w", err)
	}

	return buf.String(), nil
}
