package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Summary is the structured result of a repository summarization
type Summary struct {
	Summary      string   `json:"summary"`
	Technologies []string `json:"technologies"`
	Structure    string   `json:"structure"`
}

var codeFenceRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ParseSummary extracts the structured summary from an LLM response. JSON is
// tried first, including JSON wrapped in a markdown code fence; anything else
// falls back to a summary-only result carrying the raw text.
func ParseSummary(content string) *Summary {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return &Summary{Technologies: []string{}}
	}

	text := trimmed
	if m := codeFenceRegex.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return &Summary{Summary: trimmed, Technologies: []string{}}
	}

	result := &Summary{Technologies: []string{}}

	switch v := data["summary"].(type) {
	case string:
		result.Summary = v
	case nil:
		// some models answer with "description" instead
		if desc, ok := data["description"].(string); ok && desc != "" {
			result.Summary = desc
		} else {
			result.Summary = trimmed
		}
	default:
		result.Summary = fmt.Sprint(v)
	}

	if techs, ok := data["technologies"].([]interface{}); ok {
		for _, tech := range techs {
			if s, ok := tech.(string); ok {
				result.Technologies = append(result.Technologies, s)
			}
		}
	}

	if s, ok := data["structure"].(string); ok {
		result.Structure = s
	}

	return result
}
