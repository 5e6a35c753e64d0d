package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"repo-summarizer/internal/config"
	httputil "repo-summarizer/internal/http"
	"repo-summarizer/internal/llm/errors"
	"repo-summarizer/internal/llm/prompts/system"
	"repo-summarizer/internal/logger"
)

// GeminiClient talks to the Google AI Studio generateContent API
type GeminiClient struct {
	config *config.Config
}

type GeminiRequest struct {
	Contents         []GeminiContent        `json:"contents"`
	GenerationConfig GeminiGenerationConfig `json:"generationConfig"`
}

type GeminiContent struct {
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text string `json:"text"`
}

type GeminiGenerationConfig struct {
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType"`
	Temperature      float64 `json:"temperature"`
}

type GeminiResponse struct {
	Candidates    []GeminiCandidate   `json:"candidates"`
	UsageMetadata GeminiUsageMetadata `json:"usageMetadata"`
}

type GeminiCandidate struct {
	Content GeminiContent `json:"content"`
}

type GeminiUsageMetadata struct {
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	PromptTokenCount     int `json:"promptTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

func NewGemini(cfg *config.Config) LLMClient {
	return &GeminiClient{config: cfg}
}

func (g *GeminiClient) Summarize(userPrompt string) (string, error) {
	cfg := g.config

	// Gemini uses combined prompt
	combinedPrompt := system.GetSystemPrompt() + "\n\n" + userPrompt

	req := GeminiRequest{
		Contents: []GeminiContent{{
			Parts: []GeminiPart{{Text: combinedPrompt}},
		}},
		GenerationConfig: GeminiGenerationConfig{
			MaxOutputTokens:  cfg.ModelMaxResponseTokens,
			ResponseMIMEType: "application/json",
			Temperature:      0.3,
		},
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	slog.Log(context.Background(), logger.LevelTrace, "Gemini API request", "request", jsonData)

	url := fmt.Sprintf("%s/models/%s:generateContent", cfg.ModelAPI, cfg.ModelID)
	httpReq, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", cfg.ModelUserKey)

	httpClient := httputil.NewHTTPClient(httputil.HTTPClientOptions{
		Timeout:       time.Duration(cfg.ModelTimeoutSeconds) * time.Second,
		SkipSSLVerify: cfg.ModelSkipSSLVerify,
	})

	slog.Debug("Sending summarization request to LLM", "provider", "Gemini", "model", cfg.ModelID)

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Check if this is a context window error
		if errors.IsContextWindowError(resp.StatusCode, body) {
			return "", &errors.ContextWindowError{
				StatusCode: resp.StatusCode,
				Message:    string(body),
				Provider:   "Gemini",
			}
		}
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var response GeminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(response.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	if len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content parts in response")
	}

	slog.Log(context.Background(), logger.LevelTrace, "Gemini API response", "response", response)

	slog.Debug("Gemini API token usage",
		"input_tokens", response.UsageMetadata.PromptTokenCount,
		"output_tokens", response.UsageMetadata.CandidatesTokenCount,
		"total_tokens", response.UsageMetadata.TotalTokenCount)

	return response.Candidates[0].Content.Parts[0].Text, nil
}
