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

// NebiusClient talks to the Nebius Token Factory OpenAI-compatible API
type NebiusClient struct {
	config *config.Config
}

type NebiusRequest struct {
	MaxTokens      int                  `json:"max_tokens"`
	Messages       []NebiusMessage      `json:"messages"`
	Model          string               `json:"model"`
	ResponseFormat NebiusResponseFormat `json:"response_format"`
	Temperature    float64              `json:"temperature"`
}

type NebiusMessage struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

type NebiusResponseFormat struct {
	Type string `json:"type"`
}

type NebiusResponse struct {
	Choices []NebiusChoice `json:"choices"`
	Usage   NebiusUsage    `json:"usage"`
}

type NebiusChoice struct {
	Message NebiusMessage `json:"message"`
}

type NebiusUsage struct {
	CompletionTokens int `json:"completion_tokens"`
	PromptTokens     int `json:"prompt_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func NewNebius(cfg *config.Config) LLMClient {
	return &NebiusClient{config: cfg}
}

func (n *NebiusClient) Summarize(userPrompt string) (string, error) {
	cfg := n.config

	req := NebiusRequest{
		Model: cfg.ModelID,
		Messages: []NebiusMessage{
			{Role: "system", Content: system.GetSystemPrompt()},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:      cfg.ModelMaxResponseTokens,
		ResponseFormat: NebiusResponseFormat{Type: "json_object"},
		Temperature:    0.3,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	slog.Log(context.Background(), logger.LevelTrace, "Nebius API request", "request", jsonData)

	url := cfg.ModelAPI + "/chat/completions"
	httpReq, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+cfg.ModelUserKey)

	httpClient := httputil.NewHTTPClient(httputil.HTTPClientOptions{
		Timeout:       time.Duration(cfg.ModelTimeoutSeconds) * time.Second,
		SkipSSLVerify: cfg.ModelSkipSSLVerify,
	})

	slog.Debug("Sending summarization request to LLM", "provider", "Nebius", "model", cfg.ModelID)

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
				Provider:   "Nebius",
			}
		}
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var response NebiusResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	slog.Log(context.Background(), logger.LevelTrace, "Nebius API response", "response", response)

	slog.Debug("Nebius API token usage",
		"input_tokens", response.Usage.PromptTokens,
		"output_tokens", response.Usage.CompletionTokens,
		"total_tokens", response.Usage.TotalTokens)

	return response.Choices[0].Message.Content, nil
}
