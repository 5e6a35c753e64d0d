package config

import (
	"strings"
	"testing"
)

func TestLoad_WithDefaults(t *testing.T) {
	cfg, err := Load(false)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.ModelProvider != "gemini" {
		t.Errorf("ModelProvider = %v, expected gemini (default)", cfg.ModelProvider)
	}
	if cfg.GitHubAPIStyle != "rest" {
		t.Errorf("GitHubAPIStyle = %v, expected rest (default)", cfg.GitHubAPIStyle)
	}
	if cfg.GitLabBaseURL != "https://gitlab.com" {
		t.Errorf("GitLabBaseURL = %v, expected https://gitlab.com (default)", cfg.GitLabBaseURL)
	}
	if cfg.ContextLimitChars != 60000 {
		t.Errorf("ContextLimitChars = %v, expected 60000 (default)", cfg.ContextLimitChars)
	}
	if cfg.PerFileCapChars != 20000 {
		t.Errorf("PerFileCapChars = %v, expected 20000 (default)", cfg.PerFileCapChars)
	}
	if cfg.MaxFiles != 500 {
		t.Errorf("MaxFiles = %v, expected 500 (default)", cfg.MaxFiles)
	}
	if cfg.ModelMaxResponseTokens != 2048 {
		t.Errorf("ModelMaxResponseTokens = %v, expected 2048 (default)", cfg.ModelMaxResponseTokens)
	}
	if cfg.AuditLogPath != "AUDIT.jsonl" {
		t.Errorf("AuditLogPath = %v, expected AUDIT.jsonl (default)", cfg.AuditLogPath)
	}
}

func TestLoad_ModelConfigRequiredOnlyWhenNeeded(t *testing.T) {
	// Without model env vars, a context-only load succeeds
	if _, err := Load(false); err != nil {
		t.Fatalf("context-only load failed: %v", err)
	}

	// A summarizing load demands provider credentials
	_, err := Load(true)
	if err == nil {
		t.Fatal("expected error without model configuration")
	}
	if !strings.Contains(err.Error(), "RSUM_GEMINI_MODEL_API") {
		t.Errorf("error should name the missing variable, got: %v", err)
	}
}

func TestLoad_ModelConfiguration(t *testing.T) {
	t.Setenv("RSUM_MODEL_PROVIDER", "nebius")
	t.Setenv("RSUM_NEBIUS_MODEL_API", "https://api.example.com/v1")
	t.Setenv("RSUM_NEBIUS_MODEL_ID", "meta-llama/Llama-3.3-70B-Instruct")
	t.Setenv("RSUM_NEBIUS_USER_KEY", "secret-key")

	cfg, err := Load(true)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.ModelProvider != "nebius" {
		t.Errorf("ModelProvider = %v, expected nebius", cfg.ModelProvider)
	}
	if cfg.ModelAPI != "https://api.example.com/v1" {
		t.Errorf("ModelAPI = %v", cfg.ModelAPI)
	}
	if cfg.ModelID != "meta-llama/Llama-3.3-70B-Instruct" {
		t.Errorf("ModelID = %v", cfg.ModelID)
	}
	if cfg.ModelUserKey != "secret-key" {
		t.Errorf("ModelUserKey = %v", cfg.ModelUserKey)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid log format", "RSUM_LOG_FORMAT", "xml"},
		{"invalid log level", "RSUM_LOG_LEVEL", "verbose"},
		{"invalid api style", "RSUM_GITHUB_API_STYLE", "soap"},
		{"non-integer max files", "RSUM_MAX_FILES", "many"},
		{"out-of-range max files", "RSUM_MAX_FILES", "0"},
		{"non-boolean ssl flag", "RSUM_GITLAB_SKIP_SSL_VERIFY", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(false); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_PerFileCapMustFitLimit(t *testing.T) {
	t.Setenv("RSUM_CONTEXT_LIMIT_CHARS", "1000")
	t.Setenv("RSUM_PER_FILE_CAP_CHARS", "5000")

	if _, err := Load(false); err == nil {
		t.Error("expected error when per-file cap exceeds the total limit")
	}
}

func TestLoad_ValidLoggingConfiguration(t *testing.T) {
	t.Setenv("RSUM_LOG_FORMAT", "json")
	t.Setenv("RSUM_LOG_LEVEL", "debug")

	cfg, err := Load(false)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.LogFormat != "json" || cfg.LogLevel != "debug" {
		t.Errorf("logging config = %s/%s", cfg.LogFormat, cfg.LogLevel)
	}
}
