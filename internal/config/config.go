package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

// valid log formats, levels, and GitHub API styles
var (
	validLogFormats = []string{"text", "json"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validAPIStyles  = []string{"rest", "graphql"}
)

type Config struct {
	AuditLogPath           string
	ContextLimitChars      int
	DLQPath                string
	EngineConfigFile       string
	FetchConcurrency       int
	FetchTimeoutSeconds    int
	GitHubAPIStyle         string
	GitHubToken            string
	GitLabBaseURL          string
	GitLabSkipSSLVerify    bool
	GitLabToken            string
	LogFormat              string
	LogLevel               string
	MaxFiles               int
	ModelAPI               string
	ModelID                string
	ModelMaxResponseTokens int
	ModelProvider          string
	ModelSkipSSLVerify     bool
	ModelTimeoutSeconds    int
	ModelUserKey           string
	PerFileCapChars        int
	RawRequestsPerSecond   int
}

// Load creates a new Config instance from environment variables and validates it.
// Model configuration is only required when a summary will actually be
// generated (needsModel); context-only runs work without credentials.
func Load(needsModel bool) (*Config, error) {

	// Parse Git platform configuration
	gitHubToken := os.Getenv("RSUM_GITHUB_TOKEN")
	gitHubAPIStyle := getEnvOrDefault("RSUM_GITHUB_API_STYLE", "rest")
	gitLabBaseURL := getEnvOrDefault("RSUM_GITLAB_BASE_URL", "https://gitlab.com")
	gitLabToken := os.Getenv("RSUM_GITLAB_TOKEN")

	gitLabSkipSSL, err := parseBoolEnvOrDefault("RSUM_GITLAB_SKIP_SSL_VERIFY", false)
	if err != nil {
		return nil, err
	}

	// Parse logging configuration
	logFormat := os.Getenv("RSUM_LOG_FORMAT")
	logLevel := os.Getenv("RSUM_LOG_LEVEL")

	// Parse fetch configuration
	maxFiles, err := parseIntEnvOrDefault("RSUM_MAX_FILES", 500, 1, 100000)
	if err != nil {
		return nil, err
	}
	fetchTimeoutSeconds, err := parseIntEnvOrDefault("RSUM_FETCH_TIMEOUT_SECONDS", 60, 1, 3600)
	if err != nil {
		return nil, err
	}
	fetchConcurrency, err := parseIntEnvOrDefault("RSUM_FETCH_CONCURRENCY", 8, 1, 64)
	if err != nil {
		return nil, err
	}
	rawRequestsPerSecond, err := parseIntEnvOrDefault("RSUM_RAW_REQUESTS_PER_SECOND", 20, 1, 1000)
	if err != nil {
		return nil, err
	}

	// Parse context engine limits
	contextLimitChars, err := parseIntEnvOrDefault("RSUM_CONTEXT_LIMIT_CHARS", 60000, 1, 100000000)
	if err != nil {
		return nil, err
	}
	perFileCapChars, err := parseIntEnvOrDefault("RSUM_PER_FILE_CAP_CHARS", 20000, 1, 100000000)
	if err != nil {
		return nil, err
	}
	engineConfigFile := os.Getenv("RSUM_ENGINE_CONFIG_FILE")

	// Parse model configuration
	modelProvider := getEnvOrDefault("RSUM_MODEL_PROVIDER", "gemini")
	prefix := strings.ToUpper(modelProvider)
	modelAPI := os.Getenv(fmt.Sprintf("RSUM_%s_MODEL_API", prefix))
	modelID := os.Getenv(fmt.Sprintf("RSUM_%s_MODEL_ID", prefix))
	modelUserKey := os.Getenv(fmt.Sprintf("RSUM_%s_USER_KEY", prefix))

	modelSkipSSL, err := parseBoolEnvOrDefault("RSUM_MODEL_SKIP_SSL_VERIFY", false)
	if err != nil {
		return nil, err
	}
	modelMaxResponseTokens, err := parseIntEnvOrDefault("RSUM_MODEL_MAX_RESPONSE_TOKENS", 2048, 1, 1000000000)
	if err != nil {
		return nil, err
	}
	modelTimeoutSeconds, err := parseIntEnvOrDefault("RSUM_MODEL_TIMEOUT_SECONDS", 120, 1, 1000000000)
	if err != nil {
		return nil, err
	}

	// Parse audit configuration
	auditLogPath := getEnvOrDefault("RSUM_AUDIT_LOG_PATH", "AUDIT.jsonl")
	dlqPath := getEnvOrDefault("RSUM_DLQ_PATH", "DLQ.jsonl")

	// Build config struct
	cfg := &Config{
		AuditLogPath:           auditLogPath,
		ContextLimitChars:      contextLimitChars,
		DLQPath:                dlqPath,
		EngineConfigFile:       engineConfigFile,
		FetchConcurrency:       fetchConcurrency,
		FetchTimeoutSeconds:    fetchTimeoutSeconds,
		GitHubAPIStyle:         gitHubAPIStyle,
		GitHubToken:            gitHubToken,
		GitLabBaseURL:          gitLabBaseURL,
		GitLabSkipSSLVerify:    gitLabSkipSSL,
		GitLabToken:            gitLabToken,
		LogFormat:              logFormat,
		LogLevel:               logLevel,
		MaxFiles:               maxFiles,
		ModelAPI:               modelAPI,
		ModelID:                modelID,
		ModelMaxResponseTokens: modelMaxResponseTokens,
		ModelProvider:          modelProvider,
		ModelSkipSSLVerify:     modelSkipSSL,
		ModelTimeoutSeconds:    modelTimeoutSeconds,
		ModelUserKey:           modelUserKey,
		PerFileCapChars:        perFileCapChars,
		RawRequestsPerSecond:   rawRequestsPerSecond,
	}

	// Validate configuration
	if err := validateConfig(cfg, needsModel, prefix); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default if not set
func getEnvOrDefault(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// parseIntEnvOrDefault parses an integer environment variable with range validation or returns a default value if not set
func parseIntEnvOrDefault(key string, defaultVal, min, max int) (int, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer, got: %s", key, str)
	}

	if val < min || val > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, val)
	}

	return val, nil
}

// parseBoolEnvOrDefault parses a boolean environment variable or returns a default value if not set
func parseBoolEnvOrDefault(key string, defaultVal bool) (bool, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}

	val, err := strconv.ParseBool(str)
	if err != nil {
		return false, fmt.Errorf("%s must be a valid boolean, got: %s", key, str)
	}

	return val, nil
}

// validateConfig performs all validation on the loaded configuration
func validateConfig(cfg *Config, needsModel bool, modelProviderPrefix string) error {

	// Validate Git platform configuration
	if !slices.Contains(validAPIStyles, strings.ToLower(cfg.GitHubAPIStyle)) {
		return fmt.Errorf("RSUM_GITHUB_API_STYLE must be one of: %v; got: %s", validAPIStyles, cfg.GitHubAPIStyle)
	}
	if cfg.GitLabBaseURL == "" {
		return fmt.Errorf("RSUM_GITLAB_BASE_URL must not be empty")
	}

	// Validate logging configuration
	if cfg.LogFormat != "" {
		if !slices.Contains(validLogFormats, strings.ToLower(cfg.LogFormat)) {
			return fmt.Errorf("RSUM_LOG_FORMAT must be one of: %v; got: %s", validLogFormats, cfg.LogFormat)
		}
	}
	if cfg.LogLevel != "" {
		if !slices.Contains(validLogLevels, strings.ToLower(cfg.LogLevel)) {
			return fmt.Errorf("RSUM_LOG_LEVEL must be one of: %v; got: %s", validLogLevels, cfg.LogLevel)
		}
	}

	// Validate engine limit coherence
	if cfg.PerFileCapChars > cfg.ContextLimitChars {
		return fmt.Errorf("RSUM_PER_FILE_CAP_CHARS (%d) must not exceed RSUM_CONTEXT_LIMIT_CHARS (%d)",
			cfg.PerFileCapChars, cfg.ContextLimitChars)
	}

	// Validate required model configuration only when a model will be called
	if needsModel {
		if cfg.ModelAPI == "" {
			return fmt.Errorf("RSUM_%s_MODEL_API environment variable is required", modelProviderPrefix)
		}
		if cfg.ModelID == "" {
			return fmt.Errorf("RSUM_%s_MODEL_ID environment variable is required", modelProviderPrefix)
		}
		if cfg.ModelUserKey == "" {
			return fmt.Errorf("RSUM_%s_USER_KEY environment variable is required", modelProviderPrefix)
		}
	}

	return nil
}
