package github

import (
	"log/slog"
	"strings"

	"repo-summarizer/internal/config"
	"repo-summarizer/internal/git/github/graphql"
	"repo-summarizer/internal/git/github/rest"
	"repo-summarizer/internal/git/types"
)

// NewFetcher creates a GitHub fetcher based on configuration.
// Returns the GraphQL-based fetcher if RSUM_GITHUB_API_STYLE=graphql,
// otherwise the REST-based one.
func NewFetcher(cfg *config.Config) types.RepoFetcher {
	if strings.EqualFold(cfg.GitHubAPIStyle, "graphql") {
		slog.Info("Using GitHub GraphQL API")
		return graphql.NewFetcher(cfg)
	}

	slog.Debug("Using GitHub REST API")
	return rest.NewFetcher(cfg)
}
