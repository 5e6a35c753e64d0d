package types

import (
	"context"
)

// RepoFetcher represents a git hosting platform (GitHub, GitLab, etc.) that
// can materialize a repository snapshot for the context engine.
type RepoFetcher interface {
	// IsRepoURL checks if a URL is a valid repository URL for this platform
	IsRepoURL(url string) bool

	// FetchSnapshot fetches the file tree and text contents of one repository
	// snapshot. Per-file content failures are reported through
	// RepoFile.ContentOK, not as errors.
	FetchSnapshot(ctx context.Context, repoURL string) (*Snapshot, error)

	// Name returns the platform name (e.g., "GitHub", "GitLab")
	Name() string
}
