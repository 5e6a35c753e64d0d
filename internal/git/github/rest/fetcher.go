package rest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/go-github/v80/github"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"repo-summarizer/internal/config"
	ghshared "repo-summarizer/internal/git/github/shared"
	"repo-summarizer/internal/git/types"
	internalhttp "repo-summarizer/internal/http"
)

const (
	// maxRawFetchBytes is the largest blob worth downloading; bigger files are
	// recorded with ContentOK=false and left to downstream skip logic.
	maxRawFetchBytes = 1 << 20

	rawRetryMax = 3
)

// Fetcher implements the RepoFetcher interface using the GitHub REST API.
// The file listing comes from the git trees API in a single call; file
// contents are downloaded in parallel from raw.githubusercontent.com under a
// shared rate limiter.
type Fetcher struct {
	client     *github.Client
	rawClient  *stdhttp.Client
	limiter    *rate.Limiter
	config     *config.Config
	rawBaseURL string
}

// NewFetcher creates a new GitHub REST-based fetcher
func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		client: ghshared.NewRESTClient(cfg.GitHubToken),
		rawClient: internalhttp.NewHTTPClient(internalhttp.HTTPClientOptions{
			Timeout:  time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
			RetryMax: rawRetryMax,
		}),
		limiter:    rate.NewLimiter(rate.Limit(cfg.RawRequestsPerSecond), cfg.RawRequestsPerSecond),
		config:     cfg,
		rawBaseURL: "https://raw.githubusercontent.com",
	}
}

// Name returns the platform name
func (f *Fetcher) Name() string {
	return "GitHub"
}

// IsRepoURL checks if a URL is a valid GitHub repository URL
func (f *Fetcher) IsRepoURL(url string) bool {
	return ghshared.RepoURLRegex.MatchString(strings.TrimSpace(url))
}

// FetchSnapshot fetches the full file listing and text contents of the
// repository's default branch
func (f *Fetcher) FetchSnapshot(ctx context.Context, repoURL string) (*types.Snapshot, error) {
	slog.Debug("Fetching GitHub snapshot via REST", "url", repoURL)

	owner, repo, err := ghshared.ParseRepoURL(repoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GitHub repository URL: %w", err)
	}

	repoInfo, _, err := f.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository metadata (owner=%s, repo=%s): %w", owner, repo, err)
	}
	branch := repoInfo.GetDefaultBranch()
	if branch == "" {
		return nil, fmt.Errorf("repository %s/%s has no default branch", owner, repo)
	}

	tree, _, err := f.client.Git.GetTree(ctx, owner, repo, branch, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository tree (owner=%s, repo=%s, ref=%s): %w", owner, repo, branch, err)
	}

	truncated := tree.GetTruncated()

	var blobs []*github.TreeEntry
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		if len(blobs) >= f.config.MaxFiles {
			truncated = true
			break
		}
		blobs = append(blobs, entry)
	}

	files := make([]types.RepoFile, len(blobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(f.config.FetchConcurrency)

	for i, entry := range blobs {
		g.Go(func() error {
			path := entry.GetPath()
			file := types.RepoFile{
				Path:      path,
				Depth:     strings.Count(path, "/"),
				SizeBytes: entry.GetSize(),
			}

			if entry.GetSize() > maxRawFetchBytes {
				slog.Debug("Skipping oversize blob", "path", path, "size", entry.GetSize())
				files[i] = file
				return nil
			}

			if err := f.limiter.Wait(gCtx); err != nil {
				return err
			}

			content, err := f.fetchRaw(gCtx, owner, repo, branch, path)
			if err != nil {
				slog.Debug("Failed to download file content", "path", path, "error", err)
				files[i] = file
				return nil
			}

			if utf8.ValidString(content) {
				file.Content = content
				file.ContentOK = true
			}
			files[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to download repository contents: %w", err)
	}

	slog.Debug("GitHub snapshot fetched via REST",
		"owner", owner,
		"repo", repo,
		"branch", branch,
		"files", len(files),
		"truncated", truncated)

	return &types.Snapshot{
		Ref:           types.RepoRef{Host: "github.com", Owner: owner, Name: repo},
		DefaultBranch: branch,
		Files:         files,
		Truncated:     truncated,
	}, nil
}

// fetchRaw downloads one file's content from raw.githubusercontent.com
func (f *Fetcher) fetchRaw(ctx context.Context, owner, repo, branch, path string) (string, error) {
	rawURL := fmt.Sprintf("%s/%s/%s/%s/%s",
		f.rawBaseURL,
		url.PathEscape(owner),
		url.PathEscape(repo),
		escapePathSegments(branch),
		escapePathSegments(path))

	req, err := stdhttp.NewRequestWithContext(ctx, stdhttp.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	if f.config.GitHubToken != "" {
		req.Header.Set("Authorization", "token "+f.config.GitHubToken)
	}

	resp, err := f.rawClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != stdhttp.StatusOK {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRawFetchBytes+1))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// escapePathSegments escapes each segment of a slash-separated path while
// preserving the separators (branch names and file paths may contain slashes)
func escapePathSegments(p string) string {
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
