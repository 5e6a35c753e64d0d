package graphql

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/shurcooL/githubv4"
	"golang.org/x/sync/errgroup"
	"repo-summarizer/internal/config"
	ghshared "repo-summarizer/internal/git/github/shared"
	"repo-summarizer/internal/git/types"
)

// maxBlobTextBytes mirrors the REST fetcher's download cap; bigger blobs are
// listed with ContentOK=false even when the API inlines their text.
const maxBlobTextBytes = 1 << 20

// Fetcher implements the RepoFetcher interface using GitHub's GraphQL API.
// Each directory level is fetched as one query that inlines blob text, so no
// separate raw-content downloads are needed.
type Fetcher struct {
	client *githubv4.Client
	config *config.Config
}

// NewFetcher creates a new GitHub GraphQL-based fetcher
func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		client: newClient(cfg.GitHubToken),
		config: cfg,
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

type defaultBranchQuery struct {
	Repository struct {
		DefaultBranchRef struct {
			Name string
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

type treeEntriesQuery struct {
	Repository struct {
		Object struct {
			Tree struct {
				Entries []treeEntry
			} `graphql:"... on Tree"`
		} `graphql:"object(expression: $expr)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

type treeEntry struct {
	Name   string
	Path   string
	Type   string
	Object struct {
		Blob struct {
			ByteSize int
			IsBinary bool
			Text     *string
		} `graphql:"... on Blob"`
	}
}

// FetchSnapshot fetches the full file listing and text contents of the
// repository's default branch, walking the tree one directory level at a time
func (f *Fetcher) FetchSnapshot(ctx context.Context, repoURL string) (*types.Snapshot, error) {
	slog.Debug("Fetching GitHub snapshot via GraphQL", "url", repoURL)

	owner, repo, err := ghshared.ParseRepoURL(repoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GitHub repository URL: %w", err)
	}

	branch, err := f.fetchDefaultBranch(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository metadata (owner=%s, repo=%s): %w", owner, repo, err)
	}

	var (
		mu        sync.Mutex
		files     []types.RepoFile
		truncated bool
	)

	// breadth-first walk; each level's directories are queried in parallel
	dirs := []string{""}
	for len(dirs) > 0 && !truncated {
		level := dirs
		dirs = nil

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(f.config.FetchConcurrency)

		for _, dir := range level {
			g.Go(func() error {
				entries, err := f.fetchTree(gCtx, owner, repo, branch, dir)
				if err != nil {
					return fmt.Errorf("failed to fetch tree %q: %w", dir, err)
				}

				mu.Lock()
				defer mu.Unlock()

				for _, entry := range entries {
					switch entry.Type {
					case "tree":
						dirs = append(dirs, entry.Path)
					case "blob":
						if len(files) >= f.config.MaxFiles {
							truncated = true
							return nil
						}
						files = append(files, blobToRepoFile(entry))
					}
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	slog.Debug("GitHub snapshot fetched via GraphQL",
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

func (f *Fetcher) fetchDefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	var query defaultBranchQuery
	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
	}

	if err := f.client.Query(ctx, &query, variables); err != nil {
		return "", err
	}

	branch := query.Repository.DefaultBranchRef.Name
	if branch == "" {
		return "", fmt.Errorf("repository %s/%s has no default branch", owner, repo)
	}
	return branch, nil
}

func (f *Fetcher) fetchTree(ctx context.Context, owner, repo, branch, dir string) ([]treeEntry, error) {
	var query treeEntriesQuery
	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
		"expr":  githubv4.String(branch + ":" + dir),
	}

	if err := f.client.Query(ctx, &query, variables); err != nil {
		return nil, err
	}

	return query.Repository.Object.Tree.Entries, nil
}

func blobToRepoFile(entry treeEntry) types.RepoFile {
	blob := entry.Object.Blob
	file := types.RepoFile{
		Path:      entry.Path,
		Depth:     strings.Count(entry.Path, "/"),
		SizeBytes: blob.ByteSize,
	}

	if !blob.IsBinary && blob.Text != nil && blob.ByteSize <= maxBlobTextBytes {
		file.Content = *blob.Text
		file.ContentOK = true
	}
	return file
}
