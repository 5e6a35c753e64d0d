package gitlab

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"repo-summarizer/internal/config"
	"repo-summarizer/internal/git/types"

	gitlabapi "gitlab.com/gitlab-org/api/client-go"
)

// gitlabRepoRegex matches GitLab repository URLs and extracts host and project
// path. Subgroups are supported:
// https://gitlab.com/owner/repo or https://gitlab.com/group/subgroup/repo
var gitlabRepoRegex = regexp.MustCompile(`^https?://([^/]+)/((?:[^/]+/)+[^/?#]+?)(?:\.git)?/?$`)

// maxRawFetchBytes caps per-file raw downloads; bigger files keep their size
// but carry ContentOK=false.
const maxRawFetchBytes = 1 << 20

// Fetcher implements the RepoFetcher interface for GitLab
type Fetcher struct {
	client *gitlabapi.Client
	config *config.Config
}

// NewFetcher creates a new GitLab repository fetcher
func NewFetcher(client *gitlabapi.Client, cfg *config.Config) *Fetcher {
	return &Fetcher{
		client: client,
		config: cfg,
	}
}

// Name returns the platform name
func (f *Fetcher) Name() string {
	return "GitLab"
}

// IsRepoURL checks if a URL is a valid GitLab repository URL
func (f *Fetcher) IsRepoURL(repoURL string) bool {
	host, _, err := parseRepoURL(repoURL)
	if err != nil {
		return false
	}
	return host == f.baseHost()
}

// FetchSnapshot fetches the full file listing and text contents of the
// project's default branch
func (f *Fetcher) FetchSnapshot(ctx context.Context, repoURL string) (*types.Snapshot, error) {
	slog.Debug("Fetching GitLab snapshot", "url", repoURL)

	host, projectPath, err := parseRepoURL(repoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GitLab repository URL: %w", err)
	}

	// URL-encode project path for API calls
	pid := url.PathEscape(projectPath)

	project, _, err := f.client.Projects.GetProject(pid, &gitlabapi.GetProjectOptions{}, gitlabapi.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project metadata (project=%s): %w", projectPath, err)
	}
	branch := project.DefaultBranch
	if branch == "" {
		return nil, fmt.Errorf("project %s has no default branch", projectPath)
	}

	paths, truncated, err := f.listTreePaths(ctx, pid, branch)
	if err != nil {
		return nil, err
	}

	files := make([]types.RepoFile, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(f.config.FetchConcurrency)

	for i, path := range paths {
		g.Go(func() error {
			files[i] = f.fetchFile(gCtx, pid, branch, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to download project contents: %w", err)
	}

	slog.Debug("GitLab snapshot fetched",
		"project", projectPath,
		"branch", branch,
		"files", len(files),
		"truncated", truncated)

	owner, name := splitProjectPath(projectPath)
	return &types.Snapshot{
		Ref:           types.RepoRef{Host: host, Owner: owner, Name: name},
		DefaultBranch: branch,
		Files:         files,
		Truncated:     truncated,
	}, nil
}

// listTreePaths walks the recursive repository tree with full pagination,
// keeping blob paths up to the max-files cap
func (f *Fetcher) listTreePaths(ctx context.Context, pid, branch string) ([]string, bool, error) {
	var paths []string
	truncated := false

	opts := &gitlabapi.ListTreeOptions{
		Ref:       gitlabapi.Ptr(branch),
		Recursive: gitlabapi.Ptr(true),
		ListOptions: gitlabapi.ListOptions{
			Page:    1,
			PerPage: 100,
		},
	}

	for {
		nodes, resp, err := f.client.Repositories.ListTree(pid, opts, gitlabapi.WithContext(ctx))
		if err != nil {
			return nil, false, fmt.Errorf("failed to fetch repository tree (page %d, ref=%s): %w", opts.Page, branch, err)
		}

		for _, node := range nodes {
			if node.Type != "blob" {
				continue
			}
			if len(paths) >= f.config.MaxFiles {
				return paths, true, nil
			}
			paths = append(paths, node.Path)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return paths, truncated, nil
}

// fetchFile downloads one file's raw content. Failures are recorded through
// ContentOK, never returned as errors.
func (f *Fetcher) fetchFile(ctx context.Context, pid, branch, path string) types.RepoFile {
	file := types.RepoFile{
		Path:  path,
		Depth: strings.Count(path, "/"),
	}

	raw, _, err := f.client.RepositoryFiles.GetRawFile(pid, path, &gitlabapi.GetRawFileOptions{
		Ref: gitlabapi.Ptr(branch),
	}, gitlabapi.WithContext(ctx))
	if err != nil {
		slog.Debug("Failed to download file content", "path", path, "error", err)
		return file
	}

	file.SizeBytes = len(raw)
	if len(raw) > maxRawFetchBytes {
		slog.Debug("Skipping oversize file", "path", path, "size", len(raw))
		return file
	}

	if utf8.Valid(raw) {
		file.Content = string(raw)
		file.ContentOK = true
	}
	return file
}

func (f *Fetcher) baseHost() string {
	parsed, err := url.Parse(f.config.GitLabBaseURL)
	if err != nil || parsed.Host == "" {
		return "gitlab.com"
	}
	return parsed.Host
}

// parseRepoURL extracts host and project path from a GitLab repository URL
func parseRepoURL(repoURL string) (host, projectPath string, err error) {
	matches := gitlabRepoRegex.FindStringSubmatch(strings.TrimSpace(repoURL))
	if len(matches) != 3 {
		return "", "", fmt.Errorf("invalid GitLab repository URL format: %s", repoURL)
	}

	host, projectPath = matches[1], matches[2]

	// GitLab web UI paths (compare, tree, blob, ...) live under "/-/"
	if strings.Contains(projectPath, "/-/") || strings.HasSuffix(projectPath, "/-") {
		return "", "", fmt.Errorf("not a repository URL: %s", repoURL)
	}

	return host, projectPath, nil
}

// splitProjectPath splits "group/subgroup/repo" into owner ("group/subgroup")
// and name ("repo")
func splitProjectPath(projectPath string) (owner, name string) {
	idx := strings.LastIndex(projectPath, "/")
	if idx == -1 {
		return "", projectPath
	}
	return projectPath[:idx], projectPath[idx+1:]
}
