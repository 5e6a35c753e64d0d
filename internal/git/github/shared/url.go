package shared

import (
	"fmt"
	"regexp"
	"strings"
)

// RepoURLRegex matches GitHub repository URLs and extracts owner and name
var RepoURLRegex = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/?#]+?)(?:\.git)?/?$`)

// ParseRepoURL extracts owner and repo name from a GitHub repository URL
func ParseRepoURL(repoURL string) (owner, repo string, err error) {
	matches := RepoURLRegex.FindStringSubmatch(strings.TrimSpace(repoURL))
	if len(matches) != 3 {
		return "", "", fmt.Errorf("invalid GitHub repository URL format: %s", repoURL)
	}
	return matches[1], matches[2], nil
}
