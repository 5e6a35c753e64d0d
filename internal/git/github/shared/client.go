package shared

import (
	"github.com/google/go-github/v80/github"
)

// NewRESTClient creates a new GitHub REST API client. An empty token yields an
// unauthenticated client, which works for public repositories at lower rate
// limits.
func NewRESTClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}
	return github.NewClient(nil).WithAuthToken(token)
}
