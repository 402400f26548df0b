package forge

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// GitHubAPI counts pull requests through the GitHub search API. It works
// unauthenticated; a token raises the rate limit and reaches private repos.
type GitHubAPI struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	owner       string
	repo        string
	timeout     time.Duration
}

// NewGitHubAPI creates the REST-backed source for one owner/repo. An empty
// token means unauthenticated access.
func NewGitHubAPI(owner, repo, token string, rateLimit int, timeout time.Duration) *GitHubAPI {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return &GitHubAPI{
		client:      github.NewClient(httpClient),
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		owner:       owner,
		repo:        repo,
		timeout:     timeout,
	}
}

func (s *GitHubAPI) Name() string { return "github_api" }

// Count searches issues scoped to the repo with an is:pr qualifier. The
// call is bounded by the configured timeout so a slow network cannot hang
// the run.
func (s *GitHubAPI) Count(ctx context.Context, identity string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.rateLimiter.Wait(ctx); err != nil {
		return 0, unavailable(err, "rate limiter")
	}

	query := fmt.Sprintf("author:%s repo:%s/%s is:pr", identity, s.owner, s.repo)
	result, _, err := s.client.Search.Issues(ctx, query, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return 0, unavailable(err, "GitHub search failed")
	}

	return result.GetTotal(), nil
}
