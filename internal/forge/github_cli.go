package forge

import (
	"context"
	"encoding/json"
	"os/exec"
)

// GitHubCLI counts pull requests through an authenticated gh binary
type GitHubCLI struct {
	repoPath string
}

// NewGitHubCLI creates the gh-backed source, running in the given repo
func NewGitHubCLI(repoPath string) *GitHubCLI {
	return &GitHubCLI{repoPath: repoPath}
}

func (s *GitHubCLI) Name() string { return "github_cli" }

// Count lists the author's PRs via gh. An unauthenticated or missing gh is
// a soft failure, never fatal for the run.
func (s *GitHubCLI) Count(ctx context.Context, identity string) (int, error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return 0, unavailable(err, "gh not installed")
	}

	// Authentication pre-check; gh pr list would prompt otherwise
	auth := exec.CommandContext(ctx, "gh", "auth", "status")
	auth.Dir = s.repoPath
	if err := auth.Run(); err != nil {
		return 0, unavailable(err, "gh not authenticated (run 'gh auth login')")
	}

	cmd := exec.CommandContext(ctx, "gh", "pr", "list", "--author", identity, "--json", "number")
	cmd.Dir = s.repoPath
	output, err := cmd.Output()
	if err != nil {
		return 0, unavailable(err, "gh pr list failed")
	}

	return countJSONRecords(output)
}

// countJSONRecords counts entries in a CLI JSON array response
func countJSONRecords(output []byte) (int, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(output, &records); err != nil {
		return 0, unavailable(err, "malformed CLI JSON response")
	}
	return len(records), nil
}
