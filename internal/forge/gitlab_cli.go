package forge

import (
	"context"
	"os/exec"
)

// GitLabCLI counts merge requests through the glab binary
type GitLabCLI struct {
	repoPath string
}

// NewGitLabCLI creates the glab-backed source, running in the given repo
func NewGitLabCLI(repoPath string) *GitLabCLI {
	return &GitLabCLI{repoPath: repoPath}
}

func (s *GitLabCLI) Name() string { return "gitlab_cli" }

func (s *GitLabCLI) Count(ctx context.Context, identity string) (int, error) {
	if _, err := exec.LookPath("glab"); err != nil {
		return 0, unavailable(err, "glab not installed")
	}

	cmd := exec.CommandContext(ctx, "glab", "mr", "list", "--author", identity, "--output", "json")
	cmd.Dir = s.repoPath
	output, err := cmd.Output()
	if err != nil {
		return 0, unavailable(err, "glab mr list failed")
	}

	return countJSONRecords(output)
}
