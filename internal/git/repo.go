package git

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	apperrors "github.com/gitlytics/gitlytics-go/internal/errors"
)

// FindRoot locates the repository root by walking upward from start until a
// directory containing .git is found. Returns the absolute root path.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", apperrors.HistoryError(err, "resolve start directory")
	}

	for {
		info, err := os.Stat(filepath.Join(dir, ".git"))
		if err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the filesystem root
			return "", apperrors.NotARepositoryErrorf("not a git repository (or any parent up to %s)", dir)
		}
		dir = parent
	}
}

// ParseRemoteURL extracts owner and repo name from a git remote URL
// Supports multiple URL formats:
//   - HTTPS: https://github.com/owner/repo.git
//   - SSH: git@github.com:owner/repo.git
//   - Git protocol: git://github.com/owner/repo.git
func ParseRemoteURL(remoteURL string) (owner, repo string, err error) {
	remoteURL = strings.TrimSuffix(strings.TrimSpace(remoteURL), ".git")

	httpsRegex := regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/]+)`)
	if matches := httpsRegex.FindStringSubmatch(remoteURL); len(matches) == 3 {
		return matches[1], matches[2], nil
	}

	sshRegex := regexp.MustCompile(`git@[^:]+:([^/]+)/([^/]+)`)
	if matches := sshRegex.FindStringSubmatch(remoteURL); len(matches) == 3 {
		return matches[1], matches[2], nil
	}

	gitRegex := regexp.MustCompile(`git://[^/]+/([^/]+)/([^/]+)`)
	if matches := gitRegex.FindStringSubmatch(remoteURL); len(matches) == 3 {
		return matches[1], matches[2], nil
	}

	return "", "", apperrors.Newf(apperrors.PRSourceUnavailable, "unrecognized git URL format: %s", remoteURL)
}

// IsGitHubRemote reports whether the remote points at github.com
func IsGitHubRemote(remoteURL string) bool {
	return strings.Contains(remoteURL, "github.com")
}
