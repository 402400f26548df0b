package git

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/gitlytics/gitlytics-go/internal/errors"
)

// recentWindow is the trailing activity window. It is anchored to the wall
// clock, not to the query's date bounds, so a historical --until can
// legitimately produce a zero recent count.
const recentWindow = "30 days ago"

// History issues read-only log queries against one repository for a single
// author and date window. Every query shells out to the git binary; a
// missing or failing binary surfaces as HistoryUnavailable.
type History struct {
	repoPath string
}

// NewHistory creates a History bound to the given repository root
func NewHistory(repoPath string) *History {
	return &History{repoPath: repoPath}
}

func (h *History) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = h.repoPath

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", apperrors.HistoryError(err, "git "+strings.Join(args, " ")+" failed (stderr: "+strings.TrimSpace(string(exitErr.Stderr))+")")
		}
		return "", apperrors.HistoryError(err, "git "+strings.Join(args, " ")+" failed")
	}
	return strings.TrimSpace(string(output)), nil
}

// HasCommits reports whether the author has at least one commit in the window
func (h *History) HasCommits(ctx context.Context, q Query) (bool, error) {
	args := append([]string{"log", "--all", "--author", q.Author, "--oneline", "-1"}, q.dateArgs()...)
	output, err := h.run(ctx, args...)
	if err != nil {
		return false, err
	}
	return output != "", nil
}

// CountCommits returns the raw count of matching log entries across all refs
func (h *History) CountCommits(ctx context.Context, q Query) (int, error) {
	args := append([]string{"log", "--all", "--author", q.Author, "--oneline"}, q.dateArgs()...)
	output, err := h.run(ctx, args...)
	if err != nil {
		return 0, err
	}
	return countLines(output), nil
}

// UniqueCommits returns the number of distinct commit hashes in the window
func (h *History) UniqueCommits(ctx context.Context, q Query) (int, error) {
	args := append([]string{"log", "--all", "--author", q.Author, "--pretty=format:%H"}, q.dateArgs()...)
	output, err := h.run(ctx, args...)
	if err != nil {
		return 0, err
	}
	if output == "" {
		return 0, nil
	}
	seen := make(map[string]struct{})
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			seen[line] = struct{}{}
		}
	}
	return len(seen), nil
}

// RecentCommits counts the author's commits in the trailing 30-day window.
// The window filter is passed before the query's own bounds, mirroring how
// the two interact in git when both are present.
func (h *History) RecentCommits(ctx context.Context, q Query) (int, error) {
	args := append([]string{"log", "--all", "--author", q.Author, "--since=" + recentWindow, "--oneline"}, q.dateArgs()...)
	output, err := h.run(ctx, args...)
	if err != nil {
		return 0, err
	}
	return countLines(output), nil
}

// RemoteBranches lists remote-tracking branches, skipping symrefs
func (h *History) RemoteBranches(ctx context.Context) ([]string, error) {
	output, err := h.run(ctx, "branch", "-r")
	if err != nil {
		return nil, err
	}
	var branches []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "->") {
			continue
		}
		branches = append(branches, line)
	}
	return branches, nil
}

// CountCommitsOnBranch counts the author's commits reachable from one branch
func (h *History) CountCommitsOnBranch(ctx context.Context, branch string, q Query) (int, error) {
	args := append([]string{"log", "--author", q.Author, branch, "--oneline"}, q.dateArgs()...)
	output, err := h.run(ctx, args...)
	if err != nil {
		return 0, err
	}
	return countLines(output), nil
}

// ChangedFiles returns the deduplicated set of paths the author's commits
// touched in the window
func (h *History) ChangedFiles(ctx context.Context, q Query) ([]string, error) {
	args := append([]string{"log", "--all", "--author", q.Author, "--name-only", "--pretty=format:"}, q.dateArgs()...)
	output, err := h.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var files []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		files = append(files, line)
	}
	return files, nil
}

// DiffTotals sums numstat additions and deletions over the author's commits
func (h *History) DiffTotals(ctx context.Context, q Query) (added, deleted int, err error) {
	args := append([]string{"log", "--all", "--author", q.Author, "--pretty=tformat:", "--numstat"}, q.dateArgs()...)
	output, err := h.run(ctx, args...)
	if err != nil {
		return 0, 0, err
	}
	added, deleted = parseNumstat(output)
	return added, deleted, nil
}

// CommitDates returns the author date of every matching commit as a
// YYYY-MM-DD string, newest first (git log order)
func (h *History) CommitDates(ctx context.Context, q Query) ([]string, error) {
	args := append([]string{"log", "--all", "--author", q.Author, "--pretty=format:%ad", "--date=short"}, q.dateArgs()...)
	output, err := h.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return nil, nil
	}
	var dates []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			dates = append(dates, line)
		}
	}
	return dates, nil
}

// CommitTimes returns full author timestamps for weekday computation.
// Unparsable lines are skipped.
func (h *History) CommitTimes(ctx context.Context, q Query) ([]time.Time, error) {
	args := append([]string{"log", "--all", "--author", q.Author, "--pretty=format:%aD"}, q.dateArgs()...)
	output, err := h.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return nil, nil
	}
	var times []time.Time
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// git %aD format: "Mon, 2 Jan 2006 15:04:05 -0700"
		t, err := time.Parse("Mon, 2 Jan 2006 15:04:05 -0700", line)
		if err != nil {
			continue
		}
		times = append(times, t)
	}
	return times, nil
}

// RemoteURL returns the URL of the origin remote
func (h *History) RemoteURL(ctx context.Context) (string, error) {
	return h.run(ctx, "config", "--get", "remote.origin.url")
}

// countLines counts non-empty log lines; empty output means zero commits
func countLines(output string) int {
	if output == "" {
		return 0
	}
	return strings.Count(output, "\n") + 1
}

// parseNumstat sums a --numstat listing. Binary files report "-" for both
// columns and count as zero; malformed lines are skipped.
func parseNumstat(output string) (added, deleted int) {
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		added += numstatValue(parts[0])
		deleted += numstatValue(parts[1])
	}
	return added, deleted
}

// numstatValue clamps a numstat column to a non-negative count
func numstatValue(field string) int {
	n, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
