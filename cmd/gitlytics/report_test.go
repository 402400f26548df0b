package main

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitlytics/gitlytics-go/internal/config"
	apperrors "github.com/gitlytics/gitlytics-go/internal/errors"
)

func TestBuildQuery(t *testing.T) {
	t.Run("unbounded", func(t *testing.T) {
		q, err := buildQuery("alice", "", "")
		require.NoError(t, err)
		assert.Equal(t, "alice", q.Author)
		assert.False(t, q.Bounded())
	})

	t.Run("both bounds", func(t *testing.T) {
		q, err := buildQuery("alice", "2024-01-10", "2024-01-20")
		require.NoError(t, err)
		assert.Equal(t, "2024-01-10", q.Since.Format("2006-01-02"))
		assert.Equal(t, "2024-01-20", q.Until.Format("2006-01-02"))
	})

	t.Run("malformed start date", func(t *testing.T) {
		_, err := buildQuery("alice", "01/10/2024", "")
		require.Error(t, err)
		assert.Equal(t, apperrors.UsageError, apperrors.GetType(err))
	})

	t.Run("malformed end date", func(t *testing.T) {
		_, err := buildQuery("alice", "", "not-a-date")
		require.Error(t, err)
		assert.Equal(t, apperrors.UsageError, apperrors.GetType(err))
	})

	t.Run("start after end rejected", func(t *testing.T) {
		_, err := buildQuery("alice", "2024-02-01", "2024-01-01")
		require.Error(t, err)
		assert.Equal(t, apperrors.UsageError, apperrors.GetType(err))
	})

	t.Run("equal bounds allowed", func(t *testing.T) {
		_, err := buildQuery("alice", "2024-01-15", "2024-01-15")
		assert.NoError(t, err)
	})
}

// initTestRepo creates a repository with a single commit authored by Alice
func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	for _, args := range [][]string{
		{"init", "-q"},
		{"commit", "--allow-empty", "-q", "-m", "one"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=Alice",
			"GIT_AUTHOR_EMAIL=alice@example.com",
			"GIT_COMMITTER_NAME=Alice",
			"GIT_COMMITTER_EMAIL=alice@example.com",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	return dir
}

// setReportGlobals resets the command globals runReport reads and restores
// the working directory the locator changes
func setReportGlobals(t *testing.T, format, output string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)

	logger = logrus.New()
	logger.SetOutput(io.Discard)
	cfg = config.Default()
	startDate, endDate, githubUsername = "", "", ""
	outputFormat = format
	outputPath = output

	t.Cleanup(func() {
		os.Chdir(wd)
		startDate, endDate, githubUsername = "", "", ""
		outputFormat = "text"
		outputPath = ""
	})
}

func TestRunReportNoCommitsForAuthor(t *testing.T) {
	dir := initTestRepo(t)

	t.Run("unknown author aborts before any report", func(t *testing.T) {
		report := filepath.Join(t.TempDir(), "report.txt")
		setReportGlobals(t, "text", report)

		err := runReport(rootCmd, []string{"Bob", dir})
		require.Error(t, err)
		assert.Equal(t, apperrors.NoCommitsForAuthor, apperrors.GetType(err))

		_, statErr := os.Stat(report)
		assert.True(t, os.IsNotExist(statErr), "no report may be produced")
	})

	t.Run("window excluding every commit aborts the same way", func(t *testing.T) {
		report := filepath.Join(t.TempDir(), "report.txt")
		setReportGlobals(t, "text", report)
		startDate = "2030-01-01"

		err := runReport(rootCmd, []string{"Alice", dir})
		require.Error(t, err)
		assert.Equal(t, apperrors.NoCommitsForAuthor, apperrors.GetType(err))

		_, statErr := os.Stat(report)
		assert.True(t, os.IsNotExist(statErr), "no report may be produced")
	})
}
