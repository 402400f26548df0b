package main

import (
	"context"
	"fmt"
	"os"
	"time"

	apperrors "github.com/gitlytics/gitlytics-go/internal/errors"
	"github.com/gitlytics/gitlytics-go/internal/forge"
	"github.com/gitlytics/gitlytics-go/internal/git"
	"github.com/gitlytics/gitlytics-go/internal/output"
	"github.com/gitlytics/gitlytics-go/internal/stats"
	"github.com/spf13/cobra"
)

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	author := args[0]
	startPath := "."
	if len(args) > 1 {
		startPath = args[1]
	}

	query, err := buildQuery(author, startDate, endDate)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(outputFormat)
	if err != nil {
		return err
	}

	root, err := git.FindRoot(startPath)
	if err != nil {
		return err
	}
	// Subsequent current-LOC reads and forge CLIs run unqualified from the root
	if err := os.Chdir(root); err != nil {
		return apperrors.HistoryError(err, "cannot enter repository root")
	}
	logger.WithField("root", root).Debug("Located repository")

	history := git.NewHistory(root)

	// Existence pre-check short-circuits aggregation: no commits, no report
	exists, err := history.HasCommits(ctx, query)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NoCommitsErrorf("no commits found for author %q in the selected range", author)
	}

	report, err := stats.Aggregate(ctx, history, root, query)
	if err != nil {
		return err
	}

	identity := githubUsername
	if identity == "" {
		identity = author
	}
	report.PullRequests = prChain(ctx, history, root).Resolve(ctx, identity)

	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("cannot write report to %s: %w", outputPath, err)
		}
		defer f.Close()
		if err := formatter.Format(report, f); err != nil {
			return err
		}
		fmt.Printf("Report saved to: %s\n", outputPath)
		return nil
	}

	return formatter.Format(report, os.Stdout)
}

// buildQuery validates the date bounds and assembles the history query
func buildQuery(author, start, end string) (git.Query, error) {
	q := git.Query{Author: author}

	var err error
	if start != "" {
		if q.Since, err = parseDate(start); err != nil {
			return git.Query{}, apperrors.UsageErrorf("invalid --start-date %q: expected YYYY-MM-DD", start)
		}
	}
	if end != "" {
		if q.Until, err = parseDate(end); err != nil {
			return git.Query{}, apperrors.UsageErrorf("invalid --end-date %q: expected YYYY-MM-DD", end)
		}
	}
	if !q.Since.IsZero() && !q.Until.IsZero() && q.Since.After(q.Until) {
		return git.Query{}, apperrors.UsageErrorf("--start-date %s is after --end-date %s", start, end)
	}
	return q, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// prChain assembles the PR-count fallback order: gh, then glab, then the
// REST API when the origin remote is a GitHub repository.
func prChain(ctx context.Context, history *git.History, root string) *forge.Chain {
	sources := []forge.Source{
		forge.NewGitHubCLI(root),
		forge.NewGitLabCLI(root),
	}

	remoteURL, err := history.RemoteURL(ctx)
	if err != nil {
		logger.WithError(err).Debug("No origin remote, skipping REST fallback")
	} else if git.IsGitHubRemote(remoteURL) {
		owner, repo, err := git.ParseRemoteURL(remoteURL)
		if err != nil {
			logger.WithError(err).Debug("Cannot parse origin remote, skipping REST fallback")
		} else {
			sources = append(sources, forge.NewGitHubAPI(owner, repo, cfg.GitHub.Token, cfg.GitHub.RateLimit, cfg.GitHub.Timeout))
		}
	}

	return forge.NewChain(logger, sources...)
}
