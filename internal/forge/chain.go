package forge

import (
	"context"

	"github.com/gitlytics/gitlytics-go/internal/stats"
	"github.com/sirupsen/logrus"
)

// Chain tries sources in fixed priority order and stops at the first
// definite count.
type Chain struct {
	sources []Source
	logger  *logrus.Logger
}

// NewChain builds a chain over the given sources, in priority order
func NewChain(logger *logrus.Logger, sources ...Source) *Chain {
	return &Chain{sources: sources, logger: logger}
}

// Resolve walks the chain. Exhausting every source yields the unknown
// sentinel and a remediation hint in the log; it is never an error.
func (c *Chain) Resolve(ctx context.Context, identity string) stats.PullRequestStats {
	for _, source := range c.sources {
		count, err := source.Count(ctx, identity)
		if err != nil {
			c.logger.WithError(err).WithField("source", source.Name()).Debug("PR source unavailable, trying next")
			continue
		}
		c.logger.WithFields(logrus.Fields{"source": source.Name(), "count": count}).Debug("PR count resolved")
		return stats.PullRequestStats{Count: stats.KnownCount(count), Source: source.Name()}
	}

	c.logger.Warn("Could not determine PR count from any source. " +
		"Authenticate the GitHub CLI (gh auth login), install glab, or set GITHUB_TOKEN for the REST fallback.")
	return stats.PullRequestStats{Count: stats.UnknownCount(), Source: "unknown"}
}
