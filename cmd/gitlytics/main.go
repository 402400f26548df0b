package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gitlytics/gitlytics-go/internal/config"
	apperrors "github.com/gitlytics/gitlytics-go/internal/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile string
	verbose bool
	logger  *logrus.Logger
	cfg     *config.Config

	startDate      string
	endDate        string
	githubUsername string
	outputFormat   string
	outputPath     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportFailure(os.Stderr, rootCmd, err)
		os.Exit(1)
	}
}

// reportFailure prints the error, adding the usage text for usage errors.
// Fatal runtime errors stay a single line.
func reportFailure(w io.Writer, cmd *cobra.Command, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if apperrors.GetType(err) == apperrors.UsageError {
		fmt.Fprint(w, cmd.UsageString())
	}
}

var rootCmd = &cobra.Command{
	Use:   "gitlytics <author> [repository]",
	Short: "Per-author contribution analytics for a git repository",
	Long: `Gitlytics aggregates one author's contribution statistics from git
history: commit counts, lines added and deleted, branch and time breakdowns,
a pull-request count from the hosting platform, and a derived activity score.

The repository defaults to the one containing the current directory.`,
	Version:       Version,
	Args:          usageArgs(cobra.RangeArgs(1, 2)),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}
	},
	RunE: runReport,
}

// usageArgs categorizes argument-count failures as usage errors so they
// carry the usage text
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return apperrors.UsageErrorf("%v", err)
		}
		return nil
	}
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperrors.UsageErrorf("%v", err)
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .gitlytics/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().StringVar(&startDate, "start-date", "", "only count commits on or after this date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&endDate, "end-date", "", "only count commits on or before this date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&githubUsername, "github-username", "", "forge identity for the PR count (default: the author argument)")
	rootCmd.Flags().StringVar(&outputFormat, "format", "text", "output format: text or json")
	rootCmd.Flags().StringVar(&outputPath, "output", "", "write the report to a file instead of stdout")

	rootCmd.SetVersionTemplate(`gitlytics {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)
}
