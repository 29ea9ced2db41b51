// Package cli implements the suppcalc command line tool.
package cli

import (
	"fmt"

	"github.com/guttosm/suppository-service/internal/logger"
	"github.com/guttosm/suppository-service/internal/service"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// Dependencies are the services the commands run against.
type Dependencies struct {
	Calculator service.Calculator
	// History records CLI calculations; nil or disabled means nothing is stored.
	History service.HistoryService
	// MaxMessageLength caps chat input lines; zero uses the service default.
	MaxMessageLength int
}

type rootOptions struct {
	logLevel string
	pretty   bool
}

// NewRootCommand creates the suppcalc command tree.
func NewRootCommand(deps Dependencies) *cobra.Command {
	if deps.Calculator == nil {
		deps.Calculator = service.NewCalculatorService()
	}
	if deps.History == nil {
		deps.History = service.NewHistoryService(nil)
	}

	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "suppcalc",
		Short: "Calculate suppository base with the density-ratio displacement method",
		Long: `suppcalc works out how much base to weigh for a batch of suppositories.

Each active ingredient displaces base in proportion to the ratio of the base
density to its own density (or by its displacement factor). The result is the
blank weight of the batch minus the displaced base.

Examples:
  suppcalc calculate -n 12 --blank 1.8 --base-density 0.95 --api "Drug A,150,mg,density=1.2"
  suppcalc calculate --input batch.json --format csv
  suppcalc chat`,
		Version:       fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(opts.logLevel, opts.pretty)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.BoolVar(&opts.pretty, "pretty-logs", true, "human-readable log output on stderr")

	cmd.AddCommand(newCalculateCommand(deps))
	cmd.AddCommand(newChatCommand(deps))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "suppcalc %s (commit: %s)\n", Version, GitCommit)
		},
	}
}
