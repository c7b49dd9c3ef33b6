// Package cmd provides CLI commands for settle.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/pkg/logging"
)

type options struct {
	file            string
	debug           bool
	maxParticipants int
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "settle",
		Short: "Compute who pays whom to settle a shared ledger",
		Long: `settle reads a YAML ledger of payments and shared expenses and
prints net balances, a settlement plan, or a Graphviz graph.

Example:
  settle balances -f trip.yaml
  settle plan -f trip.yaml
  settle graph -f trip.yaml --minimized | dot -Tpng > plan.png`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel := slog.LevelWarn
			if opts.debug {
				logLevel = slog.LevelDebug
			}
			logging.SetupWithLevel(logLevel)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "ledger.yaml", "ledger file")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&opts.maxParticipants, "max-participants", calculator.DefaultMaxParticipants, "refuse ledgers with more participants (0 = no limit)")

	// Add subcommands
	rootCmd.AddCommand(newBalancesCmd(opts))
	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newGraphCmd(opts))

	return rootCmd
}

// Execute runs the CLI with os.Args.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// loadLedger reads the ledger named by --file.
func (o *options) loadLedger() (*ledger.Ledger, error) {
	slog.Debug("Loading ledger", "path", o.file)

	f, err := ReadLedgerFile(o.file)
	if err != nil {
		return nil, err
	}

	cfg := calculator.DefaultConfig()
	cfg.MaxParticipants = o.maxParticipants
	l, err := f.Ledger(cfg)
	if err != nil {
		return nil, err
	}

	slog.Debug("Ledger loaded", "transactions", l.Len())
	return l, nil
}
