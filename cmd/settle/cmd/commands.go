package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/settleup/internal/report"
)

func newBalancesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Print each participant's net balance",
		Long: `Print paid, received and net amounts per participant in order of
first appearance. A negative net means the participant owes money.

Example:
  settle balances -f trip.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.loadLedger()
			if err != nil {
				return err
			}
			balances, err := l.Balances()
			if err != nil {
				return err
			}
			return report.Balances(cmd.OutOrStdout(), balances)
		},
	}
}

func newPlanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the settlement plan",
		Long: `Print one "X pays Y amount" line per transfer. Applying every
transfer zeroes all balances.

Example:
  settle plan -f trip.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.loadLedger()
			if err != nil {
				return err
			}
			_, plan, err := l.Settle()
			if err != nil {
				return err
			}
			return report.Plan(cmd.OutOrStdout(), plan)
		},
	}
}

func newGraphCmd(opts *options) *cobra.Command {
	var minimized bool

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the ledger or its settlement plan as a Graphviz digraph",
		Long: `Print a DOT digraph of the recorded transactions, or with
--minimized of the settlement plan.

Example:
  settle graph -f trip.yaml | dot -Tsvg > ledger.svg
  settle graph -f trip.yaml --minimized | dot -Tsvg > plan.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.loadLedger()
			if err != nil {
				return err
			}
			if !minimized {
				return report.DOT(cmd.OutOrStdout(), "Transactions", report.TransactionEdges(l.Transactions()))
			}
			_, plan, err := l.Settle()
			if err != nil {
				return err
			}
			return report.DOT(cmd.OutOrStdout(), "Settlement", report.PlanEdges(plan))
		},
	}
	cmd.Flags().BoolVar(&minimized, "minimized", false, "graph the settlement plan instead of the ledger")
	return cmd
}
