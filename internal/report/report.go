// Package report renders balances and settlement plans for people and for
// Graphviz.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/calculator"
)

// Places is the number of decimal places amounts are displayed with.
const Places = 2

// Amount formats an amount for display.
func Amount(a decimal.Decimal) string {
	return a.StringFixed(Places)
}

// Plan writes one "who pays whom how much" line per transfer.
func Plan(w io.Writer, plan calculator.Plan) error {
	if len(plan) == 0 {
		_, err := fmt.Fprintln(w, "Everyone is settled up.")
		return err
	}
	for _, t := range plan {
		if _, err := fmt.Fprintf(w, "%s pays %s %s\n", t.Payer, t.Payee, Amount(t.Amount)); err != nil {
			return err
		}
	}
	return nil
}

// PlanText is Plan rendered to a string.
func PlanText(plan calculator.Plan) string {
	var sb strings.Builder
	_ = Plan(&sb, plan)
	return sb.String()
}

// Balances writes a fixed-width table of positions in ledger order.
func Balances(w io.Writer, b *calculator.Balances) error {
	members := b.Members()
	width := len("Participant")
	for _, m := range members {
		width = max(width, len(m.Participant))
	}

	if _, err := fmt.Fprintf(w, "%-*s %12s %12s %12s\n", width, "Participant", "Paid", "Received", "Net"); err != nil {
		return err
	}
	for _, m := range members {
		if _, err := fmt.Fprintf(w, "%-*s %12s %12s %12s\n",
			width, m.Participant, Amount(m.Paid), Amount(m.Received), Amount(m.Net)); err != nil {
			return err
		}
	}
	return nil
}

// Edge is a weighted, directed edge of a transaction graph.
type Edge struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// TransactionEdges turns recorded transactions into graph edges,
// merging repeated payer/payee pairs.
func TransactionEdges(txns []calculator.Transaction) []Edge {
	index := make(map[[2]string]int)
	var edges []Edge
	for _, t := range txns {
		key := [2]string{t.Payer, t.Payee}
		if i, ok := index[key]; ok {
			edges[i].Amount = edges[i].Amount.Add(t.Amount)
			continue
		}
		index[key] = len(edges)
		edges = append(edges, Edge{From: t.Payer, To: t.Payee, Amount: t.Amount})
	}
	return edges
}

// PlanEdges turns a settlement plan into graph edges.
func PlanEdges(plan calculator.Plan) []Edge {
	edges := make([]Edge, len(plan))
	for i, t := range plan {
		edges[i] = Edge{From: t.Payer, To: t.Payee, Amount: t.Amount}
	}
	return edges
}

// DOT writes a Graphviz digraph with one labelled edge per entry.
func DOT(w io.Writer, title string, edges []Edge) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", strconv.Quote(title))
	sb.WriteString("  label=" + strconv.Quote(title) + ";\n")
	sb.WriteString("  node [shape=circle, style=filled, fillcolor=lightblue];\n")
	for _, e := range edges {
		fmt.Fprintf(&sb, "  %s -> %s [label=%s];\n",
			strconv.Quote(e.From), strconv.Quote(e.To), strconv.Quote(Amount(e.Amount)))
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
