package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/ledger"
)

// LedgerFile is the YAML shape read by every command:
//
//	tolerance: "0.005"            # optional
//	transactions:
//	  - {payer: A, payee: B, amount: "10"}
//	expenses:
//	  - payer: A
//	    total: "33"
//	    subtotal: "30"            # optional, defaults to total
//	    participants: [A, B, C]
//	    items:                    # optional, equal split without items
//	      - {description: wine, amount: "20", assigned_to: [B, C]}
type LedgerFile struct {
	Tolerance    string         `yaml:"tolerance"`
	Transactions []TxnEntry     `yaml:"transactions"`
	Expenses     []ExpenseEntry `yaml:"expenses"`
}

type TxnEntry struct {
	Payer  string `yaml:"payer"`
	Payee  string `yaml:"payee"`
	Amount string `yaml:"amount"`
}

type ExpenseEntry struct {
	Payer        string      `yaml:"payer"`
	Total        string      `yaml:"total"`
	Subtotal     string      `yaml:"subtotal"`
	Participants []string    `yaml:"participants"`
	Items        []ItemEntry `yaml:"items"`
}

type ItemEntry struct {
	Description string   `yaml:"description"`
	Amount      string   `yaml:"amount"`
	AssignedTo  []string `yaml:"assigned_to"`
}

// ReadLedgerFile parses a ledger file.
func ReadLedgerFile(path string) (*LedgerFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	var f LedgerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &f, nil
}

// Ledger builds an in-memory ledger from the file. Transactions are
// recorded before expenses, each in file order.
func (f *LedgerFile) Ledger(cfg calculator.Config) (*ledger.Ledger, error) {
	if strings.TrimSpace(f.Tolerance) != "" {
		tol, err := parseAmount(f.Tolerance)
		if err != nil {
			return nil, fmt.Errorf("tolerance: %w", err)
		}
		cfg.Tolerance = tol
	}

	l := ledger.New(calculator.NewEngine(cfg))
	for i, t := range f.Transactions {
		amount, err := parseAmount(t.Amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		if err := l.Add(t.Payer, t.Payee, amount); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
	}

	for i, e := range f.Expenses {
		expense, err := e.expense()
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", i, err)
		}
		if _, err := l.AddExpense(expense); err != nil {
			return nil, fmt.Errorf("expense %d: %w", i, err)
		}
	}
	return l, nil
}

func (e ExpenseEntry) expense() (calculator.Expense, error) {
	total, err := parseAmount(e.Total)
	if err != nil {
		return calculator.Expense{}, fmt.Errorf("total: %w", err)
	}
	subtotal := total
	if strings.TrimSpace(e.Subtotal) != "" {
		if subtotal, err = parseAmount(e.Subtotal); err != nil {
			return calculator.Expense{}, fmt.Errorf("subtotal: %w", err)
		}
	}

	items := make([]calculator.Item, 0, len(e.Items))
	for i, it := range e.Items {
		amount, err := parseAmount(it.Amount)
		if err != nil {
			return calculator.Expense{}, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, calculator.Item{
			Description: it.Description,
			Amount:      amount,
			AssignedTo:  it.AssignedTo,
		})
	}

	return calculator.Expense{
		Payer:        e.Payer,
		Total:        total,
		Subtotal:     subtotal,
		Items:        items,
		Participants: e.Participants,
	}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}
