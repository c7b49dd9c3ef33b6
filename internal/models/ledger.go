package models

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/calculator"
)

// Ledger is a settlement session: an append-only list of transactions
// from which balances and a settlement plan are derived.
type Ledger struct {
	// ID is the unique identifier for the ledger (UUID format).
	ID string `db:"id"`

	// Name is the display name (e.g., "Ski trip", "Flat 3B").
	Name string `db:"name"`

	// OwnerID is the user who created the ledger. Only the owner can read
	// or change it.
	OwnerID string `db:"owner_id"`

	// CreatedAt is the Unix timestamp when the ledger was created.
	CreatedAt int64 `db:"created_at"`
}

// Transaction is one recorded payment within a ledger.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `db:"id"`

	// LedgerID is the ledger this transaction belongs to.
	LedgerID string `db:"ledger_id"`

	// Seq is the position of the transaction in its ledger, starting at 1.
	Seq int64 `db:"seq"`

	// Payer gave Amount to Payee.
	Payer  string          `db:"payer"`
	Payee  string          `db:"payee"`
	Amount decimal.Decimal `db:"amount"`

	// Note is an optional free-text description.
	Note string `db:"note"`

	// CreatedAt is the Unix timestamp when the transaction was recorded.
	CreatedAt int64 `db:"created_at"`
}

// Calculator converts the record to the engine's representation.
func (t Transaction) Calculator() calculator.Transaction {
	return calculator.Transaction{Payer: t.Payer, Payee: t.Payee, Amount: t.Amount}
}

// CalculatorTransactions converts records in order.
func CalculatorTransactions(txns []*Transaction) []calculator.Transaction {
	out := make([]calculator.Transaction, len(txns))
	for i, t := range txns {
		out[i] = t.Calculator()
	}
	return out
}
