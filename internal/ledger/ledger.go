// Package ledger provides an in-memory settlement session: an append-only
// list of transactions plus the engine used to settle it.
package ledger

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/calculator"
)

// Ledger is a settlement session. Appends and resets are serialized against
// reads; settlement always runs on a snapshot of the transactions.
type Ledger struct {
	engine *calculator.Engine

	mu   sync.RWMutex
	txns []calculator.Transaction
}

// New creates an empty ledger settled by engine. A nil engine selects the
// default configuration.
func New(engine *calculator.Engine) *Ledger {
	if engine == nil {
		engine = calculator.NewDefaultEngine()
	}
	return &Ledger{engine: engine}
}

// Add validates and appends one transaction. Invalid input never enters
// the ledger.
func (l *Ledger) Add(payer, payee string, amount decimal.Decimal) error {
	t, err := calculator.NewTransaction(payer, payee, amount)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.txns = append(l.txns, t)
	return nil
}

// AddExpense splits an expense and appends the resulting transactions
// atomically. It returns what was appended.
func (l *Ledger) AddExpense(e calculator.Expense) ([]calculator.Transaction, error) {
	txns, err := calculator.SplitExpense(e)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.txns = append(l.txns, txns...)
	return txns, nil
}

// Transactions returns a copy of the ledger in recording order.
func (l *Ledger) Transactions() []calculator.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]calculator.Transaction, len(l.txns))
	copy(out, l.txns)
	return out
}

// Len returns the number of recorded transactions.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.txns)
}

// Balances aggregates the current ledger.
func (l *Ledger) Balances() (*calculator.Balances, error) {
	return l.engine.Aggregate(l.Transactions())
}

// Settle computes balances and the settlement plan for the current ledger.
// A plan that would leave anyone beyond tolerance is returned as an
// *calculator.InvariantViolation instead.
func (l *Ledger) Settle() (*calculator.Balances, calculator.Plan, error) {
	balances, plan, err := l.engine.Compute(l.Transactions())
	if err != nil {
		return balances, nil, err
	}
	if err := l.engine.Verify(balances, plan); err != nil {
		return balances, nil, err
	}
	return balances, plan, nil
}

// Reset clears every recorded transaction.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.txns = nil
}
