package calculator

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MemberBalance is one participant's position after aggregation.
type MemberBalance struct {
	Participant string
	Net         decimal.Decimal // Positive = owed money, Negative = owes money
	Paid        decimal.Decimal // Total amount sent as payer
	Received    decimal.Decimal // Total amount taken as payee
}

// Balances is the net position of every participant, kept in order of
// first appearance so that settlement tie-breaks are reproducible.
// A Balances value is never mutated once built.
type Balances struct {
	members []MemberBalance
	index   map[string]int
}

func newBalances(capacity int) *Balances {
	return &Balances{
		members: make([]MemberBalance, 0, capacity),
		index:   make(map[string]int, capacity),
	}
}

// NewBalances builds a balance snapshot from net positions given in order.
// Repeated participants are merged. It is meant for callers that already
// hold balances, e.g. from another system, and want to settle them.
func NewBalances(entries ...MemberBalance) *Balances {
	b := newBalances(len(entries))
	for _, e := range entries {
		m := b.member(e.Participant)
		m.Net = m.Net.Add(e.Net)
		m.Paid = m.Paid.Add(e.Paid)
		m.Received = m.Received.Add(e.Received)
	}
	return b
}

func (b *Balances) member(participant string) *MemberBalance {
	i, ok := b.index[participant]
	if !ok {
		i = len(b.members)
		b.index[participant] = i
		b.members = append(b.members, MemberBalance{
			Participant: participant,
			Net:         decimal.Zero,
			Paid:        decimal.Zero,
			Received:    decimal.Zero,
		})
	}
	return &b.members[i]
}

// Len returns the number of participants, settled ones included.
func (b *Balances) Len() int {
	if b == nil {
		return 0
	}
	return len(b.members)
}

// Members returns a copy of all positions in first-appearance order.
func (b *Balances) Members() []MemberBalance {
	if b == nil {
		return nil
	}
	out := make([]MemberBalance, len(b.members))
	copy(out, b.members)
	return out
}

// Net returns the participant's net balance, zero if unknown.
func (b *Balances) Net(participant string) decimal.Decimal {
	if b == nil {
		return decimal.Zero
	}
	if i, ok := b.index[participant]; ok {
		return b.members[i].Net
	}
	return decimal.Zero
}

// Sum returns the sum of all net balances. It is zero for any aggregated ledger.
func (b *Balances) Sum() decimal.Decimal {
	sum := decimal.Zero
	if b == nil {
		return sum
	}
	for _, m := range b.members {
		sum = sum.Add(m.Net)
	}
	return sum
}

// Map returns the net balances keyed by participant.
func (b *Balances) Map() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, b.Len())
	if b == nil {
		return out
	}
	for _, m := range b.members {
		out[m.Participant] = m.Net
	}
	return out
}

// Outstanding counts participants whose balance exceeds tolerance in magnitude.
func (b *Balances) Outstanding(tolerance decimal.Decimal) int {
	n := 0
	if b == nil {
		return n
	}
	for _, m := range b.members {
		if m.Net.Abs().GreaterThan(tolerance) {
			n++
		}
	}
	return n
}

// Aggregate folds the ledger into net balances.
//
// Every transaction is validated first; the first malformed entry aborts
// the call with a *ValidationError naming its index. For each transaction
// the payer's balance goes down by the amount and the payee's goes up, so
// the result always sums to zero.
func (e *Engine) Aggregate(txns []Transaction) (*Balances, error) {
	for i, t := range txns {
		if err := validate(t, i); err != nil {
			return nil, err
		}
	}

	b := newBalances(len(txns))
	for _, t := range txns {
		payer := b.member(strings.TrimSpace(t.Payer))
		payer.Net = payer.Net.Sub(t.Amount)
		payer.Paid = payer.Paid.Add(t.Amount)

		payee := b.member(strings.TrimSpace(t.Payee))
		payee.Net = payee.Net.Add(t.Amount)
		payee.Received = payee.Received.Add(t.Amount)
	}

	if err := e.checkSize(b.Len()); err != nil {
		return nil, err
	}
	return b, nil
}
