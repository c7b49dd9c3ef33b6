package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrValidation is the sentinel behind every *ValidationError.
	ErrValidation = errors.New("invalid transaction")
	// ErrInvariantViolation is the sentinel behind every *InvariantViolation.
	ErrInvariantViolation = errors.New("balance invariant violated")
	// ErrTooManyParticipants is returned when a ledger exceeds Config.MaxParticipants.
	ErrTooManyParticipants = errors.New("too many participants")
)

// Transaction records that Payer gave Amount to Payee.
// The payer's net balance goes down by Amount and the payee's goes up.
type Transaction struct {
	Payer  string
	Payee  string
	Amount decimal.Decimal
}

// Transfer is one payment of a settlement plan.
type Transfer struct {
	Payer  string
	Amount decimal.Decimal
	Payee  string
}

// Plan is the ordered list of transfers that zeroes every balance.
type Plan []Transfer

// Total returns the sum of all transfer amounts.
func (p Plan) Total() decimal.Decimal {
	total := decimal.Zero
	for _, t := range p {
		total = total.Add(t.Amount)
	}
	return total
}

// ValidationError describes a malformed transaction.
type ValidationError struct {
	// Index is the position of the offending entry in the ledger, or -1 for a
	// single transaction validated on its own.
	Index int
	// Field names the offending field, such as "payer" or "amount".
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid transaction: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid transaction #%d: %s %s", e.Index, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// InvariantViolation reports balances that do not net out to zero.
// It points at a bug in whatever produced the balances, not at user input.
type InvariantViolation struct {
	Sum       decimal.Decimal
	Tolerance decimal.Decimal
	// Participant is set when a single residual, rather than the sum, is off.
	Participant string
}

func (e *InvariantViolation) Error() string {
	if e.Participant != "" {
		return fmt.Sprintf("balance invariant violated: %s left with %s (tolerance %s)",
			e.Participant, e.Sum.String(), e.Tolerance.String())
	}
	return fmt.Sprintf("balance invariant violated: balances sum to %s (tolerance %s)",
		e.Sum.String(), e.Tolerance.String())
}

func (e *InvariantViolation) Unwrap() error { return ErrInvariantViolation }

// NewTransaction trims the identifiers and validates the result.
func NewTransaction(payer, payee string, amount decimal.Decimal) (Transaction, error) {
	t := Transaction{
		Payer:  strings.TrimSpace(payer),
		Payee:  strings.TrimSpace(payee),
		Amount: amount,
	}
	if err := validate(t, -1); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// Validate checks the transaction invariants: both identifiers present,
// payer distinct from payee and a strictly positive amount.
func (t Transaction) Validate() error {
	return validate(t, -1)
}

func validate(t Transaction, index int) error {
	switch {
	case strings.TrimSpace(t.Payer) == "":
		return &ValidationError{Index: index, Field: "payer", Reason: "is required"}
	case strings.TrimSpace(t.Payee) == "":
		return &ValidationError{Index: index, Field: "payee", Reason: "is required"}
	case strings.TrimSpace(t.Payer) == strings.TrimSpace(t.Payee):
		return &ValidationError{Index: index, Field: "payee", Reason: "must differ from payer"}
	case !t.Amount.IsPositive():
		return &ValidationError{Index: index, Field: "amount", Reason: "must be positive"}
	}
	return nil
}
