package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PersonSplit represents the calculated share of an expense for one person
type PersonSplit struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Item represents a single line item of an expense
type Item struct {
	Description string
	Amount      decimal.Decimal
	AssignedTo  []string
}

// Expense is a bill one person paid on behalf of a group.
type Expense struct {
	Payer        string
	Total        decimal.Decimal
	Subtotal     decimal.Decimal
	Items        []Item
	Participants []string
}

// CalculateSplit computes how much each person owes including proportional tax.
// Based on the algorithm: person_total = person_subtotal × (1 + (total_tax / bill_subtotal))
func CalculateSplit(items []Item, billTotal, billSubtotal decimal.Decimal, participants []string) (map[string]*PersonSplit, error) {
	if billSubtotal.IsZero() {
		return nil, fmt.Errorf("subtotal cannot be zero")
	}

	// Participants are keyed by trimmed name; repeats count once.
	splits := make(map[string]*PersonSplit, len(participants))
	for _, p := range participants {
		name := strings.TrimSpace(p)
		if name == "" || splits[name] != nil {
			continue
		}
		splits[name] = &PersonSplit{
			Subtotal: decimal.Zero,
			Tax:      decimal.Zero,
			Total:    decimal.Zero,
		}
	}
	if len(splits) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	tax := billTotal.Sub(billSubtotal)

	// If no items, split total equally among all participants
	if len(items) == 0 {
		n := decimal.NewFromInt(int64(len(splits)))
		for _, split := range splits {
			split.Subtotal = billSubtotal.Div(n)
			split.Tax = tax.Div(n)
			split.Total = billTotal.Div(n)
		}
		return splits, nil
	}

	for _, item := range items {
		if len(item.AssignedTo) == 0 {
			continue
		}

		perPerson := item.Amount.Div(decimal.NewFromInt(int64(len(item.AssignedTo))))
		for _, person := range item.AssignedTo {
			if split, exists := splits[strings.TrimSpace(person)]; exists {
				split.Subtotal = split.Subtotal.Add(perPerson)
			}
		}
	}

	rate := tax.Div(billSubtotal)
	for _, split := range splits {
		split.Tax = split.Subtotal.Mul(rate)
		split.Total = split.Subtotal.Add(split.Tax)
	}

	return splits, nil
}

// SplitExpense turns an expense into ledger transactions. Each participant
// other than the payer owes the payer their share, recorded as a transaction
// from the participant to the payer so that the payer ends up a net
// creditor. Transactions follow the order of e.Participants and shares of
// zero are skipped.
func SplitExpense(e Expense) ([]Transaction, error) {
	payer := strings.TrimSpace(e.Payer)
	if payer == "" {
		return nil, &ValidationError{Index: -1, Field: "payer", Reason: "is required"}
	}
	if !e.Total.IsPositive() {
		return nil, &ValidationError{Index: -1, Field: "amount", Reason: "must be positive"}
	}
	for _, item := range e.Items {
		if !item.Amount.IsPositive() {
			return nil, &ValidationError{Index: -1, Field: "item amount", Reason: "must be positive"}
		}
	}

	splits, err := CalculateSplit(e.Items, e.Total, e.Subtotal, e.Participants)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate split: %w", err)
	}

	txns := make([]Transaction, 0, len(e.Participants))
	seen := make(map[string]bool, len(e.Participants))
	for _, p := range e.Participants {
		name := strings.TrimSpace(p)
		if name == payer || seen[name] {
			continue
		}
		seen[name] = true

		split, ok := splits[name]
		if !ok {
			continue
		}
		share := split.Total
		if !share.IsPositive() {
			continue
		}
		t, err := NewTransaction(name, payer, share)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, nil
}
