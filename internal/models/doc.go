// Package models defines the persisted domain records of settleup.
//
// # Models
//
//   - Ledger: a settlement session owned by one user
//   - Transaction: one recorded payment in a ledger ("payer gave payee amount")
//   - User: a registered account that owns ledgers
//
// Balances and settlement plans are never stored. They are recomputed from
// a ledger's transactions on demand by package calculator.
//
// Participants are plain name strings scoped to a ledger; they are not
// linked to user accounts.
package models
