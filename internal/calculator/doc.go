// Package calculator implements the debt settlement engine.
//
// The engine runs in two steps. Aggregate folds an ordered ledger of
// transactions into net balances per participant, and Settle reduces those
// balances to a short list of transfers using greedy extremal pairing: the
// largest debtor always pays the largest creditor as much as either side
// allows. The result has at most n-1 transfers for n participants with a
// nonzero balance. It is not guaranteed to be the global minimum, which is
// NP-hard to find in general.
//
// Amounts are fixed-point decimals. A configurable tolerance still guards
// every zero test so that balances supplied from elsewhere never produce
// dust transfers.
//
// Everything here is pure and deterministic. Callers that share a ledger
// between goroutines serialize access themselves (see package ledger).
package calculator
