// Package api defines the wire messages of the settleup.v1 services.
//
// Messages are plain structs encoded as JSON. Amounts are decimal strings
// ("12.50") and timestamps are Unix seconds.
package api

import "github.com/shopspring/decimal"

// Ledger is a settlement session.
type Ledger struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	OwnerID          string `json:"ownerId"`
	CreatedAt        int64  `json:"createdAt"`
	TransactionCount int    `json:"transactionCount"`
}

// Transaction is one recorded payment: Payer gave Amount to Payee.
type Transaction struct {
	ID        string          `json:"id"`
	Seq       int64           `json:"seq"`
	Payer     string          `json:"payer"`
	Payee     string          `json:"payee"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	CreatedAt int64           `json:"createdAt"`
}

// Balance is one participant's net position.
// Positive Net = is owed money, negative Net = owes money.
type Balance struct {
	Participant string          `json:"participant"`
	Net         decimal.Decimal `json:"net"`
	Paid        decimal.Decimal `json:"paid"`
	Received    decimal.Decimal `json:"received"`
}

// Transfer is one payment of a settlement plan.
type Transfer struct {
	Payer  string          `json:"payer"`
	Amount decimal.Decimal `json:"amount"`
	Payee  string          `json:"payee"`
}

// Item is a line of an expense shared equally by its participants.
type Item struct {
	Description    string          `json:"description" validate:"max=256"`
	Amount         decimal.Decimal `json:"amount"`
	ParticipantIDs []string        `json:"participantIds" validate:"dive,max=64"`
}

// User is a registered account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

type CreateLedgerRequest struct {
	Name string `json:"name" validate:"max=128"`
}

type CreateLedgerResponse struct {
	Ledger *Ledger `json:"ledger"`
}

type GetLedgerRequest struct {
	LedgerID string `json:"ledgerId" validate:"required"`
}

type GetLedgerResponse struct {
	Ledger *Ledger `json:"ledger"`
}

type ListLedgersRequest struct{}

type ListLedgersResponse struct {
	Ledgers []*Ledger `json:"ledgers"`
}

type DeleteLedgerRequest struct {
	LedgerID string `json:"ledgerId" validate:"required"`
}

type DeleteLedgerResponse struct{}

// AddTransactionRequest records one payment. Payer, payee and amount are
// checked by the settlement engine, so a self-payment or a non-positive
// amount comes back as InvalidArgument.
type AddTransactionRequest struct {
	LedgerID string          `json:"ledgerId" validate:"required"`
	Payer    string          `json:"payer" validate:"max=64"`
	Payee    string          `json:"payee" validate:"max=64"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note" validate:"max=256"`
}

type AddTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

// AddExpenseRequest splits an expense paid by Payer among ParticipantIDs.
// Subtotal defaults to Total; tax and tip are the difference.
type AddExpenseRequest struct {
	LedgerID       string          `json:"ledgerId" validate:"required"`
	Payer          string          `json:"payer" validate:"required,max=64"`
	Total          decimal.Decimal `json:"total"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Items          []*Item         `json:"items" validate:"dive,required"`
	ParticipantIDs []string        `json:"participantIds" validate:"required,min=1,dive,required,max=64"`
	Note           string          `json:"note" validate:"max=256"`
}

type AddExpenseResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type ListTransactionsRequest struct {
	LedgerID string `json:"ledgerId" validate:"required"`
}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type GetBalancesRequest struct {
	LedgerID string `json:"ledgerId" validate:"required"`
}

type GetBalancesResponse struct {
	Balances []*Balance `json:"balances"`
}

type ComputeSettlementRequest struct {
	LedgerID string `json:"ledgerId" validate:"required"`
}

// ComputeSettlementResponse carries the balances the plan was computed from,
// the plan itself and a human-readable "who pays whom" report.
type ComputeSettlementResponse struct {
	Balances  []*Balance  `json:"balances"`
	Transfers []*Transfer `json:"transfers"`
	Report    string      `json:"report"`
}

type ResetLedgerRequest struct {
	LedgerID string `json:"ledgerId" validate:"required"`
}

type ResetLedgerResponse struct {
	Removed int64 `json:"removed"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName" validate:"required,max=64"`
	Password    string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
