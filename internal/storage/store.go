// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is wrapped by every lookup that finds nothing.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	LedgerStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}

// LedgerStore persists ledgers and their append-only transaction lists.
type LedgerStore interface {
	// CreateLedger persists a new ledger.
	// ID, CreatedAt and an empty Name are filled in by the store.
	CreateLedger(ctx context.Context, ledger *models.Ledger) error

	// GetLedger retrieves a ledger by its ID.
	GetLedger(ctx context.Context, ledgerID string) (*models.Ledger, error)

	// ListLedgersByOwner returns the owner's ledgers, newest first.
	ListLedgersByOwner(ctx context.Context, ownerID string) ([]*models.Ledger, error)

	// DeleteLedger removes a ledger together with its transactions.
	DeleteLedger(ctx context.Context, ledgerID string) error

	// AppendTransactions appends to the ledger in one atomic step, assigning
	// IDs, sequence numbers and timestamps.
	AppendTransactions(ctx context.Context, ledgerID string, txns []*models.Transaction) error

	// ListTransactions returns the ledger's transactions in recording order.
	ListTransactions(ctx context.Context, ledgerID string) ([]*models.Transaction, error)

	// CountTransactions returns how many transactions the ledger holds.
	CountTransactions(ctx context.Context, ledgerID string) (int, error)

	// ResetLedger deletes every transaction of the ledger and returns how
	// many were removed. The ledger itself is kept.
	ResetLedger(ctx context.Context, ledgerID string) (int64, error)
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
