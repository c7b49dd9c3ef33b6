package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// AppendTransactions appends to a ledger inside one database transaction.
// Sequence numbers continue from the ledger's last entry.
func (s *SQLiteStore) AppendTransactions(ctx context.Context, ledgerID string, txns []*models.Transaction) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.GetContext(ctx, &exists, "SELECT 1 FROM ledgers WHERE id = ?", ledgerID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("ledger %s: %w", ledgerID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check ledger existence: %w", err)
	}

	var last int64
	if err := tx.GetContext(ctx, &last,
		"SELECT COALESCE(MAX(seq), 0) FROM transactions WHERE ledger_id = ?", ledgerID,
	); err != nil {
		return fmt.Errorf("failed to read last sequence: %w", err)
	}

	now := time.Now().Unix()
	for _, t := range txns {
		last++
		t.LedgerID = ledgerID
		t.Seq = last
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if t.CreatedAt == 0 {
			t.CreatedAt = now
		}

		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO transactions (id, ledger_id, seq, payer, payee, amount, note, created_at)
			 VALUES (:id, :ledger_id, :seq, :payer, :payee, :amount, :note, :created_at)`,
			t,
		); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListTransactions retrieves a ledger's transactions in recording order.
func (s *SQLiteStore) ListTransactions(ctx context.Context, ledgerID string) ([]*models.Transaction, error) {
	var txns []*models.Transaction
	err := s.db.SelectContext(ctx, &txns,
		`SELECT id, ledger_id, seq, payer, payee, amount, note, created_at
		 FROM transactions WHERE ledger_id = ? ORDER BY seq`,
		ledgerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// CountTransactions returns the number of transactions in a ledger.
func (s *SQLiteStore) CountTransactions(ctx context.Context, ledgerID string) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM transactions WHERE ledger_id = ?", ledgerID,
	); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return n, nil
}

// ResetLedger removes every transaction of a ledger.
func (s *SQLiteStore) ResetLedger(ctx context.Context, ledgerID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE ledger_id = ?", ledgerID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset ledger: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check deleted rows: %w", err)
	}
	return n, nil
}
