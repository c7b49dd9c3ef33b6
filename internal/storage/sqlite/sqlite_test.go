package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Ledgers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateLedger generates ID and name", func(t *testing.T) {
		ledger := &models.Ledger{OwnerID: "user-1"}
		require.NoError(t, store.CreateLedger(ctx, ledger))

		assert.NotEmpty(t, ledger.ID)
		assert.NotZero(t, ledger.CreatedAt)
		assert.True(t, strings.HasPrefix(ledger.Name, "Ledger - "), ledger.Name)
	})

	t.Run("GetLedger retrieves stored ledger", func(t *testing.T) {
		original := &models.Ledger{Name: "Ski trip", OwnerID: "user-1"}
		require.NoError(t, store.CreateLedger(ctx, original))

		got, err := store.GetLedger(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, original, got)
	})

	t.Run("GetLedger returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetLedger(ctx, "nonexistent-id")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListLedgersByOwner filters by owner", func(t *testing.T) {
		require.NoError(t, store.CreateLedger(ctx, &models.Ledger{Name: "Other", OwnerID: "user-2"}))

		ledgers, err := store.ListLedgersByOwner(ctx, "user-2")
		require.NoError(t, err)
		require.Len(t, ledgers, 1)
		assert.Equal(t, "Other", ledgers[0].Name)
	})

	t.Run("DeleteLedger", func(t *testing.T) {
		ledger := &models.Ledger{Name: "Doomed", OwnerID: "user-1"}
		require.NoError(t, store.CreateLedger(ctx, ledger))
		require.NoError(t, store.AppendTransactions(ctx, ledger.ID, []*models.Transaction{
			{Payer: "A", Payee: "B", Amount: decimal.NewFromInt(1)},
		}))

		require.NoError(t, store.DeleteLedger(ctx, ledger.ID))
		_, err := store.GetLedger(ctx, ledger.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		n, err := store.CountTransactions(ctx, ledger.ID)
		require.NoError(t, err)
		assert.Zero(t, n, "transactions should cascade")

		assert.ErrorIs(t, store.DeleteLedger(ctx, ledger.ID), storage.ErrNotFound)
	})
}

func TestSQLiteStore_Transactions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ledger := &models.Ledger{Name: "Flat", OwnerID: "user-1"}
	require.NoError(t, store.CreateLedger(ctx, ledger))

	t.Run("AppendTransactions assigns sequence in order", func(t *testing.T) {
		require.NoError(t, store.AppendTransactions(ctx, ledger.ID, []*models.Transaction{
			{Payer: "A", Payee: "B", Amount: decimal.RequireFromString("10.10"), Note: "groceries"},
			{Payer: "B", Payee: "C", Amount: decimal.RequireFromString("0.30")},
		}))
		require.NoError(t, store.AppendTransactions(ctx, ledger.ID, []*models.Transaction{
			{Payer: "C", Payee: "A", Amount: decimal.RequireFromString("3.333333333333")},
		}))

		txns, err := store.ListTransactions(ctx, ledger.ID)
		require.NoError(t, err)
		require.Len(t, txns, 3)

		for i, tx := range txns {
			assert.Equal(t, int64(i+1), tx.Seq)
			assert.Equal(t, ledger.ID, tx.LedgerID)
			assert.NotEmpty(t, tx.ID)
		}
		assert.Equal(t, "groceries", txns[0].Note)
		assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("10.1")))
		assert.Equal(t, "3.333333333333", txns[2].Amount.String(), "amounts round-trip exactly")
	})

	t.Run("AppendTransactions to unknown ledger", func(t *testing.T) {
		err := store.AppendTransactions(ctx, "missing", []*models.Transaction{
			{Payer: "A", Payee: "B", Amount: decimal.NewFromInt(1)},
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ResetLedger clears transactions and keeps the ledger", func(t *testing.T) {
		removed, err := store.ResetLedger(ctx, ledger.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), removed)

		n, err := store.CountTransactions(ctx, ledger.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		_, err = store.GetLedger(ctx, ledger.ID)
		require.NoError(t, err)

		require.NoError(t, store.AppendTransactions(ctx, ledger.ID, []*models.Transaction{
			{Payer: "A", Payee: "B", Amount: decimal.NewFromInt(1)},
		}))
		txns, err := store.ListTransactions(ctx, ledger.ID)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, int64(1), txns[0].Seq)
	})
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	require.NoError(t, store.CreateUser(ctx, user))

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.DisplayName)

	_, err = store.GetUserByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.Error(t, store.CreateUser(ctx, models.NewUser("alice@example.com", "Alice 2", "hash")),
		"email must be unique")
}

func TestGenerateName(t *testing.T) {
	got := generateName(time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "Ledger - Mar 5, 2024", got)
}
