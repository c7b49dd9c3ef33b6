// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

func init() {
	// sqlx does not know the modernc driver name.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// SQLiteStore implements storage.Store using SQLite.
//
// The pool holds a single connection, so every statement and transaction
// against the file is serialized. That makes the store the single writer
// of each ledger: an append never interleaves with a read of the same ledger.
type SQLiteStore struct {
	db *sqlx.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateLedger persists a new ledger to the database.
func (s *SQLiteStore) CreateLedger(ctx context.Context, ledger *models.Ledger) error {
	if ledger.ID == "" {
		ledger.ID = uuid.New().String()
	}
	if ledger.CreatedAt == 0 {
		ledger.CreatedAt = time.Now().Unix()
	}
	if ledger.Name == "" {
		ledger.Name = generateName(time.Unix(ledger.CreatedAt, 0))
	}

	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO ledgers (id, name, owner_id, created_at)
		 VALUES (:id, :name, :owner_id, :created_at)`,
		ledger,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger: %w", err)
	}
	return nil
}

// GetLedger retrieves a ledger by ID.
func (s *SQLiteStore) GetLedger(ctx context.Context, ledgerID string) (*models.Ledger, error) {
	ledger := &models.Ledger{}
	err := s.db.GetContext(ctx, ledger,
		"SELECT id, name, owner_id, created_at FROM ledgers WHERE id = ?",
		ledgerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ledger %s: %w", ledgerID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	return ledger, nil
}

// ListLedgersByOwner retrieves the owner's ledgers, newest first.
func (s *SQLiteStore) ListLedgersByOwner(ctx context.Context, ownerID string) ([]*models.Ledger, error) {
	var ledgers []*models.Ledger
	err := s.db.SelectContext(ctx, &ledgers,
		`SELECT id, name, owner_id, created_at FROM ledgers
		 WHERE owner_id = ? ORDER BY created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	return ledgers, nil
}

// DeleteLedger removes a ledger by ID. Its transactions go with it.
func (s *SQLiteStore) DeleteLedger(ctx context.Context, ledgerID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM ledgers WHERE id = ?", ledgerID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("ledger %s: %w", ledgerID, storage.ErrNotFound)
	}
	return nil
}

// generateName creates a default ledger name from its creation time.
func generateName(createdAt time.Time) string {
	return fmt.Sprintf("Ledger - %s", createdAt.Format("Jan 2, 2006"))
}
