package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
	"github.com/Matthew-Troost/double-entry-ledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a new transaction record. Duplicate ids are rejected.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx,
		`INSERT INTO transactions (id, name, created_at) VALUES ($1, $2, $3)`,
		txn.ID, txn.Name, timeToPgTimestamptz(txn.CreatedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: a transaction with id %q already exists", domain.ErrTransactionExists, txn.ID)
	}

	return err
}

// Exists reports whether a transaction with the given id is stored.
func (r *TransactionRepository) Exists(ctx context.Context, tx usecase.Transaction, id string) (bool, error) {
	var exists bool

	err := tx.(*Tx).PgxTx().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1)`, id).Scan(&exists)

	return exists, err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var (
		txn       domain.Transaction
		createdAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM transactions WHERE id = $1`, id).
		Scan(&txn.ID, &txn.Name, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn.CreatedAt = createdAt.Time

	return &txn, nil
}
