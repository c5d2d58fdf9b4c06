package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
	"github.com/Matthew-Troost/double-entry-ledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// CreateBatch inserts entries in one round trip.
func (r *EntryRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, entries []*domain.Entry) error {
	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(
			`INSERT INTO entries (id, transaction_id, account_id, direction, amount, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			entry.ID,
			entry.TransactionID,
			entry.AccountID,
			string(entry.Direction),
			decimalToNumeric(entry.Amount),
			timeToPgTimestamptz(entry.CreatedAt),
		)
	}

	return tx.(*Tx).PgxTx().SendBatch(ctx, batch).Close()
}

// ListByAccount lists an account's entries in insertion order.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, transaction_id, account_id, direction, amount, created_at
		 FROM entries WHERE account_id = $1
		 ORDER BY created_at, id
		 LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return scanEntries(rows)
}

// CountByAccount returns the total number of entries referencing the
// account, independent of paging.
func (r *EntryRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM entries WHERE account_id = $1`,
		accountID).Scan(&count)

	return count, err
}

// ListByAccountTx lists all of an account's entries inside a transaction.
func (r *EntryRepository) ListByAccountTx(ctx context.Context, tx usecase.Transaction, accountID string) ([]*domain.Entry, error) {
	rows, err := tx.(*Tx).PgxTx().Query(ctx,
		`SELECT id, transaction_id, account_id, direction, amount, created_at
		 FROM entries WHERE account_id = $1
		 ORDER BY created_at, id`,
		accountID)
	if err != nil {
		return nil, err
	}

	return scanEntries(rows)
}

// ListByTransaction lists a transaction's entries in insertion order.
func (r *EntryRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, transaction_id, account_id, direction, amount, created_at
		 FROM entries WHERE transaction_id = $1
		 ORDER BY created_at, id`,
		transactionID)
	if err != nil {
		return nil, err
	}

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		var (
			entry     domain.Entry
			direction string
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(&entry.ID, &entry.TransactionID, &entry.AccountID, &direction, &amount, &createdAt)
		if err != nil {
			return nil, err
		}

		entry.Direction = domain.Direction(direction)
		entry.Amount = numericToDecimal(amount)
		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
