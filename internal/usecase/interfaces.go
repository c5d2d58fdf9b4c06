package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDTx(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	// Missing returns the subset of ids that do not resolve to a stored
	// account, locked for the duration of the transaction.
	Missing(ctx context.Context, tx Transaction, ids []string) ([]string, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	Exists(ctx context.Context, tx Transaction, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
}

// EntryRepository defines data access for entries. Entries are only ever
// inserted; there is no update or delete.
type EntryRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, entries []*domain.Entry) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error)
	CountByAccount(ctx context.Context, accountID string) (int64, error)
	ListByAccountTx(ctx context.Context, tx Transaction, accountID string) ([]*domain.Entry, error)
	ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error)
}

// Transaction represents a store transaction. Writes made through it become
// visible to readers only on Commit.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles store transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore caches responses keyed by client-supplied idempotency key.
type IdempotencyStore interface {
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
