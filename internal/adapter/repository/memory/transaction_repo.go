package memory

import (
	"context"
	"fmt"

	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
	"github.com/Matthew-Troost/double-entry-ledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Create inserts a new transaction record. Duplicate ids are rejected.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	t := r.store.txOf(tx)

	if _, ok := r.store.transactions[txn.ID]; ok {
		return fmt.Errorf("%w: a transaction with id %q already exists", domain.ErrTransactionExists, txn.ID)
	}

	stored := *txn
	r.store.transactions[txn.ID] = &stored

	id := txn.ID
	t.undo = append(t.undo, func() {
		delete(r.store.transactions, id)
	})

	return nil
}

// Exists reports whether a transaction with the given id is stored.
func (r *TransactionRepository) Exists(ctx context.Context, tx usecase.Transaction, id string) (bool, error) {
	r.store.txOf(tx)

	_, ok := r.store.transactions[id]

	return ok, nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	txn, ok := r.store.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}

	copied := *txn

	return &copied, nil
}
