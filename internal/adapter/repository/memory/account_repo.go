package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
	"github.com/Matthew-Troost/double-entry-ledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create inserts a new account. Duplicate ids are rejected.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[account.ID]; ok {
		return fmt.Errorf("%w: an account with id %q already exists", domain.ErrAccountExists, account.ID)
	}

	stored := *account
	r.store.accounts[account.ID] = &stored

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.get(id)
}

// GetByIDTx retrieves an account inside a store transaction.
func (r *AccountRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	r.store.txOf(tx)

	return r.get(id)
}

// Missing returns the subset of ids with no stored account.
func (r *AccountRepository) Missing(ctx context.Context, tx usecase.Transaction, ids []string) ([]string, error) {
	r.store.txOf(tx)

	var missing []string
	for _, id := range ids {
		if _, ok := r.store.accounts[id]; !ok {
			missing = append(missing, id)
		}
	}

	return missing, nil
}

// UpdateBalance overwrites the stored balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	t := r.store.txOf(tx)

	account, ok := r.store.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	prevBalance, prevUpdatedAt := account.Balance, account.UpdatedAt
	t.undo = append(t.undo, func() {
		account.Balance = prevBalance
		account.UpdatedAt = prevUpdatedAt
	})

	account.Balance = balance
	account.UpdatedAt = updatedAt

	return nil
}

// get returns a copy so callers cannot mutate stored state. Callers hold at
// least a read lock.
func (r *AccountRepository) get(id string) (*domain.Account, error) {
	account, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	copied := *account

	return &copied, nil
}
