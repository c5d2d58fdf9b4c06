package memory

import (
	"context"

	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
	"github.com/Matthew-Troost/double-entry-ledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	store *Store
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(store *Store) *EntryRepository {
	return &EntryRepository{store: store}
}

// CreateBatch appends entries to the log and indexes them by account.
func (r *EntryRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, entries []*domain.Entry) error {
	t := r.store.txOf(tx)

	for _, entry := range entries {
		stored := *entry
		r.store.entries[entry.ID] = &stored
		r.store.entryOrder = append(r.store.entryOrder, entry.ID)
		r.store.accountIndex[entry.AccountID] = append(r.store.accountIndex[entry.AccountID], entry.ID)

		id, accountID := entry.ID, entry.AccountID
		t.undo = append(t.undo, func() {
			delete(r.store.entries, id)
			r.store.entryOrder = r.store.entryOrder[:len(r.store.entryOrder)-1]

			index := r.store.accountIndex[accountID]
			r.store.accountIndex[accountID] = index[:len(index)-1]
		})
	}

	return nil
}

// ListByAccount lists an account's entries in insertion order.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := r.store.accountIndex[accountID]
	if offset >= len(ids) {
		return nil, nil
	}

	ids = ids[offset:]
	if limit < len(ids) {
		ids = ids[:limit]
	}

	return r.collect(ids), nil
}

// CountByAccount returns the total number of entries referencing the
// account, independent of paging.
func (r *EntryRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return int64(len(r.store.accountIndex[accountID])), nil
}

// ListByAccountTx lists all of an account's entries inside a store
// transaction. The balance recalculation scans the full history.
func (r *EntryRepository) ListByAccountTx(ctx context.Context, tx usecase.Transaction, accountID string) ([]*domain.Entry, error) {
	r.store.txOf(tx)

	return r.collect(r.store.accountIndex[accountID]), nil
}

// ListByTransaction lists a transaction's entries in insertion order.
func (r *EntryRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var entries []*domain.Entry
	for _, id := range r.store.entryOrder {
		if entry := r.store.entries[id]; entry.TransactionID == transactionID {
			copied := *entry
			entries = append(entries, &copied)
		}
	}

	return entries, nil
}

func (r *EntryRepository) collect(ids []string) []*domain.Entry {
	entries := make([]*domain.Entry, 0, len(ids))
	for _, id := range ids {
		copied := *r.store.entries[id]
		entries = append(entries, &copied)
	}

	return entries
}
