// Package memory implements the store collaborator as in-process maps: one
// record set per entity keyed by id, plus a secondary index from account id
// to its entries. It is the default store and the reference implementation
// of the repository contracts.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
	"github.com/Matthew-Troost/double-entry-ledger/internal/usecase"
)

var errTxFinished = errors.New("memory: transaction already finished")

// Store holds the three record sets behind a single read-write lock.
type Store struct {
	mu sync.RWMutex

	accounts     map[string]*domain.Account
	transactions map[string]*domain.Transaction
	entries      map[string]*domain.Entry

	// entryOrder preserves global insertion order of the entry log;
	// accountIndex maps an account id to its entry ids in insertion order.
	entryOrder   []string
	accountIndex map[string][]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]*domain.Account),
		transactions: make(map[string]*domain.Transaction),
		entries:      make(map[string]*domain.Entry),
		accountIndex: make(map[string][]string),
	}
}

// Begin starts a store transaction by taking the store-wide write lock. The
// lock is held until Commit or Rollback, so concurrent writers serialize
// against each other and readers never observe a partially applied
// transaction.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	s.mu.Lock()
	return &Tx{store: s}, nil
}

// Tx is a store transaction. Writes are applied to the maps immediately and
// recorded in an undo journal; Rollback replays the journal in reverse.
type Tx struct {
	store    *Store
	undo     []func()
	finished bool
}

// Commit publishes the transaction's writes by releasing the write lock.
func (t *Tx) Commit(ctx context.Context) error {
	if t.finished {
		return errTxFinished
	}

	t.finished = true
	t.undo = nil
	t.store.mu.Unlock()

	return nil
}

// Rollback undoes the transaction's writes and releases the write lock.
// Rolling back a finished transaction is a no-op, so it is safe to defer.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.finished {
		return nil
	}

	t.finished = true
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
	t.store.mu.Unlock()

	return nil
}

// txOf asserts that tx belongs to this store. Repository methods taking a
// transaction run under the lock the transaction holds.
func (s *Store) txOf(tx usecase.Transaction) *Tx {
	t, ok := tx.(*Tx)
	if !ok || t.store != s {
		panic("memory: transaction does not belong to this store")
	}

	return t
}
