package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
	"github.com/Matthew-Troost/double-entry-ledger/internal/infrastructure/metrics"
)

// LedgerUseCase is the transaction engine. It validates a proposed
// transaction against the structural invariants and, only if every check
// passes, commits the transaction, its entries, and the balance
// recalculations as one store transaction.
type LedgerUseCase struct {
	txManager       TransactionManager
	accounts        *AccountUseCase
	entries         *EntryUseCase
	transactionRepo TransactionRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accounts *AccountUseCase,
	entries *EntryUseCase,
	transactionRepo TransactionRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:       txManager,
		accounts:        accounts,
		entries:         entries,
		transactionRepo: transactionRepo,
		idGen:           idGen,
		metrics:         m,
	}
}

// CreateTransactionInput represents a proposed transaction.
type CreateTransactionInput struct {
	ID      string
	Name    string
	Entries []CreateEntryInput
}

// TransactionResult pairs a transaction with its entries.
type TransactionResult struct {
	Transaction *domain.Transaction
	Entries     []*domain.Entry
}

// CreateTransaction validates input and commits it atomically. A failed
// validation never persists the transaction or any entry and never mutates
// a balance: all writes are deferred until every check has passed, and the
// referential checks run inside the same store transaction as the writes so
// they cannot go stale before commit.
func (uc *LedgerUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*TransactionResult, error) {
	result, err := uc.createTransaction(ctx, input)
	if err != nil {
		uc.countRejection(err)
		return nil, err
	}

	uc.metrics.TransactionsCreated.Inc()
	uc.metrics.EntriesCreated.Add(float64(len(result.Entries)))

	return result, nil
}

func (uc *LedgerUseCase) createTransaction(ctx context.Context, input CreateTransactionInput) (*TransactionResult, error) {
	// Checks 1-4 are pure; they run before any store access.
	if err := validateEntries(input.Entries); err != nil {
		return nil, err
	}

	accountIDs := distinctAccountIDs(input.Entries)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 5. every referenced account must exist
	missing, err := uc.accounts.MissingAccounts(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: one or more account ids cannot be found", domain.ErrAccountNotFound)
	}

	// 6. a supplied transaction id must be unused
	if input.ID != "" {
		exists, err := uc.transactionRepo.Exists(ctx, tx, input.ID)
		if err != nil {
			return nil, err
		}

		if exists {
			return nil, fmt.Errorf("%w: a transaction with id %q already exists", domain.ErrTransactionExists, input.ID)
		}
	}

	id := input.ID
	if id == "" {
		id = uc.idGen.Generate()
	}

	txn := &domain.Transaction{
		ID:        id,
		Name:      input.Name,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	entries, err := uc.entries.CreateEntries(ctx, tx, txn.ID, input.Entries)
	if err != nil {
		return nil, err
	}

	// Each touched account is recalculated exactly once, in first-seen
	// entry order.
	for _, accountID := range accountIDs {
		if err := uc.accounts.RecalculateBalance(ctx, tx, accountID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &TransactionResult{Transaction: txn, Entries: entries}, nil
}

// GetTransaction retrieves a committed transaction with its entries.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, id string) (*TransactionResult, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entries.ListEntriesByTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TransactionResult{Transaction: txn, Entries: entries}, nil
}

// validateEntries applies the structural checks in their fixed order and
// returns the first failure.
func validateEntries(entries []CreateEntryInput) error {
	// 1. all amounts strictly positive
	for _, entry := range entries {
		if entry.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: entry amounts must be positive", domain.ErrInvalidEntries)
		}
	}

	// 2. debits and credits must balance, compared exactly
	var debitSum, creditSum decimal.Decimal
	for _, entry := range entries {
		switch entry.Direction {
		case domain.DirectionDebit:
			debitSum = debitSum.Add(entry.Amount)
		case domain.DirectionCredit:
			creditSum = creditSum.Add(entry.Amount)
		}
	}

	if !debitSum.Equal(creditSum) {
		return fmt.Errorf("%w: the sum of debit amounts must equal the sum of credit amounts", domain.ErrInvalidEntries)
	}

	// 3. at most one entry per account and direction
	seen := make(map[string]map[domain.Direction]int)
	for _, entry := range entries {
		if seen[entry.AccountID] == nil {
			seen[entry.AccountID] = make(map[domain.Direction]int)
		}

		seen[entry.AccountID][entry.Direction]++
		if seen[entry.AccountID][entry.Direction] > 1 {
			return fmt.Errorf("%w: only one debit and one credit entry per account is allowed", domain.ErrInvalidEntries)
		}
	}

	// 4. at least two distinct accounts
	if len(distinctAccountIDs(entries)) < 2 {
		return fmt.Errorf("%w: a transaction must include entries for at least two different account ids", domain.ErrInvalidEntries)
	}

	return nil
}

// distinctAccountIDs deduplicates account ids, preserving first-seen order.
func distinctAccountIDs(entries []CreateEntryInput) []string {
	seen := make(map[string]bool)

	var ids []string
	for _, entry := range entries {
		if !seen[entry.AccountID] {
			seen[entry.AccountID] = true
			ids = append(ids, entry.AccountID)
		}
	}

	return ids
}

func (uc *LedgerUseCase) countRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEntries):
		uc.metrics.TransactionsRejected.WithLabelValues("invalid_entries").Inc()
	case errors.Is(err, domain.ErrAccountNotFound):
		uc.metrics.TransactionsRejected.WithLabelValues("account_not_found").Inc()
	case errors.Is(err, domain.ErrTransactionExists):
		uc.metrics.TransactionsRejected.WithLabelValues("duplicate_id").Inc()
	default:
		uc.metrics.TransactionsRejected.WithLabelValues("store_error").Inc()
	}
}
