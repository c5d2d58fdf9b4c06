package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
)

// EntryUseCase is the entry ledger: it owns the append-only entry log and
// computes per-account directional totals from it.
type EntryUseCase struct {
	entryRepo EntryRepository
	idGen     IDGenerator
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository, idGen IDGenerator) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
		idGen:     idGen,
	}
}

// CreateEntryInput is one proposed entry of a transaction.
type CreateEntryInput struct {
	AccountID string
	Direction domain.Direction
	Amount    decimal.Decimal
}

// CreateEntries persists one entry per input, tagged with transactionID and
// a generated ID each. It performs no validation; the transaction engine
// has already validated the batch.
func (uc *EntryUseCase) CreateEntries(ctx context.Context, tx Transaction, transactionID string, inputs []CreateEntryInput) ([]*domain.Entry, error) {
	now := time.Now().UTC()

	entries := make([]*domain.Entry, len(inputs))
	for i, input := range inputs {
		entries[i] = &domain.Entry{
			ID:            uc.idGen.Generate(),
			TransactionID: transactionID,
			AccountID:     input.AccountID,
			Direction:     input.Direction,
			Amount:        input.Amount,
			CreatedAt:     now,
		}
	}

	if err := uc.entryRepo.CreateBatch(ctx, tx, entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// DirectionalTotals scans every entry referencing the account and sums the
// amounts per direction.
func (uc *EntryUseCase) DirectionalTotals(ctx context.Context, tx Transaction, accountID string) (domain.DirectionTotals, error) {
	entries, err := uc.entryRepo.ListByAccountTx(ctx, tx, accountID)
	if err != nil {
		return domain.DirectionTotals{}, err
	}

	return domain.SumByDirection(entries), nil
}

// ListEntriesByAccountInput represents input for listing entries.
type ListEntriesByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListEntriesByAccount lists a page of an account's entries in insertion
// order, along with the account's total entry count.
func (uc *EntryUseCase) ListEntriesByAccount(ctx context.Context, input ListEntriesByAccountInput) ([]*domain.Entry, int64, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	entries, err := uc.entryRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.entryRepo.CountByAccount(ctx, input.AccountID)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// ListEntriesByTransaction lists the entries of a committed transaction.
func (uc *EntryUseCase) ListEntriesByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	return uc.entryRepo.ListByTransaction(ctx, transactionID)
}
