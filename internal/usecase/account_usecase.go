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

// AccountUseCase is the account registry: it owns account records and is
// the only component that mutates balances.
type AccountUseCase struct {
	accountRepo AccountRepository
	entries     *EntryUseCase
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, entries *EntryUseCase, idGen IDGenerator, m *metrics.Metrics) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		entries:     entries,
		idGen:       idGen,
		metrics:     m,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	ID        string
	Name      string
	Direction domain.Direction
}

// CreateAccount creates a new account with a zero starting balance. An ID
// is generated when the caller supplies none; a supplied ID must be unused.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if input.ID != "" {
		_, err := uc.accountRepo.GetByID(ctx, input.ID)
		if err == nil {
			return nil, fmt.Errorf("%w: an account with id %q already exists", domain.ErrAccountExists, input.ID)
		}

		if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
	}

	id := input.ID
	if id == "" {
		id = uc.idGen.Generate()
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        id,
		Name:      input.Name,
		Direction: input.Direction,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The repository rejects duplicate IDs as well, which closes the race
	// between the lookup above and the insert.
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.metrics.AccountsCreated.Inc()

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// MissingAccounts returns the subset of ids with no stored account. The
// transaction engine uses it for referential-integrity checks.
func (uc *AccountUseCase) MissingAccounts(ctx context.Context, tx Transaction, ids []string) ([]string, error) {
	return uc.accountRepo.Missing(ctx, tx, ids)
}

// RecalculateBalance recomputes an account's balance from its full entry
// history and overwrites the stored value. This is a full recomputation,
// never an incremental delta, so the balance is always a pure function of
// the entry log.
func (uc *AccountUseCase) RecalculateBalance(ctx context.Context, tx Transaction, id string) error {
	account, err := uc.accountRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		// Unreachable when called by the transaction engine, which has
		// already verified every referenced account.
		return err
	}

	totals, err := uc.entries.DirectionalTotals(ctx, tx, id)
	if err != nil {
		return err
	}

	balance := account.BalanceFromTotals(totals)

	if err := uc.accountRepo.UpdateBalance(ctx, tx, id, balance, time.Now().UTC()); err != nil {
		return err
	}

	uc.metrics.BalanceRecalculations.Inc()

	return nil
}
