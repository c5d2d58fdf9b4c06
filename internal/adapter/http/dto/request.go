package dto

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
	"github.com/Matthew-Troost/double-entry-ledger/internal/usecase"
)

var minEntryAmount = decimal.RequireFromString("0.01")

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Direction string `json:"direction"`
}

// Validate checks payload shape.
func (r *CreateAccountRequest) Validate() error {
	if !domain.Direction(r.Direction).Valid() {
		return errors.New(`"direction" must be either "debit" or "credit"`)
	}

	return nil
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		ID:        r.ID,
		Name:      r.Name,
		Direction: domain.Direction(r.Direction),
	}
}

// EntryPayload represents one entry of a proposed transaction.
type EntryPayload struct {
	AccountID string          `json:"account_id"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
}

// CreateTransactionRequest represents a request to create a transaction.
type CreateTransactionRequest struct {
	ID      string         `json:"id,omitempty"`
	Name    string         `json:"name,omitempty"`
	Entries []EntryPayload `json:"entries"`
}

// Validate checks payload shape. The structural transaction invariants are
// the engine's job; this only rejects malformed fields.
func (r *CreateTransactionRequest) Validate() error {
	if len(r.Entries) == 0 {
		return errors.New(`"entries" must not be empty`)
	}

	for i, entry := range r.Entries {
		if entry.AccountID == "" {
			return fmt.Errorf(`entries[%d]: "account_id" must not be empty`, i)
		}

		if !domain.Direction(entry.Direction).Valid() {
			return fmt.Errorf(`entries[%d]: "direction" must be either "debit" or "credit"`, i)
		}

		if entry.Amount.LessThan(minEntryAmount) {
			return fmt.Errorf(`entries[%d]: "amount" must be a minimum of 0.01`, i)
		}

		// Amounts are bounded to two fractional digits so the engine's
		// exact sum comparison stays meaningful.
		if entry.Amount.Exponent() < -2 {
			return fmt.Errorf(`entries[%d]: "amount" must have at most two decimal places`, i)
		}
	}

	return nil
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateTransactionInput {
	entries := make([]usecase.CreateEntryInput, len(r.Entries))
	for i, entry := range r.Entries {
		entries[i] = usecase.CreateEntryInput{
			AccountID: entry.AccountID,
			Direction: domain.Direction(entry.Direction),
			Amount:    entry.Amount,
		}
	}

	return usecase.CreateTransactionInput{
		ID:      r.ID,
		Name:    r.Name,
		Entries: entries,
	}
}
