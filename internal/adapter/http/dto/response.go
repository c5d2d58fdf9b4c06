package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
	"github.com/Matthew-Troost/double-entry-ledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	Direction string          `json:"direction"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Direction: string(a.Direction),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// TransactionEntryResponse represents an entry nested in a transaction
// response. The transaction id is omitted; the caller already knows it.
type TransactionEntryResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionResponse represents a transaction with its entries.
type TransactionResponse struct {
	ID        string                      `json:"id"`
	Name      string                      `json:"name,omitempty"`
	CreatedAt time.Time                   `json:"created_at"`
	Entries   []*TransactionEntryResponse `json:"entries"`
}

// TransactionFromResult converts an engine result to a response.
func TransactionFromResult(res *usecase.TransactionResult) *TransactionResponse {
	entries := make([]*TransactionEntryResponse, len(res.Entries))
	for i, e := range res.Entries {
		entries[i] = &TransactionEntryResponse{
			ID:        e.ID,
			AccountID: e.AccountID,
			Direction: string(e.Direction),
			Amount:    e.Amount,
			CreatedAt: e.CreatedAt,
		}
	}

	return &TransactionResponse{
		ID:        res.Transaction.ID,
		Name:      res.Transaction.Name,
		CreatedAt: res.Transaction.CreatedAt,
		Entries:   entries,
	}
}

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Direction     string          `json:"direction"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = &EntryResponse{
			ID:            e.ID,
			TransactionID: e.TransactionID,
			AccountID:     e.AccountID,
			Direction:     string(e.Direction),
			Amount:        e.Amount,
			CreatedAt:     e.CreatedAt,
		}
	}

	return result
}

// ListEntriesResponse wraps a page of entries. Total is the account's
// full entry count, not the page size.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
