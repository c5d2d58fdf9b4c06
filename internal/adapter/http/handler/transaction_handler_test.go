package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Matthew-Troost/double-entry-ledger/internal/adapter/http/dto"
	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
	"github.com/Matthew-Troost/double-entry-ledger/internal/usecase"
)

type ledgerServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateTransactionInput) (*usecase.TransactionResult, error)
	getFn    func(ctx context.Context, id string) (*usecase.TransactionResult, error)
}

func (s *ledgerServiceStub) CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*usecase.TransactionResult, error) {
	return s.createFn(ctx, input)
}

func (s *ledgerServiceStub) GetTransaction(ctx context.Context, id string) (*usecase.TransactionResult, error) {
	return s.getFn(ctx, id)
}

func balancedRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Name: "rent march",
		Entries: []dto.EntryPayload{
			{AccountID: "acc-1", Direction: "debit", Amount: decimal.RequireFromString("100.00")},
			{AccountID: "acc-2", Direction: "credit", Amount: decimal.RequireFromString("100.00")},
		},
	}
}

func TestTransactionHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateTransactionInput
	handler := NewTransactionHandler(&ledgerServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*usecase.TransactionResult, error) {
			captured = input
			return &usecase.TransactionResult{
				Transaction: &domain.Transaction{ID: "txn-1", Name: input.Name},
				Entries: []*domain.Entry{
					{ID: "e1", TransactionID: "txn-1", AccountID: "acc-1", Direction: domain.DirectionDebit, Amount: decimal.RequireFromString("100.00")},
					{ID: "e2", TransactionID: "txn-1", AccountID: "acc-2", Direction: domain.DirectionCredit, Amount: decimal.RequireFromString("100.00")},
				},
			}, nil
		},
	})

	body, _ := json.Marshal(balancedRequest())
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if len(captured.Entries) != 2 {
		t.Fatalf("expected 2 entries passed through, got %d", len(captured.Entries))
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "txn-1" {
		t.Fatalf("expected transaction ID txn-1, got %s", resp.ID)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("expected 2 entries in response, got %d", len(resp.Entries))
	}
}

func TestTransactionHandler_Create_EmptyEntries(t *testing.T) {
	handler := NewTransactionHandler(&ledgerServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*usecase.TransactionResult, error) {
			t.Fatal("CreateTransaction should not be called for invalid payload")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.CreateTransactionRequest{Name: "empty"})
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHandler_Create_UnbalancedRejected(t *testing.T) {
	handler := NewTransactionHandler(&ledgerServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*usecase.TransactionResult, error) {
			return nil, fmt.Errorf("%w: the sum of debit amounts must equal the sum of credit amounts", domain.ErrInvalidEntries)
		},
	})

	body, _ := json.Marshal(balancedRequest())
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHandler_Create_UnknownAccountIsBadRequest(t *testing.T) {
	handler := NewTransactionHandler(&ledgerServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*usecase.TransactionResult, error) {
			return nil, fmt.Errorf("%w: one or more account ids cannot be found", domain.ErrAccountNotFound)
		},
	})

	body, _ := json.Marshal(balancedRequest())
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown account on write, got %d", rec.Code)
	}
}

func TestTransactionHandler_Create_DuplicateID(t *testing.T) {
	handler := NewTransactionHandler(&ledgerServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*usecase.TransactionResult, error) {
			return nil, fmt.Errorf("%w: a transaction with id %q already exists", domain.ErrTransactionExists, input.ID)
		},
	})

	reqBody := balancedRequest()
	reqBody.ID = "txn-dup"
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestTransactionHandler_Get_Success(t *testing.T) {
	handler := NewTransactionHandler(&ledgerServiceStub{
		getFn: func(ctx context.Context, id string) (*usecase.TransactionResult, error) {
			return &usecase.TransactionResult{
				Transaction: &domain.Transaction{ID: id},
				Entries:     []*domain.Entry{},
			}, nil
		},
	})

	req := newRequestWithID(http.MethodGet, "/transactions/txn-1", "txn-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTransactionHandler_Get_NotFound(t *testing.T) {
	handler := NewTransactionHandler(&ledgerServiceStub{
		getFn: func(ctx context.Context, id string) (*usecase.TransactionResult, error) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
		},
	})

	req := newRequestWithID(http.MethodGet, "/transactions/ghost", "ghost")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
