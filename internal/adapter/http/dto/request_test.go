package dto

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
)

func TestCreateAccountRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		direction string
		wantError bool
	}{
		{"debit", "debit", false},
		{"credit", "credit", false},
		{"empty", "", true},
		{"unknown", "sideways", true},
		{"wrong case", "Debit", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateAccountRequest{Name: "cash", Direction: tt.direction}
			err := req.Validate()
			if tt.wantError && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func validTransactionRequest() CreateTransactionRequest {
	return CreateTransactionRequest{
		Name: "rent march",
		Entries: []EntryPayload{
			{AccountID: "acc-1", Direction: "debit", Amount: decimal.RequireFromString("100.00")},
			{AccountID: "acc-2", Direction: "credit", Amount: decimal.RequireFromString("100.00")},
		},
	}
}

func TestCreateTransactionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateTransactionRequest)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(r *CreateTransactionRequest) {},
		},
		{
			name:    "no entries",
			mutate:  func(r *CreateTransactionRequest) { r.Entries = nil },
			wantErr: `"entries" must not be empty`,
		},
		{
			name:    "empty account id",
			mutate:  func(r *CreateTransactionRequest) { r.Entries[1].AccountID = "" },
			wantErr: `"account_id" must not be empty`,
		},
		{
			name:    "bad direction",
			mutate:  func(r *CreateTransactionRequest) { r.Entries[0].Direction = "up" },
			wantErr: `"direction" must be either "debit" or "credit"`,
		},
		{
			name: "amount below minimum",
			mutate: func(r *CreateTransactionRequest) {
				r.Entries[0].Amount = decimal.RequireFromString("0.001")
			},
			wantErr: `"amount" must be a minimum of 0.01`,
		},
		{
			name: "zero amount",
			mutate: func(r *CreateTransactionRequest) {
				r.Entries[0].Amount = decimal.Zero
			},
			wantErr: `"amount" must be a minimum of 0.01`,
		},
		{
			name: "too many decimal places",
			mutate: func(r *CreateTransactionRequest) {
				r.Entries[0].Amount = decimal.RequireFromString("10.005")
			},
			wantErr: `"amount" must have at most two decimal places`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTransactionRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected validation error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestCreateTransactionRequest_ToUseCaseInput(t *testing.T) {
	req := validTransactionRequest()
	req.ID = "txn-1"

	input := req.ToUseCaseInput()

	if input.ID != "txn-1" || input.Name != "rent march" {
		t.Errorf("unexpected input header: %+v", input)
	}
	if len(input.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(input.Entries))
	}
	if input.Entries[0].Direction != domain.DirectionDebit {
		t.Errorf("expected debit direction, got %s", input.Entries[0].Direction)
	}
	if !input.Entries[1].Amount.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("expected amount 100.00, got %s", input.Entries[1].Amount)
	}
}
