package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Matthew-Troost/double-entry-ledger/internal/domain"
	"github.com/Matthew-Troost/double-entry-ledger/internal/usecase"
	"github.com/Matthew-Troost/double-entry-ledger/tests/testutil"
)

func TestConcurrentTransactions(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()

	app.CreateAccount("cash", "Cash", "debit")
	app.CreateAccount("revenue", "Revenue", "credit")

	numTransactions := 100
	amount := decimal.NewFromInt(10)

	var (
		wg           sync.WaitGroup
		successCount atomic.Int32
	)

	wg.Add(numTransactions)

	for i := 0; i < numTransactions; i++ {
		go func() {
			defer wg.Done()

			_, err := app.LedgerUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
				Entries: []usecase.CreateEntryInput{
					{AccountID: "cash", Direction: domain.DirectionDebit, Amount: amount},
					{AccountID: "revenue", Direction: domain.DirectionCredit, Amount: amount},
				},
			})
			if err == nil {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != int32(numTransactions) {
		t.Fatalf("expected %d successful transactions, got %d", numTransactions, successCount.Load())
	}

	want := decimal.NewFromInt(1000)

	cash, err := app.AccountUC.GetAccount(ctx, "cash")
	if err != nil {
		t.Fatalf("get cash: %v", err)
	}
	if !cash.Balance.Equal(want) {
		t.Errorf("expected cash balance 1000, got %s", cash.Balance)
	}

	revenue, err := app.AccountUC.GetAccount(ctx, "revenue")
	if err != nil {
		t.Fatalf("get revenue: %v", err)
	}
	if !revenue.Balance.Equal(want) {
		t.Errorf("expected revenue balance 1000, got %s", revenue.Balance)
	}

	entries, total, err := app.EntryUC.ListEntriesByAccount(ctx, usecase.ListEntriesByAccountInput{
		AccountID: "cash",
		Limit:     100,
	})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != numTransactions {
		t.Errorf("expected %d cash entries, got %d", numTransactions, len(entries))
	}
	if total != int64(numTransactions) {
		t.Errorf("expected entry count %d, got %d", numTransactions, total)
	}
}

func TestConcurrentDuplicateTransactionID(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()

	app.CreateAccount("cash", "Cash", "debit")
	app.CreateAccount("revenue", "Revenue", "credit")

	attempts := 20

	var (
		wg           sync.WaitGroup
		successCount atomic.Int32
	)

	wg.Add(attempts)

	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()

			_, err := app.LedgerUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
				ID: "txn-contested",
				Entries: []usecase.CreateEntryInput{
					{AccountID: "cash", Direction: domain.DirectionDebit, Amount: decimal.NewFromInt(5)},
					{AccountID: "revenue", Direction: domain.DirectionCredit, Amount: decimal.NewFromInt(5)},
				},
			})
			if err == nil {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	// Exactly one attempt wins the id; every other one is rejected before
	// writing anything.
	if successCount.Load() != 1 {
		t.Fatalf("expected exactly 1 successful transaction, got %d", successCount.Load())
	}

	cash, err := app.AccountUC.GetAccount(ctx, "cash")
	if err != nil {
		t.Fatalf("get cash: %v", err)
	}
	if !cash.Balance.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected cash balance 5, got %s", cash.Balance)
	}
}
