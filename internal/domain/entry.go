package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one leg of a transaction, posting a positive amount in a
// direction against a single account. The entry log is append-only.
type Entry struct {
	ID            string
	TransactionID string
	AccountID     string
	Direction     Direction
	Amount        decimal.Decimal
	CreatedAt     time.Time
}

// DirectionTotals is the pair of per-direction amount sums for an account
// across its full entry history.
type DirectionTotals struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// SumByDirection partitions entries by direction and sums the amounts per
// partition.
func SumByDirection(entries []*Entry) DirectionTotals {
	totals := DirectionTotals{
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
	}

	for _, entry := range entries {
		switch entry.Direction {
		case DirectionDebit:
			totals.DebitTotal = totals.DebitTotal.Add(entry.Amount)
		case DirectionCredit:
			totals.CreditTotal = totals.CreditTotal.Add(entry.Amount)
		}
	}

	return totals
}
