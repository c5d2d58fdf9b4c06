package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the polarity of an account or an entry.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == DirectionDebit || d == DirectionCredit
}

// Account represents a ledger account. Its direction is fixed at creation
// and determines the sign convention for its balance. Balance is derived
// from the account's entries and is never set directly by callers.
type Account struct {
	ID        string
	Name      string
	Direction Direction
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BalanceFromTotals applies the account's sign convention to directional
// totals: a debit account grows with debit entries, a credit account grows
// with credit entries.
func (a *Account) BalanceFromTotals(totals DirectionTotals) decimal.Decimal {
	if a.Direction == DirectionDebit {
		return totals.DebitTotal.Sub(totals.CreditTotal)
	}

	return totals.CreditTotal.Sub(totals.DebitTotal)
}
