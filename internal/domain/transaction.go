package domain

import "time"

// Transaction groups a balanced set of entries committed as a single unit.
// A committed transaction is immutable.
type Transaction struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
