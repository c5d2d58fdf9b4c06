package domain

import "errors"

var (
	// Account errors
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")

	// Transaction errors
	ErrTransactionExists   = errors.New("transaction already exists")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidEntries      = errors.New("invalid entries")
)
