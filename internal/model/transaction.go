// Package model defines the domain types shared across the application.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status describes the settlement state of a transaction.
type Status string

// Transaction statuses.
const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

// Type describes the direction of a transaction relative to the account.
type Type string

// Transaction types. A debit moves money out of the account and carries a
// non-positive amount; a credit moves money in and carries a non-negative
// amount.
const (
	TypeDebit  Type = "debit"
	TypeCredit Type = "credit"
)

// Transaction is a single ledger entry. Amount is stored already signed:
// debits are non-positive, credits non-negative.
type Transaction struct {
	Date      time.Time
	ID        string
	Title     string
	Category  string
	Recipient string
	IBAN      string
	Amount    decimal.Decimal
	Status    Status
	Type      Type
}

// NewDebit builds an outgoing transaction from an unsigned magnitude.
// The stored amount is always non-positive regardless of the sign passed in.
func NewDebit(title string, amount decimal.Decimal) Transaction {
	return Transaction{
		Title:  title,
		Amount: amount.Abs().Neg(),
		Type:   TypeDebit,
		Status: StatusCompleted,
	}
}

// NewCredit builds an incoming transaction from an unsigned magnitude.
// The stored amount is always non-negative regardless of the sign passed in.
func NewCredit(title string, amount decimal.Decimal) Transaction {
	return Transaction{
		Title:  title,
		Amount: amount.Abs(),
		Type:   TypeCredit,
		Status: StatusCompleted,
	}
}

// Magnitude returns the unsigned size of the transaction.
func (t Transaction) Magnitude() decimal.Decimal {
	return t.Amount.Abs()
}

// IsDebit reports whether the transaction moves money out of the account.
func (t Transaction) IsDebit() bool {
	return t.Type == TypeDebit
}
