package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewDebit(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		wantAmount string
	}{
		{name: "positive magnitude is negated", amount: "15.90", wantAmount: "-15.9"},
		{name: "already negative stays negative", amount: "-15.90", wantAmount: "-15.9"},
		{name: "zero stays zero", amount: "0", wantAmount: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := NewDebit("eBike Rental", decimal.RequireFromString(tt.amount))

			if txn.Type != TypeDebit {
				t.Errorf("Type = %q, want %q", txn.Type, TypeDebit)
			}
			if txn.Status != StatusCompleted {
				t.Errorf("Status = %q, want %q", txn.Status, StatusCompleted)
			}
			if got := txn.Amount.String(); got != tt.wantAmount {
				t.Errorf("Amount = %s, want %s", got, tt.wantAmount)
			}
			if txn.Amount.IsPositive() {
				t.Error("debit amount must not be positive")
			}
		})
	}
}

func TestNewCredit(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		wantAmount string
	}{
		{name: "positive magnitude kept", amount: "3500.00", wantAmount: "3500"},
		{name: "negative input flipped positive", amount: "-3500.00", wantAmount: "3500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := NewCredit("Salary", decimal.RequireFromString(tt.amount))

			if txn.Type != TypeCredit {
				t.Errorf("Type = %q, want %q", txn.Type, TypeCredit)
			}
			if got := txn.Amount.String(); got != tt.wantAmount {
				t.Errorf("Amount = %s, want %s", got, tt.wantAmount)
			}
			if txn.Amount.IsNegative() {
				t.Error("credit amount must not be negative")
			}
		})
	}
}

func TestMagnitude(t *testing.T) {
	txn := NewDebit("Grocery Store", decimal.RequireFromString("87.35"))
	if got := txn.Magnitude().String(); got != "87.35" {
		t.Errorf("Magnitude = %s, want 87.35", got)
	}
	if !txn.IsDebit() {
		t.Error("IsDebit should be true for a debit")
	}
}
