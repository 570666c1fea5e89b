// Package report builds statements and summaries over a ledger snapshot and
// exports them for accounting use. It treats the store as read-only.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vkoskivuori/taskupankki/internal/ledger"
	"github.com/vkoskivuori/taskupankki/internal/model"
)

// Filter narrows a statement to a period and/or transaction type. Nil or
// zero fields are ignored.
type Filter struct {
	From *time.Time
	To   *time.Time
	Type model.Type // empty means both
}

// Statement is a filtered view over the ledger with per-direction totals.
// Lines keep the snapshot's most-recent-first ordering.
type Statement struct {
	AccountNumber     string
	AccountHolderName string
	CompanyName       string
	Lines             []model.Transaction
	Income            decimal.Decimal
	Expenses          decimal.Decimal
	Net               decimal.Decimal
	ClosingBalance    decimal.Decimal
}

// Build assembles a statement from a snapshot. Income and Expenses are
// unsigned totals; Net is income minus expenses.
func Build(snap ledger.Snapshot, f Filter) Statement {
	st := Statement{
		AccountNumber:     snap.AccountNumber,
		AccountHolderName: snap.AccountHolderName,
		CompanyName:       snap.CompanyName,
		ClosingBalance:    snap.Balance,
		Income:            decimal.Zero,
		Expenses:          decimal.Zero,
	}

	for _, txn := range snap.Transactions {
		if !f.matches(txn) {
			continue
		}
		st.Lines = append(st.Lines, txn)
		if txn.IsDebit() {
			st.Expenses = st.Expenses.Add(txn.Magnitude())
		} else {
			st.Income = st.Income.Add(txn.Magnitude())
		}
	}

	st.Net = st.Income.Sub(st.Expenses)
	return st
}

func (f Filter) matches(txn model.Transaction) bool {
	if f.Type != "" && txn.Type != f.Type {
		return false
	}
	if f.From != nil && txn.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && txn.Date.After(*f.To) {
		return false
	}
	return true
}

// Period returns the date range covered by the statement lines. Falls back
// to now/now for an empty statement so exports always carry a valid range.
func (s Statement) Period() (start, end time.Time) {
	if len(s.Lines) == 0 {
		now := time.Now().UTC()
		return now, now
	}
	start, end = s.Lines[0].Date, s.Lines[0].Date
	for _, txn := range s.Lines[1:] {
		if txn.Date.Before(start) {
			start = txn.Date
		}
		if txn.Date.After(end) {
			end = txn.Date
		}
	}
	return start, end
}
