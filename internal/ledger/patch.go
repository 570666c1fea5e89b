package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vkoskivuori/taskupankki/internal/model"
)

// TransactionPatch is a partial update for a transaction. Nil fields are
// left unchanged by UpdateTransaction.
type TransactionPatch struct {
	Title     *string
	Amount    *decimal.Decimal
	Date      *time.Time
	Category  *string
	Status    *model.Status
	Type      *model.Type
	Recipient *string
	IBAN      *string
}

func (p TransactionPatch) applyTo(txn *model.Transaction) {
	if p.Title != nil {
		txn.Title = *p.Title
	}
	if p.Amount != nil {
		txn.Amount = *p.Amount
	}
	if p.Date != nil {
		txn.Date = *p.Date
	}
	if p.Category != nil {
		txn.Category = *p.Category
	}
	if p.Status != nil {
		txn.Status = *p.Status
	}
	if p.Type != nil {
		txn.Type = *p.Type
	}
	if p.Recipient != nil {
		txn.Recipient = *p.Recipient
	}
	if p.IBAN != nil {
		txn.IBAN = *p.IBAN
	}
}
