// Package receipt renders a single transaction plus account metadata as a
// human-readable receipt. It reads the ledger store through a snapshot and
// never mutates it.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/vkoskivuori/taskupankki/internal/cli"
	"github.com/vkoskivuori/taskupankki/internal/common"
	"github.com/vkoskivuori/taskupankki/internal/ledger"
	"github.com/vkoskivuori/taskupankki/internal/model"
	"github.com/vkoskivuori/taskupankki/internal/money"
)

// Receipt carries everything a printed receipt shows.
type Receipt struct {
	IssuedAt          time.Time
	Reference         string
	AccountNumber     string
	AccountHolderName string
	CompanyName       string
	Transaction       model.Transaction
}

// Latest builds a receipt for the most recent transaction.
func Latest(snap ledger.Snapshot) (Receipt, error) {
	if len(snap.Transactions) == 0 {
		return Receipt{}, fmt.Errorf("cannot build receipt: %w", common.ErrNoTransactions)
	}
	return build(snap, snap.Transactions[0]), nil
}

// ForTransaction builds a receipt for the transaction with the given id.
func ForTransaction(snap ledger.Snapshot, id string) (Receipt, error) {
	for _, txn := range snap.Transactions {
		if txn.ID == id {
			return build(snap, txn), nil
		}
	}
	return Receipt{}, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
}

func build(snap ledger.Snapshot, txn model.Transaction) Receipt {
	return Receipt{
		IssuedAt:          time.Now().UTC(),
		Reference:         uuid.NewString(),
		AccountNumber:     snap.AccountNumber,
		AccountHolderName: snap.AccountHolderName,
		CompanyName:       snap.CompanyName,
		Transaction:       txn,
	}
}

var labelStyle = lipgloss.NewStyle().Width(14).Foreground(cli.SubtleColor)

// Render produces the styled terminal receipt.
func (r Receipt) Render() string {
	txn := r.Transaction

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Company", r.CompanyName)
	row("Account", r.AccountHolderName)
	row("IBAN", r.AccountNumber)
	b.WriteString("\n")

	row("Title", txn.Title)
	if txn.Recipient != "" {
		row("Recipient", txn.Recipient)
	}
	if txn.IBAN != "" {
		row("To IBAN", txn.IBAN)
	}
	row("Category", txn.Category)
	row("Date", txn.Date.Format("02.01.2006 15:04"))
	row("Status", string(txn.Status))
	row("Amount", cli.FormatAmount(money.FormatEUR(txn.Amount), txn.IsDebit()))
	b.WriteString("\n")

	b.WriteString(cli.SubtleStyle.Render("Ref " + r.Reference))

	return cli.RenderBox(cli.ReceiptIcon+" Kuitti", strings.TrimRight(b.String(), "\n"))
}
