package report

import (
	"fmt"
	"io"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/vkoskivuori/taskupankki/internal/model"
)

// WriteOFX writes the statement as an OFX 2.0.3 bank statement response,
// the format accounting software imports. Amounts are emitted with their
// ledger signs (debits negative), matching bank OFX exports.
func WriteOFX(w io.Writer, st Statement, generatedAt time.Time) error {
	trnUID, err := ofxgo.RandomUID()
	if err != nil {
		return fmt.Errorf("failed to generate transaction UID: %w", err)
	}

	curdef, err := ofxgo.NewCurrSymbol("EUR")
	if err != nil {
		return fmt.Errorf("failed to build currency symbol: %w", err)
	}

	okStatus := ofxgo.Status{
		Code:     0,
		Severity: "INFO",
	}

	start, end := st.Period()

	tranList := &ofxgo.TransactionList{
		DtStart: ofxgo.Date{Time: start},
		DtEnd:   ofxgo.Date{Time: end},
	}
	for _, txn := range st.Lines {
		tranList.Transactions = append(tranList.Transactions, ofxTransaction(txn))
	}

	var balance ofxgo.Amount
	balance.SetFrac64(centsOf(st.ClosingBalance), 100)

	stmt := &ofxgo.StatementResponse{
		TrnUID: *trnUID,
		Status: okStatus,
		CurDef: *curdef,
		BankAcctFrom: ofxgo.BankAcct{
			BankID:   "TASKUPANKKI",
			AcctID:   ofxgo.String(st.AccountNumber),
			AcctType: ofxgo.AcctTypeChecking,
		},
		BankTranList: tranList,
		BalAmt:       balance,
		DtAsOf:       ofxgo.Date{Time: generatedAt},
	}

	resp := ofxgo.Response{
		Version: ofxgo.OfxVersion203,
		Signon: ofxgo.SignonResponse{
			Status:   okStatus,
			DtServer: ofxgo.Date{Time: generatedAt},
			Language: "FIN",
			Org:      ofxgo.String(st.CompanyName),
		},
		Bank: []ofxgo.Message{stmt},
	}

	buf, err := resp.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal OFX response: %w", err)
	}
	if _, err := io.Copy(w, buf); err != nil {
		return fmt.Errorf("failed to write OFX response: %w", err)
	}
	return nil
}

func ofxTransaction(txn model.Transaction) ofxgo.Transaction {
	trnType := ofxgo.TrnTypeCredit
	if txn.IsDebit() {
		trnType = ofxgo.TrnTypeDebit
	}

	var amount ofxgo.Amount
	amount.SetFrac64(centsOf(txn.Amount), 100)

	out := ofxgo.Transaction{
		TrnType:  trnType,
		DtPosted: ofxgo.Date{Time: txn.Date},
		TrnAmt:   amount,
		FiTID:    ofxgo.String(txn.ID),
		Name:     ofxgo.String(txn.Title),
	}
	if txn.Recipient != "" {
		out.Memo = ofxgo.String(txn.Recipient)
	}
	return out
}

func centsOf(d decimal.Decimal) int64 {
	return d.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
}
