package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// csvHeader matches what bookkeeping spreadsheets expect to import.
var csvHeader = []string{"id", "date", "title", "category", "recipient", "iban", "amount", "type", "status"}

// WriteCSV writes the statement lines as CSV, newest first, with a trailing
// totals row commented out of the data area via an empty id.
func WriteCSV(w io.Writer, st Statement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range st.Lines {
		record := []string{
			txn.ID,
			txn.Date.Format(time.RFC3339),
			txn.Title,
			txn.Category,
			txn.Recipient,
			txn.IBAN,
			txn.Amount.StringFixed(2),
			string(txn.Type),
			string(txn.Status),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record %s: %w", txn.ID, err)
		}
	}

	totals := []string{
		"", "", "Total", "", "", "",
		st.Net.StringFixed(2),
		"", "",
	}
	if err := cw.Write(totals); err != nil {
		return fmt.Errorf("failed to write CSV totals: %w", err)
	}

	cw.Flush()
	return cw.Error()
}
