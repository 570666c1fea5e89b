package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkoskivuori/taskupankki/internal/cli"
	"github.com/vkoskivuori/taskupankki/internal/model"
	"github.com/vkoskivuori/taskupankki/internal/money"
	"github.com/vkoskivuori/taskupankki/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the ledger, optionally exporting CSV or OFX",
		Long: `Summarize income, expenses and net over an optional period.

Examples:
  pankki report
  pankki report --from 2025-10-01 --to 2025-10-31
  pankki report --type debit
  pankki report --export csv --out statement.csv
  pankki report --export ofx --out statement.ofx`,
		RunE: runReport,
	}

	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("type", "", "Filter by type (debit, credit)")
	cmd.Flags().String("export", "", "Export format (csv, ofx)")
	cmd.Flags().StringP("out", "o", "", "Export destination file (default: stdout)")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	filter, err := reportFilter(cmd)
	if err != nil {
		return err
	}
	export, _ := cmd.Flags().GetString("export")
	outPath, _ := cmd.Flags().GetString("out")

	store, cleanup, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	st := report.Build(store.Snapshot(), filter)

	if export == "" {
		printSummary(st)
		return nil
	}

	out := os.Stdout
	if outPath != "" {
		f, createErr := os.Create(outPath)
		if createErr != nil {
			return fmt.Errorf("failed to create %s: %w", outPath, createErr)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	switch export {
	case "csv":
		err = report.WriteCSV(out, st)
	case "ofx":
		err = report.WriteOFX(out, st, time.Now().UTC())
	default:
		return fmt.Errorf("invalid export format %q: must be csv or ofx", export)
	}
	if err != nil {
		return err
	}

	if outPath != "" {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", len(st.Lines), outPath))) //nolint:forbidigo // User-facing output
	}
	return nil
}

func reportFilter(cmd *cobra.Command) (report.Filter, error) {
	var filter report.Filter

	if raw, _ := cmd.Flags().GetString("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("invalid --from date %q: %w", raw, err)
		}
		filter.From = &t
	}
	if raw, _ := cmd.Flags().GetString("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("invalid --to date %q: %w", raw, err)
		}
		// Inclusive end of day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &t
	}
	if raw, _ := cmd.Flags().GetString("type"); raw != "" {
		if raw != string(model.TypeDebit) && raw != string(model.TypeCredit) {
			return filter, fmt.Errorf("invalid type %q: must be debit or credit", raw)
		}
		filter.Type = model.Type(raw)
	}

	return filter, nil
}

func printSummary(st report.Statement) {
	fmt.Println(cli.TitleStyle.Render(cli.ChartIcon + " Raportti"))                                   //nolint:forbidigo // User-facing output
	fmt.Printf("  Income    %s\n", cli.CreditStyle.Render(money.FormatEUR(st.Income)))                //nolint:forbidigo // User-facing output
	fmt.Printf("  Expenses  %s\n", cli.DebitStyle.Render(money.FormatEUR(st.Expenses.Neg())))         //nolint:forbidigo // User-facing output
	fmt.Printf("  Net       %s\n", cli.BoldStyle.Render(money.FormatEUR(st.Net)))                     //nolint:forbidigo // User-facing output
	fmt.Printf("  Balance   %s\n", cli.BalanceStyle.Render(money.FormatEUR(st.ClosingBalance)))       //nolint:forbidigo // User-facing output
	fmt.Printf("  %s\n", cli.SubtleStyle.Render(fmt.Sprintf("%d transactions", len(st.Lines))))       //nolint:forbidigo // User-facing output
}
