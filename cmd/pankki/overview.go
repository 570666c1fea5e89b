package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vkoskivuori/taskupankki/internal/cli"
	"github.com/vkoskivuori/taskupankki/internal/money"
)

func overviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show balance, account details and recent transactions",
		RunE:  runOverview,
	}

	cmd.Flags().IntP("recent", "n", 5, "Number of recent transactions to show")

	return cmd
}

func runOverview(cmd *cobra.Command, _ []string) error {
	recent, _ := cmd.Flags().GetInt("recent")

	store, cleanup, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	snap := store.Snapshot()

	var b strings.Builder
	b.WriteString(snap.AccountHolderName + " · " + snap.CompanyName + "\n")
	b.WriteString(cli.SubtleStyle.Render(snap.AccountNumber) + "\n\n")
	b.WriteString(cli.BalanceStyle.Render(money.FormatEUR(snap.Balance)) + "\n")

	fmt.Println(cli.RenderBox(cli.BankIcon+" Tili", strings.TrimRight(b.String(), "\n"))) //nolint:forbidigo // User-facing output

	if recent <= 0 || len(snap.Transactions) == 0 {
		return nil
	}

	fmt.Println(cli.BoldStyle.Render("Recent transactions")) //nolint:forbidigo // User-facing output
	limit := recent
	if limit > len(snap.Transactions) {
		limit = len(snap.Transactions)
	}
	for _, txn := range snap.Transactions[:limit] {
		fmt.Printf("  %s  %-30s %s\n", //nolint:forbidigo // User-facing output
			txn.Date.Format("02.01.2006"),
			txn.Title,
			cli.FormatAmount(money.FormatEUR(txn.Amount), txn.IsDebit()))
	}

	return nil
}
