package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vkoskivuori/taskupankki/internal/cli"
	"github.com/vkoskivuori/taskupankki/internal/money"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and edit account details",
	}

	cmd.AddCommand(settingsShowCmd())
	cmd.AddCommand(settingsSetHolderCmd())
	cmd.AddCommand(settingsSetCompanyCmd())
	cmd.AddCommand(settingsSetIBANCmd())
	cmd.AddCommand(settingsSetBalanceCmd())

	return cmd
}

func settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current account details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			snap := store.Snapshot()

			var b strings.Builder
			b.WriteString("Holder   " + snap.AccountHolderName + "\n")
			b.WriteString("Company  " + snap.CompanyName + "\n")
			b.WriteString("IBAN     " + snap.AccountNumber + "\n")
			b.WriteString("Balance  " + cli.BalanceStyle.Render(money.FormatEUR(snap.Balance)))

			fmt.Println(cli.RenderBox("Asetukset", b.String())) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func settingsSetHolderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-holder <name>",
		Short: "Set the account holder name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			store.UpdateAccountHolderName(args[0])
			fmt.Println(cli.FormatSuccess("Account holder updated")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func settingsSetCompanyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-company <name>",
		Short: "Set the company name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			store.UpdateCompanyName(args[0])
			fmt.Println(cli.FormatSuccess("Company name updated")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func settingsSetIBANCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-iban <iban>",
		Short: "Set the account number (IBAN)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			store.UpdateAccountNumber(args[0])
			fmt.Println(cli.FormatSuccess("Account number updated")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func settingsSetBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-balance <amount>",
		Short: "Manually override the balance",
		Long: `Override the balance directly without touching the transaction list.

This is an administrative correction: it breaks the balance-equals-ledger-sum
relationship until the next ledger mutation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			store.UpdateBalance(money.ParseAmountOrZero(args[0]))

			snap := store.Snapshot()
			fmt.Println(cli.FormatWarning("Balance overridden; it no longer equals the ledger sum"))      //nolint:forbidigo // User-facing output
			fmt.Printf("Balance: %s\n", cli.BalanceStyle.Render(money.FormatEUR(snap.Balance)))           //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
