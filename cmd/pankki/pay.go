package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vkoskivuori/taskupankki/internal/cli"
	"github.com/vkoskivuori/taskupankki/internal/money"
)

func payCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay <amount>",
		Short: "Create a payment from the account",
		Long: `Create a payment (an outgoing transaction) from the account.

The amount is parsed leniently the way the payment form does: "25", "25.50",
"25,50" and "25 €" all work, and anything unparseable becomes a zero-amount
payment rather than an error. Validate before calling if you need stricter
behavior.

Examples:
  pankki pay 25.50 -m "Coffee"
  pankki pay 120 --recipient "Vuokranantaja Oy" --iban "FI49 5000 9420 0287 30"`,
		Args: cobra.ExactArgs(1),
		RunE: runPay,
	}

	cmd.Flags().StringP("description", "m", "", "Payment description (default: Maksu)")
	cmd.Flags().String("recipient", "", "Recipient name")
	cmd.Flags().String("iban", "", "Recipient IBAN")

	return cmd
}

func runPay(cmd *cobra.Command, args []string) error {
	description, _ := cmd.Flags().GetString("description")
	recipient, _ := cmd.Flags().GetString("recipient")
	iban, _ := cmd.Flags().GetString("iban")

	store, cleanup, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	if money.ParseAmountOrZero(args[0]).IsZero() {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("amount %q parses to zero; recording a zero-amount payment", args[0]))) //nolint:forbidigo // User-facing output
	}

	store.CreatePayment(args[0], description, recipient, iban)

	snap := store.Snapshot()
	txn := snap.Transactions[0]

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Payment %s recorded: %s %s", //nolint:forbidigo // User-facing output
		txn.ID, txn.Title, money.FormatEUR(txn.Amount))))
	fmt.Printf("New balance: %s\n", cli.BalanceStyle.Render(money.FormatEUR(snap.Balance))) //nolint:forbidigo // User-facing output

	return nil
}
