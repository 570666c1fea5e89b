package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkoskivuori/taskupankki/internal/cli"
	"github.com/vkoskivuori/taskupankki/internal/ledger"
	"github.com/vkoskivuori/taskupankki/internal/model"
	"github.com/vkoskivuori/taskupankki/internal/money"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List and edit ledger transactions",
	}

	cmd.AddCommand(transactionsListCmd())
	cmd.AddCommand(transactionsAddCmd())
	cmd.AddCommand(transactionsEditCmd())
	cmd.AddCommand(transactionsDeleteCmd())

	return cmd
}

func transactionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE:  runTransactionsList,
	}

	cmd.Flags().String("type", "", "Filter by type (debit, credit)")
	cmd.Flags().IntP("limit", "n", 0, "Show at most N transactions (0: all)")

	return cmd
}

func runTransactionsList(cmd *cobra.Command, _ []string) error {
	typeFilter, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	store, cleanup, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	snap := store.Snapshot()
	fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-6s %-10s  %-30s %-12s %-12s %s", //nolint:forbidigo // User-facing output
		"ID", "Date", "Title", "Category", "Amount", "Status")))
	shown := 0
	for _, txn := range snap.Transactions {
		if typeFilter != "" && string(txn.Type) != typeFilter {
			continue
		}
		if limit > 0 && shown >= limit {
			break
		}
		shown++
		fmt.Printf("%-6s %s  %-30s %-12s %s %s\n", //nolint:forbidigo // User-facing output
			txn.ID,
			txn.Date.Format("02.01.2006"),
			txn.Title,
			txn.Category,
			cli.FormatAmount(money.FormatEUR(txn.Amount), txn.IsDebit()),
			cli.SubtleStyle.Render(string(txn.Status)))
	}

	if shown == 0 {
		fmt.Println(cli.SubtleStyle.Render("No transactions.")) //nolint:forbidigo // User-facing output
	}

	return nil
}

func transactionsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction to the ledger",
		Long: `Add a transaction directly to the ledger.

The balance delta follows --type, not the sign of --amount: a credit always
raises the balance by the amount's magnitude and a debit always lowers it,
so "--amount -1000 --type credit" and "--amount 1000 --type credit" are
equivalent.`,
		RunE: runTransactionsAdd,
	}

	cmd.Flags().String("title", "", "Transaction title (required)")
	cmd.Flags().String("amount", "", "Amount, unsigned magnitude (required)")
	cmd.Flags().String("type", "", "debit or credit (required)")
	cmd.Flags().String("category", "", "Category (default: Muu)")
	cmd.Flags().String("status", "", "completed, pending or failed (default: completed)")
	cmd.Flags().String("recipient", "", "Counterparty name")
	cmd.Flags().String("iban", "", "Counterparty IBAN")
	cmd.Flags().String("date", "", "Date (RFC 3339; default: now)")

	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func runTransactionsAdd(cmd *cobra.Command, _ []string) error {
	title, _ := cmd.Flags().GetString("title")
	amount, _ := cmd.Flags().GetString("amount")
	txnType, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")
	status, _ := cmd.Flags().GetString("status")
	recipient, _ := cmd.Flags().GetString("recipient")
	iban, _ := cmd.Flags().GetString("iban")
	date, _ := cmd.Flags().GetString("date")

	if txnType != string(model.TypeDebit) && txnType != string(model.TypeCredit) {
		return fmt.Errorf("invalid type %q: must be debit or credit", txnType)
	}

	txn := model.Transaction{
		Title:     title,
		Amount:    money.ParseAmountOrZero(amount),
		Type:      model.Type(txnType),
		Category:  category,
		Status:    model.Status(status),
		Recipient: recipient,
		IBAN:      iban,
	}
	if date != "" {
		parsed, err := time.Parse(time.RFC3339, date)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", date, err)
		}
		txn.Date = parsed
	}

	store, cleanup, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	store.AddTransaction(txn)

	snap := store.Snapshot()
	added := snap.Transactions[0]
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Transaction %s added: %s %s", //nolint:forbidigo // User-facing output
		added.ID, added.Title, money.FormatEUR(added.Amount))))
	fmt.Printf("New balance: %s\n", cli.BalanceStyle.Render(money.FormatEUR(snap.Balance))) //nolint:forbidigo // User-facing output

	return nil
}

func transactionsEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit fields of an existing transaction",
		Long: `Edit a transaction in place. Only the flags you pass are changed; when
--amount changes, the balance is corrected by exactly the difference from
the stored amount. The amount is applied with the sign you give it.

Editing an id that does not exist is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: runTransactionsEdit,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("amount", "", "New signed amount")
	cmd.Flags().String("category", "", "New category")
	cmd.Flags().String("status", "", "New status (completed, pending, failed)")
	cmd.Flags().String("recipient", "", "New counterparty name")
	cmd.Flags().String("iban", "", "New counterparty IBAN")
	cmd.Flags().String("date", "", "New date (RFC 3339)")

	return cmd
}

func runTransactionsEdit(cmd *cobra.Command, args []string) error {
	id := args[0]
	var patch ledger.TransactionPatch

	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		patch.Title = &v
	}
	if cmd.Flags().Changed("amount") {
		raw, _ := cmd.Flags().GetString("amount")
		v := money.ParseAmountOrZero(raw)
		patch.Amount = &v
	}
	if cmd.Flags().Changed("category") {
		v, _ := cmd.Flags().GetString("category")
		patch.Category = &v
	}
	if cmd.Flags().Changed("status") {
		raw, _ := cmd.Flags().GetString("status")
		v := model.Status(raw)
		patch.Status = &v
	}
	if cmd.Flags().Changed("recipient") {
		v, _ := cmd.Flags().GetString("recipient")
		patch.Recipient = &v
	}
	if cmd.Flags().Changed("iban") {
		v, _ := cmd.Flags().GetString("iban")
		patch.IBAN = &v
	}
	if cmd.Flags().Changed("date") {
		raw, _ := cmd.Flags().GetString("date")
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", raw, err)
		}
		patch.Date = &parsed
	}

	store, cleanup, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	before := store.Snapshot()
	store.UpdateTransaction(id, patch)
	snap := store.Snapshot()

	if before.Balance.Equal(snap.Balance) && len(before.Transactions) == len(snap.Transactions) {
		found := false
		for _, txn := range snap.Transactions {
			if txn.ID == id {
				found = true
				break
			}
		}
		if !found {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("transaction %s not found; nothing changed", id))) //nolint:forbidigo // User-facing output
			return nil
		}
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Transaction %s updated", id)))                   //nolint:forbidigo // User-facing output
	fmt.Printf("Balance: %s\n", cli.BalanceStyle.Render(money.FormatEUR(snap.Balance)))         //nolint:forbidigo // User-facing output

	return nil
}

func transactionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction, reversing its balance contribution",
		Args:  cobra.ExactArgs(1),
		RunE:  runTransactionsDelete,
	}
}

func runTransactionsDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	store, cleanup, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	before := len(store.Snapshot().Transactions)
	store.DeleteTransaction(id)
	snap := store.Snapshot()

	if len(snap.Transactions) == before {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("transaction %s not found; nothing changed", id))) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Transaction %s deleted", id)))           //nolint:forbidigo // User-facing output
	fmt.Printf("Balance: %s\n", cli.BalanceStyle.Render(money.FormatEUR(snap.Balance))) //nolint:forbidigo // User-facing output

	return nil
}
