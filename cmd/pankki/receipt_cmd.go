package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vkoskivuori/taskupankki/internal/receipt"
)

func receiptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt [id]",
		Short: "Show a receipt for a transaction (latest when no id given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReceipt,
	}
}

func runReceipt(cmd *cobra.Command, args []string) error {
	store, cleanup, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	snap := store.Snapshot()

	var r receipt.Receipt
	if len(args) == 1 {
		r, err = receipt.ForTransaction(snap, args[0])
	} else {
		r, err = receipt.Latest(snap)
	}
	if err != nil {
		return err
	}

	fmt.Println(r.Render()) //nolint:forbidigo // User-facing output
	return nil
}
