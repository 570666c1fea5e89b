package main

import (
	"github.com/spf13/cobra"

	"github.com/vkoskivuori/taskupankki/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the statement interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.Run(store.Snapshot())
		},
	}
}
