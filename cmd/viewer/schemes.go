package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmagro/ledger-viewer/internal/payload"
)

func schemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List the payload schemes accepted by --scheme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range payload.Default.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
