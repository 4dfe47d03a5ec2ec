package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "api",
		Short:         "Servicios CRUD del refugio (zivotinje, donacije, obavijesti) y de reservas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(shelterService),
		newServeCmd(bookingService),
		newMigrateCmd(),
		newHealthcheckCmd(),
	)
	return root
}
