package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "budgetctl",
		Short:        "PocketWatcha budget calculator",
		Long:         "Allocate a monthly income across budget categories and explore career options, without running the API.",
		SilenceUsage: true,
	}
	root.AddCommand(newAllocateCmd(), newCareersCmd(), newCitiesCmd())
	return root
}
