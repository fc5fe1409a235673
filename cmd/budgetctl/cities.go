package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wetalkinmedia/PocketWatcha2/internal/cli"
	"github.com/wetalkinmedia/PocketWatcha2/internal/location"
)

func newCitiesCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "cities",
		Short: "List the supported cities and cost tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groups := location.Groups(search)
			if len(groups) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No cities match %q.\n", search)
				return nil
			}
			return renderCities(cmd.OutOrStdout(), groups)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Filter by name or value")
	return cmd
}

func renderCities(w io.Writer, groups []location.Group) error {
	for _, g := range groups {
		rows := make([][]string, 0, len(g.Cities))
		for _, c := range g.Cities {
			rows = append(rows, []string{c.Value, c.Name, string(c.Tier), fmt.Sprintf("x%.2f", c.Multiplier())})
		}
		table := cli.RenderTable(cli.Table{
			Title:   g.Label,
			Headers: []string{"Value", "City", "Tier", "Cost"},
			Rows:    rows,
			Align:   []lipgloss.Position{lipgloss.Left, lipgloss.Left, lipgloss.Left, lipgloss.Right},
		})
		if _, err := fmt.Fprint(w, table); err != nil {
			return err
		}
	}
	return nil
}
