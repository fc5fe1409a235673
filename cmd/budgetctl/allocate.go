package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wetalkinmedia/PocketWatcha2/internal/cli"
	"github.com/wetalkinmedia/PocketWatcha2/internal/services"
)

func newAllocateCmd() *cobra.Command {
	var flags profileFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Split a monthly income across budget categories",
		Example: `  budgetctl allocate --income 4200 --age-group 26-35 --situation single --city boston
  budgetctl allocate --profile me.toml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			plan, err := services.NewPlannerService().Calculate(in)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}
			return renderPlan(cmd.OutOrStdout(), plan)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full plan as JSON")
	return cmd
}

func renderPlan(w io.Writer, plan *services.Plan) error {
	in := plan.Input
	rows := make([][]string, 0, len(plan.Budget.Lines))
	for _, l := range plan.Budget.Lines {
		rows = append(rows, []string{string(l.Category), l.Percentage.StringFixed(2) + "%", l.Amount.StringFixed(2)})
	}

	_, err := fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%s, %s, %s", in.AgeGroup.Label(), in.LivingSituation.Label(), in.City),
		Headers: []string{"Category", "Share", "Monthly"},
		Rows:    rows,
		Footer:  []string{"Total", "100.00%", plan.Budget.Total().StringFixed(2)},
	}), cli.Muted("Currency: "+plan.Budget.Currency), "\n")
	return err
}
