package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wetalkinmedia/PocketWatcha2/internal/cli"
	"github.com/wetalkinmedia/PocketWatcha2/internal/services"
)

func newCareersCmd() *cobra.Command {
	var flags profileFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "careers",
		Short: "Suggest careers that would raise the income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			plan, err := services.NewPlannerService().Calculate(in)
			if err != nil {
				return err
			}
			return renderCareers(cmd.OutOrStdout(), plan, limit)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum suggestions to show (0 for all)")
	return cmd
}

func renderCareers(w io.Writer, plan *services.Plan, limit int) error {
	fmt.Fprintln(w, plan.CareerAdvice)
	if len(plan.Careers) == 0 {
		return nil
	}

	careers := plan.Careers
	if limit > 0 && len(careers) > limit {
		careers = careers[:limit]
	}

	rows := make([][]string, 0, len(careers))
	for _, s := range careers {
		rows = append(rows, []string{
			s.Title,
			s.Field,
			s.EstimatedSalary.StringFixed(0) + " " + s.Currency,
			fmt.Sprintf("+%.0f%%", s.UpliftPercent),
		})
	}

	_, err := fmt.Fprint(w, "\n", cli.RenderTable(cli.Table{
		Headers: []string{"Career", "Field", "Est. salary", "Uplift"},
		Rows:    rows,
		Align:   []lipgloss.Position{lipgloss.Left, lipgloss.Left, lipgloss.Right, lipgloss.Right},
	}))
	return err
}
