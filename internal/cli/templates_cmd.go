package cli

import (
	"fmt"

	"github.com/sadopc/stride/internal/workout"
	"github.com/spf13/cobra"
)

func newTemplatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List workout templates with totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Store.ListTemplates()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(templates) == 0 {
				fmt.Fprintln(out, "No templates found.")
				return nil
			}

			for _, t := range templates {
				dur, _ := workout.FormatClock(float64(t.TotalDuration), workout.DurationFields)
				fmt.Fprintf(out, "%-24s %8s km  %s  %d segments\n",
					t.Name, workout.FormatDistance(t.TotalDistance), dur, len(t.Segments))
			}
			return nil
		},
	}
}
