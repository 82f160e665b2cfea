package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sadopc/stride/internal/workout"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show weekly and monthly distance per intensity band",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := time.Now()
			if month != "" {
				parsed, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("invalid month %q (want YYYY-MM): %w", month, err)
				}
				m = parsed
			}

			weekStart := app.Store.WeekStart()
			grid := workout.MonthGrid(m, weekStart)
			workouts, err := app.Store.ListWorkoutsBetween(grid[0], grid[len(grid)-1])
			if err != nil {
				return err
			}

			printStats(cmd.OutOrStdout(), m, grid, workouts)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to summarize (YYYY-MM, default current)")

	return cmd
}

func printStats(w io.Writer, month time.Time, grid []time.Time, workouts []workout.Workout) {
	fmt.Fprintf(w, "%s %d\n\n", workout.MonthName(month.Month()), month.Year())

	for _, week := range workout.Weeks(grid) {
		label := fmt.Sprintf("%s..%s", workout.DateKey(week[0]), workout.DateKey(week[len(week)-1]))
		printDistribution(w, label, workout.WeekTotals(workouts, week).Bands())
	}

	totals := workout.AggregateWhere(workouts, func(d time.Time) bool {
		return d.Year() == month.Year() && d.Month() == month.Month()
	})
	fmt.Fprintln(w)
	printDistribution(w, "Miesiąc", totals.Bands())
}

func printDistribution(w io.Writer, label string, d workout.Distribution) {
	parts := make([]string, 0, len(d.Shares))
	for _, s := range d.Shares {
		parts = append(parts, fmt.Sprintf("%s %s", s.Label(), s.PercentText()))
	}
	fmt.Fprintf(w, "%-22s %8s km   %s\n", label, workout.FormatDistance(d.Total), strings.Join(parts, "  "))
}
