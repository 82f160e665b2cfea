package cli

import (
	"fmt"

	"github.com/sadopc/stride/internal/export"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all scheduled workouts to CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			workouts, err := app.Store.AllWorkouts()
			if err != nil {
				return err
			}

			path, err := export.Write(workouts, f, app.Config.Export.Dir, out)
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{"path": path, "count": len(workouts)}).Info("workouts exported")
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d workouts to %s\n", len(workouts), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Export format: csv or json")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: export dir with a timestamped name)")

	return cmd
}
