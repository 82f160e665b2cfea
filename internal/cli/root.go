package cli

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/stride/internal/config"
	"github.com/sadopc/stride/internal/logging"
	"github.com/sadopc/stride/internal/store"
	"github.com/sadopc/stride/internal/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// App holds the resources shared by all commands. Fields left nil are
// opened from the configuration before a command runs.
type App struct {
	ConfigPath string
	Config     *config.Config
	Store      *store.Store

	// RunTUI starts the interactive planner. Defaults to the Bubble Tea program.
	RunTUI func(app *App) error

	closers []io.Closer
}

// NewRootCmd creates the top-level "stride" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "stride",
		Short:         "Running workout planner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			run := app.RunTUI
			if run == nil {
				run = runTUI
			}
			return run(app)
		},
	}

	root.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "config file (default ~/.config/stride/config.yaml)")

	root.AddCommand(
		newExportCmd(app),
		newStatsCmd(app),
		newTemplatesCmd(app),
	)

	return root
}

func (a *App) open() error {
	if a.Config == nil {
		path := a.ConfigPath
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
			path = p
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		a.Config = cfg

		logCloser, err := logging.Setup(logging.Params{
			FileName:   cfg.Log.File,
			Level:      cfg.Log.Level,
			FormatJSON: cfg.Log.JSON,
		})
		if err != nil {
			return fmt.Errorf("setup logging: %w", err)
		}
		a.closers = append(a.closers, logCloser)
	}

	if a.Store == nil {
		s, err := store.New(a.Config.Database.Path)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		a.Store = s
		a.closers = append(a.closers, s)
		logrus.WithField("path", a.Config.Database.Path).Debug("database opened")
	}
	return nil
}

// Close releases what open acquired, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func runTUI(app *App) error {
	p := tea.NewProgram(tui.NewApp(app.Store, app.Config.Export.Dir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
