package cli

import (
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"

	"arnold-cat-map/internal/gui"
	"arnold-cat-map/internal/io"
)

func newGUICommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the viewer window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}
}

func runGUI(opts *options) error {
	opts.logger.Info("Starting Arnold Cat Map viewer")

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.DocumentIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	mainApp := gui.NewApplication(myApp, io.NewImageLoader(opts.logger), opts.cfg, opts.logger)
	mainApp.Start()
	mainApp.ShowAndRun()

	opts.logger.Info("Application shutting down gracefully")
	return nil
}
