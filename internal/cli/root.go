// Package cli implements the catmap command line.
//
// Running catmap with no subcommand opens the viewer window. The apply
// subcommand transforms an image without a display, and period reports
// the cat map period of a grid size.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"arnold-cat-map/internal/config"
)

const (
	AppName    = "Arnold Cat Map"
	AppID      = "com.example.arnold-cat-map"
	AppVersion = "1.0.0"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	imagePath  string
	debug      bool

	cfg    config.Config
	logger *logrus.Logger
}

// Execute runs the root command, cancelling on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&options{})
}

func newRootCommand(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:          "catmap",
		Short:        "Scramble an image with the Arnold Cat Map",
		Version:      AppVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file")
	flags.StringVarP(&opts.imagePath, "image", "i", "", "image to load (overrides image_path)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newGUICommand(opts),
		newApplyCommand(opts),
		newPeriodCommand(),
	)
	return root
}

// load reads the config file and applies flag overrides.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("image") {
		cfg.ImagePath = o.imagePath
	}
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}

	o.cfg = cfg
	o.logger = initLogger(cmd.ErrOrStderr(), cfg.Debug)
	o.logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": cfg.Debug,
		"command":    cmd.Name(),
	}).Debug("Configuration loaded")
	return nil
}
