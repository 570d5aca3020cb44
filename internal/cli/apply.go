package cli

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"arnold-cat-map/internal/core"
	"arnold-cat-map/internal/io"
)

func newApplyCommand(opts *options) *cobra.Command {
	var (
		iterations   int
		out          string
		reducePeriod bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Transform an image and write the result",
		Example: `  catmap apply --image tsubaki.jpg -n 5 -o scrambled.png
  catmap apply -c catmap.toml -n 1000000 --reduce-period -o out.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("iterations") {
				iterations = opts.cfg.Iterations
			}
			if cmd.Flags().Changed("reduce-period") {
				opts.cfg.ReducePeriod = reducePeriod
			}
			return runApply(cmd, opts, iterations, out)
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 1, "number of cat map rounds")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image path")
	cmd.Flags().BoolVar(&reducePeriod, "reduce-period", false, "fold the count modulo the grid period")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runApply(cmd *cobra.Command, opts *options, iterations int, out string) error {
	if opts.cfg.ImagePath == "" {
		return fmt.Errorf("no image given: use --image or image_path in the config")
	}

	loader := io.NewImageLoader(opts.logger)
	grid, err := loader.Load(opts.cfg.ImagePath)
	if err != nil {
		return err
	}

	data := core.NewImageData()
	if err := data.SetOriginal(grid, opts.cfg.ImagePath); err != nil {
		return err
	}

	processor := core.NewProcessor(data, opts.logger, core.ProcessorOptions{
		ReducePeriod: opts.cfg.ReducePeriod,
	})
	res, err := processor.Run(cmd.Context(), iterations)
	if err != nil {
		return err
	}

	if err := loader.Save(res.Grid, out); err != nil {
		return err
	}

	report := res.Report
	fields := logrus.Fields{
		"output":     out,
		"iterations": res.Iterations,
		"rounds":     res.Rounds,
		"scramble":   math.Round(report.Scramble*10) / 10,
		"level":      report.Level,
	}
	for name, value := range report.Metrics {
		if !math.IsInf(value, 0) {
			fields[name] = value
		}
	}
	opts.logger.WithFields(fields).Info("Transform written")
	return nil
}
