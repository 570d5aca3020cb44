package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"arnold-cat-map/internal/catmap"
)

func newPeriodCommand() *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "period WIDTH [HEIGHT]",
		Short: "Print the cat map period for a grid size",
		Long: `Print the smallest number of rounds after which every image of the
given size returns to its original arrangement. HEIGHT defaults to WIDTH.

With --iterations, also print how many rounds that count actually needs.`,
		Example: `  catmap period 512
  catmap period 256 -n 1000000`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, height, err := parseSize(args)
			if err != nil {
				return err
			}

			p, err := catmap.Period(width, height)
			if errors.Is(err, catmap.ErrNotBijective) {
				fmt.Fprintf(cmd.OutOrStdout(), "%dx%d: no period, the map is not a bijection on this size\n", width, height)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%dx%d: period %d\n", width, height, p)
			if cmd.Flags().Changed("iterations") {
				if iterations < 0 {
					return fmt.Errorf("%w: iterations must be non-negative, got %d", catmap.ErrInvalidArgument, iterations)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d iterations reduce to %d\n",
					iterations, catmap.Reduce(width, height, iterations))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "also print the rounds needed for this count")
	return cmd
}

func parseSize(args []string) (int, int, error) {
	width, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width %q", args[0])
	}
	height := width
	if len(args) == 2 {
		if height, err = strconv.Atoi(args[1]); err != nil {
			return 0, 0, fmt.Errorf("invalid height %q", args[1])
		}
	}
	return width, height, nil
}
