package catmap

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for negative iteration counts and malformed grids.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotBijective is returned when the map does not permute a W×H lattice,
	// so no period exists.
	ErrNotBijective = errors.New("cat map is not a bijection on this grid")

	// ErrPeriodOverflow is returned when the period does not fit in an int.
	ErrPeriodOverflow = errors.New("cat map period overflows int")
)

// target returns the destination of (x, y) on a width×height lattice.
func target(x, y, width, height int) (int, int) {
	return (x + y) % width, (x + 2*y) % height
}

// Apply runs the cat map for the given number of rounds and returns a new grid.
// The input is never modified; zero rounds yield a copy.
func Apply(g *Grid, iterations int) (*Grid, error) {
	if iterations < 0 {
		return nil, fmt.Errorf("%w: iterations must be non-negative, got %d", ErrInvalidArgument, iterations)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	working := g.Clone()
	for i := 0; i < iterations; i++ {
		working = step(working)
	}
	return working, nil
}

// Step applies exactly one round.
func Step(g *Grid) (*Grid, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return step(g), nil
}

// step assumes a validated grid. When the map is not a bijection several
// sources land on the same cell; the last write in x-major order wins and
// cells nobody writes stay zero.
func step(g *Grid) *Grid {
	next := &Grid{Width: g.Width, Height: g.Height, Pix: make([]Pixel, len(g.Pix))}
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			nx, ny := target(x, y, g.Width, g.Height)
			next.Set(nx, ny, g.At(x, y))
		}
	}
	return next
}
