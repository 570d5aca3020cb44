package catmap

import (
	"fmt"
	"math"
)

// Bijective reports whether the map permutes the width×height lattice.
// Square grids always qualify; many rectangular ones do not.
func Bijective(width, height int) bool {
	if width < 1 || height < 1 {
		return false
	}
	seen := make([]bool, width*height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			nx, ny := target(x, y, width, height)
			idx := ny*width + nx
			if seen[idx] {
				return false
			}
			seen[idx] = true
		}
	}
	return true
}

// Period returns the smallest positive number of rounds that restores every
// width×height grid. It is the LCM of the cycle lengths of the coordinate
// permutation.
func Period(width, height int) (int, error) {
	if width < 1 || height < 1 {
		return 0, fmt.Errorf("%w: grid dimensions %dx%d", ErrInvalidArgument, width, height)
	}
	if !Bijective(width, height) {
		return 0, fmt.Errorf("%w: %dx%d", ErrNotBijective, width, height)
	}

	visited := make([]bool, width*height)
	period := 1
	for start := range visited {
		if visited[start] {
			continue
		}
		length := 0
		x, y := start%width, start/width
		for !visited[y*width+x] {
			visited[y*width+x] = true
			x, y = target(x, y, width, height)
			length++
		}

		var err error
		if period, err = lcm(period, length); err != nil {
			return 0, fmt.Errorf("%dx%d: %w", width, height, err)
		}
	}
	return period, nil
}

// Reduce folds iterations modulo the grid period. Counts for grids without a
// period, and negative counts, are returned unchanged.
func Reduce(width, height, iterations int) int {
	if iterations <= 0 {
		return iterations
	}
	p, err := Period(width, height)
	if err != nil {
		return iterations
	}
	return iterations % p
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) (int, error) {
	q := a / gcd(a, b)
	if q > math.MaxInt/b {
		return 0, ErrPeriodOverflow
	}
	return q * b, nil
}
