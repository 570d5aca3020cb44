// Core image state shared by the GUI and the command line
package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"arnold-cat-map/internal/catmap"
)

var (
	// ErrNoImage is returned when an operation needs a loaded image.
	ErrNoImage = errors.New("no image loaded")
	// ErrImageNotFound is returned when the image file does not exist.
	ErrImageNotFound = errors.New("image not found")
	// ErrUnsupportedFormat is returned for extensions the codec does not handle.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// maxDimension bounds either side of an accepted image.
const maxDimension = 16384

// ImageData holds the original grid and the last transform result.
type ImageData struct {
	mu         sync.RWMutex
	original   *catmap.Grid
	result     *catmap.Grid
	iterations int
	filepath   string
	metadata   ImageMetadata

	// period is cached per grid size; it depends on nothing else.
	period periodCache
}

type periodCache struct {
	width, height int
	value         int
	err           error
	valid         bool
}

// ImageMetadata contains image information
type ImageMetadata struct {
	Width  int
	Height int
	Format string
}

func NewImageData() *ImageData {
	return &ImageData{}
}

// SetOriginal replaces the source image and clears any previous result.
func (img *ImageData) SetOriginal(grid *catmap.Grid, path string) error {
	if err := ValidateGrid(grid); err != nil {
		return err
	}

	img.mu.Lock()
	defer img.mu.Unlock()

	img.original = grid.Clone()
	img.result = nil
	img.iterations = 0
	img.filepath = path
	img.metadata = ImageMetadata{
		Width:  grid.Width,
		Height: grid.Height,
		Format: getFormatFromPath(path),
	}
	return nil
}

// SetResult records the grid produced by the given number of rounds.
func (img *ImageData) SetResult(grid *catmap.Grid, iterations int) error {
	img.mu.Lock()
	defer img.mu.Unlock()

	if img.original == nil {
		return ErrNoImage
	}
	if grid == nil || grid.Width != img.original.Width || grid.Height != img.original.Height {
		return fmt.Errorf("result does not match original dimensions %dx%d",
			img.original.Width, img.original.Height)
	}

	img.result = grid.Clone()
	img.iterations = iterations
	return nil
}

// GetOriginal returns a copy of the original grid, or nil.
func (img *ImageData) GetOriginal() *catmap.Grid {
	img.mu.RLock()
	defer img.mu.RUnlock()

	if img.original == nil {
		return nil
	}
	return img.original.Clone()
}

// GetResult returns a copy of the last result and the rounds that produced it.
func (img *ImageData) GetResult() (*catmap.Grid, int) {
	img.mu.RLock()
	defer img.mu.RUnlock()

	if img.result == nil {
		return nil, 0
	}
	return img.result.Clone(), img.iterations
}

func (img *ImageData) HasImage() bool {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.original != nil
}

func (img *ImageData) HasResult() bool {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.result != nil
}

func (img *ImageData) GetMetadata() ImageMetadata {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.metadata
}

func (img *ImageData) GetFilepath() string {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.filepath
}

// Clear drops all image data
func (img *ImageData) Clear() {
	img.mu.Lock()
	defer img.mu.Unlock()

	img.original = nil
	img.result = nil
	img.iterations = 0
	img.filepath = ""
	img.metadata = ImageMetadata{}
	img.period = periodCache{}
}

// Period returns the cat map period for the size of the original image. The
// first call for a given size walks the whole permutation; later calls, and
// reloads of images with the same size, reuse the cached value.
func (img *ImageData) Period() (int, error) {
	img.mu.RLock()
	if img.original == nil {
		img.mu.RUnlock()
		return 0, ErrNoImage
	}
	width, height := img.original.Width, img.original.Height
	cached := img.period
	img.mu.RUnlock()

	if cached.valid && cached.width == width && cached.height == height {
		return cached.value, cached.err
	}

	value, err := catmap.Period(width, height)

	img.mu.Lock()
	img.period = periodCache{width: width, height: height, value: value, err: err, valid: true}
	img.mu.Unlock()
	return value, err
}

// ReducedRounds folds iterations modulo the period of the original. Counts
// for sizes without a usable period are returned unchanged.
func (img *ImageData) ReducedRounds(iterations int) int {
	if iterations <= 0 {
		return iterations
	}
	p, err := img.Period()
	if err != nil {
		return iterations
	}
	return iterations % p
}

func getFormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}

// ValidateGrid checks a decoded grid against basic size limits.
func ValidateGrid(grid *catmap.Grid) error {
	if err := grid.Validate(); err != nil {
		return err
	}
	if grid.Width > maxDimension || grid.Height > maxDimension {
		return fmt.Errorf("image too large: %dx%d (max: %d)", grid.Width, grid.Height, maxDimension)
	}
	return nil
}
