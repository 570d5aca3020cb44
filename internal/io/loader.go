// Image loading and saving through OpenCV
package io

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"arnold-cat-map/internal/catmap"
	"arnold-cat-map/internal/core"
)

var supportedFormats = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"}

// ImageLoader decodes image files into grids and encodes them back.
type ImageLoader struct {
	logger logrus.FieldLogger
}

func NewImageLoader(logger logrus.FieldLogger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// Load decodes the file at path as 8-bit color.
func (il *ImageLoader) Load(path string) (*catmap.Grid, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	if err := il.CheckFile(path); err != nil {
		return nil, err
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("failed to decode image: %s", path)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert image %s: %w", path, err)
	}
	grid, err := catmap.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image %s: %w", path, err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    grid.Width,
		"height":   grid.Height,
		"channels": mat.Channels(),
	}).Info("Image loaded successfully")

	return grid, nil
}

// Save encodes grid to path; the format follows the extension.
func (il *ImageLoader) Save(grid *catmap.Grid, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	if err := grid.Validate(); err != nil {
		return fmt.Errorf("cannot save image: %w", err)
	}
	if !isSupportedImageFormat(path) {
		return fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, path)
	}

	mat, err := gocv.ImageToMatRGB(grid.ToImage())
	if err != nil {
		return fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("failed to save image: %s", path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    grid.Width,
		"height":   grid.Height,
	}).Info("Image saved successfully")

	return nil
}

// CheckFile verifies the extension and that the file exists. A missing
// file reports its absolute path.
func (il *ImageLoader) CheckFile(path string) error {
	if !isSupportedImageFormat(path) {
		return fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, path)
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		return fmt.Errorf("%w: %s", core.ErrImageNotFound, abs)
	}
	if err != nil {
		return fmt.Errorf("cannot access image %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// SupportedExtensions returns the file extensions the loader accepts.
func (il *ImageLoader) SupportedExtensions() []string {
	out := make([]string, len(supportedFormats))
	copy(out, supportedFormats)
	return out
}

func isSupportedImageFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}
