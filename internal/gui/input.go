// internal/gui/input.go
// Iteration input parsing and error-to-message translation
package gui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"arnold-cat-map/internal/catmap"
	"arnold-cat-map/internal/core"
)

// ErrNotANumber is returned when the iterations field is not an integer.
var ErrNotANumber = errors.New("not a number")

// ParseIterations parses the iterations field.
func ParseIterations(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, text)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: iterations must be non-negative, got %d", catmap.ErrInvalidArgument, n)
	}
	return n, nil
}

// userMessage turns an error into the text shown in dialogs.
func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotANumber):
		return "You must enter a valid number"
	case errors.Is(err, catmap.ErrInvalidArgument):
		return "The number must be non-negative"
	case errors.Is(err, core.ErrImageNotFound):
		return missingImageMessage(err)
	case errors.Is(err, core.ErrUnsupportedFormat):
		return "Unsupported image format.\nUse JPEG, PNG, TIFF or BMP."
	case errors.Is(err, core.ErrNoImage):
		return "Load an image first (File > Open)"
	default:
		return fmt.Sprintf("Error processing the image:\n%v", err)
	}
}

func missingImageMessage(err error) string {
	path := strings.TrimPrefix(err.Error(), core.ErrImageNotFound.Error()+": ")
	return "Image not found at:\n" + path +
		"\n\nPlease check that:\n" +
		"1. The image exists at that location\n" +
		"2. The file name is spelled exactly\n" +
		"3. The configured image_path or --image flag points to it"
}
