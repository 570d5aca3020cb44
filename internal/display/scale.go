// Package display prepares images for on-screen panels.
package display

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// ScaleToHeight resizes img to the given height, keeping its aspect ratio.
// The width is truncated and never drops below one pixel.
func ScaleToHeight(img image.Image, height int) *image.RGBA {
	if height < 1 {
		height = 1
	}
	b := img.Bounds()
	width := 1
	if b.Dy() > 0 {
		width = int(float64(b.Dx()) * float64(height) / float64(b.Dy()))
	}
	if width < 1 {
		width = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Placeholder is a flat light-grey image for empty panels.
func Placeholder(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{245, 245, 245, 255}}, image.Point{}, draw.Src)
	return img
}
