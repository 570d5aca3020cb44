// Package catmap implements the discrete Arnold Cat Map on rectangular pixel grids.
//
// The map sends every coordinate (x, y) of a W×H grid to
//
//	((x + y) mod W, (x + 2y) mod H)
//
// and copies the pixel found there. Apply repeats that round a given number
// of times and always returns freshly allocated storage.
package catmap

import (
	"fmt"
	"image"
	"image/color"
)

// Pixel is a packed 24-bit RGB sample (0xRRGGBB).
type Pixel uint32

// RGB packs three 8-bit channels into a Pixel.
func RGB(r, g, b uint8) Pixel {
	return Pixel(r)<<16 | Pixel(g)<<8 | Pixel(b)
}

// Channels unpacks the red, green and blue components.
func (p Pixel) Channels() (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// Grid is a row-major W×H array of pixels: Pix[y*Width+x].
type Grid struct {
	Width  int
	Height int
	Pix    []Pixel
}

// NewGrid allocates a zeroed grid.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: grid dimensions %dx%d", ErrInvalidArgument, width, height)
	}
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, width*height),
	}, nil
}

// At returns the pixel at (x, y).
func (g *Grid) At(x, y int) Pixel {
	return g.Pix[y*g.Width+x]
}

// Set stores p at (x, y).
func (g *Grid) Set(x, y int, p Pixel) {
	g.Pix[y*g.Width+x] = p
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	pix := make([]Pixel, len(g.Pix))
	copy(pix, g.Pix)
	return &Grid{Width: g.Width, Height: g.Height, Pix: pix}
}

// Equal reports whether both grids have the same dimensions and content.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.Width != other.Width || g.Height != other.Height || len(g.Pix) != len(other.Pix) {
		return false
	}
	for i := range g.Pix {
		if g.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// Validate checks dimensions and backing storage.
func (g *Grid) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidArgument)
	}
	if g.Width < 1 || g.Height < 1 {
		return fmt.Errorf("%w: grid dimensions %dx%d", ErrInvalidArgument, g.Width, g.Height)
	}
	if len(g.Pix) != g.Width*g.Height {
		return fmt.Errorf("%w: grid has %d pixels, want %d", ErrInvalidArgument, len(g.Pix), g.Width*g.Height)
	}
	return nil
}

// FromImage converts any image into a grid. Alpha is discarded.
func FromImage(img image.Image) (*Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}
	b := img.Bounds()
	g, err := NewGrid(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			r, gr, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			g.Set(x, y, RGB(uint8(r>>8), uint8(gr>>8), uint8(bl>>8)))
		}
	}
	return g, nil
}

// ToImage renders the grid as an opaque RGBA image.
func (g *Grid) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			r, gr, b := g.At(x, y).Channels()
			img.SetRGBA(x, y, color.RGBA{R: r, G: gr, B: b, A: 0xff})
		}
	}
	return img
}
