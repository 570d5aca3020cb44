// internal/gui/center_panel.go
// Original and result image display
package gui

import (
	"fmt"
	"image"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"arnold-cat-map/internal/catmap"
	"arnold-cat-map/internal/display"
)

type CenterPanel struct {
	thumbnailHeight int

	container *fyne.Container

	originalImage *canvas.Image
	resultImage   *canvas.Image
	originalCard  *widget.Card
	resultCard    *widget.Card
}

func NewCenterPanel(thumbnailHeight int) *CenterPanel {
	panel := &CenterPanel{thumbnailHeight: thumbnailHeight}
	panel.initializeUI()
	return panel
}

func (cp *CenterPanel) initializeUI() {
	placeholder := display.Placeholder(cp.thumbnailHeight, cp.thumbnailHeight)

	cp.originalImage = newThumbnail(placeholder, cp.thumbnailHeight)
	cp.resultImage = newThumbnail(placeholder, cp.thumbnailHeight)

	cp.originalCard = widget.NewCard("Original", "", cp.originalImage)
	cp.resultCard = widget.NewCard("Result", "", cp.resultImage)

	// Stacked vertically, original on top
	cp.container = container.NewPadded(container.NewGridWithRows(2, cp.originalCard, cp.resultCard))
}

func newThumbnail(img image.Image, height int) *canvas.Image {
	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	c.SetMinSize(fyne.NewSize(float32(height), float32(height)))
	return c
}

// UpdateOriginal shows grid in the original panel and clears the result.
func (cp *CenterPanel) UpdateOriginal(grid *catmap.Grid) {
	cp.originalImage.Image = display.ScaleToHeight(grid.ToImage(), cp.thumbnailHeight)
	cp.originalImage.Refresh()
	cp.originalCard.SetSubTitle(fmt.Sprintf("%dx%d", grid.Width, grid.Height))
	cp.ClearResult()
}

// UpdateResult shows grid in the result panel.
func (cp *CenterPanel) UpdateResult(grid *catmap.Grid, iterations int) {
	cp.resultImage.Image = display.ScaleToHeight(grid.ToImage(), cp.thumbnailHeight)
	cp.resultImage.Refresh()
	cp.resultCard.SetSubTitle(iterationsLabel(iterations))
}

func (cp *CenterPanel) ClearResult() {
	cp.resultImage.Image = display.Placeholder(cp.thumbnailHeight, cp.thumbnailHeight)
	cp.resultImage.Refresh()
	cp.resultCard.SetSubTitle("")
}

// OriginalError replaces the original panel with an error note.
func (cp *CenterPanel) OriginalError(message string) {
	cp.originalCard.SetSubTitle(message)
}

func (cp *CenterPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}

func iterationsLabel(n int) string {
	if n == 1 {
		return "1 iteration"
	}
	return strconv.Itoa(n) + " iterations"
}
