// internal/gui/control_panel.go
// Iterations entry, action buttons and status line
package gui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type ControlPanel struct {
	container *fyne.Container

	iterationsEntry *widget.Entry
	transformBtn    *widget.Button
	saveBtn         *widget.Button
	progress        *widget.ProgressBar
	statusLabel     *widget.Label
	periodLabel     *widget.Label

	// Callbacks
	onTransform func(text string)
	onSave      func()
}

func NewControlPanel(initialIterations int) *ControlPanel {
	panel := &ControlPanel{}
	panel.initializeUI(initialIterations)
	return panel
}

func (cp *ControlPanel) initializeUI(initialIterations int) {
	cp.iterationsEntry = widget.NewEntry()
	cp.iterationsEntry.SetText(strconv.Itoa(initialIterations))
	cp.iterationsEntry.SetPlaceHolder("0")
	cp.iterationsEntry.OnSubmitted = func(text string) {
		cp.fireTransform()
	}

	cp.transformBtn = widget.NewButtonWithIcon("Transform", theme.MediaPlayIcon(), cp.fireTransform)
	cp.transformBtn.Importance = widget.HighImportance

	cp.saveBtn = widget.NewButtonWithIcon("Save result", theme.DocumentSaveIcon(), func() {
		if cp.onSave != nil {
			cp.onSave()
		}
	})
	cp.saveBtn.Disable()

	cp.progress = widget.NewProgressBar()
	cp.progress.Hide()
	cp.statusLabel = widget.NewLabel("Ready")
	cp.periodLabel = widget.NewLabel("")

	// Entry needs a fixed width inside an HBox
	entryBox := container.NewGridWrap(fyne.NewSize(90, cp.iterationsEntry.MinSize().Height), cp.iterationsEntry)

	cp.container = container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Iterations:"),
			entryBox,
			cp.transformBtn,
			cp.saveBtn,
		),
		cp.progress,
		container.NewHBox(cp.statusLabel, widget.NewSeparator(), cp.periodLabel),
	)
}

func (cp *ControlPanel) fireTransform() {
	if cp.onTransform != nil {
		cp.onTransform(cp.iterationsEntry.Text)
	}
}

func (cp *ControlPanel) SetCallbacks(onTransform func(text string), onSave func()) {
	cp.onTransform = onTransform
	cp.onSave = onSave
}

func (cp *ControlPanel) SetStatus(message string) {
	cp.statusLabel.SetText(message)
}

func (cp *ControlPanel) SetPeriod(message string) {
	cp.periodLabel.SetText(message)
}

// SetBusy toggles the running state of the panel.
func (cp *ControlPanel) SetBusy(busy bool) {
	if busy {
		cp.progress.SetValue(0)
		cp.progress.Show()
		return
	}
	cp.progress.Hide()
}

func (cp *ControlPanel) SetProgress(fraction float64) {
	cp.progress.SetValue(fraction)
}

func (cp *ControlPanel) SetSaveEnabled(enabled bool) {
	if enabled {
		cp.saveBtn.Enable()
	} else {
		cp.saveBtn.Disable()
	}
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}
