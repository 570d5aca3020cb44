// internal/gui/menu.go
// File and help menus with open/save dialogs
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

type MenuHandler struct {
	window     fyne.Window
	logger     logrus.FieldLogger
	extensions []string

	onOpen func(path string)
	onSave func(path string)
}

func NewMenuHandler(window fyne.Window, logger logrus.FieldLogger, extensions []string) *MenuHandler {
	return &MenuHandler{
		window:     window,
		logger:     logger,
		extensions: extensions,
	}
}

func (mh *MenuHandler) SetCallbacks(onOpen, onSave func(path string)) {
	mh.onOpen = onOpen
	mh.onSave = onSave
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open...", mh.OpenImage),
		fyne.NewMenuItem("Save result...", mh.SaveImage),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)
	return fyne.NewMainMenu(fileMenu, helpMenu)
}

func (mh *MenuHandler) OpenImage() {
	mh.logger.Info("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mh.window)
			return
		}
		if reader == nil {
			return // cancelled
		}
		path := reader.URI().Path()
		reader.Close()

		mh.logger.WithField("filepath", path).Info("Image selected")
		if mh.onOpen != nil {
			mh.onOpen(path)
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(mh.extensions))
	fileDialog.Show()
}

func (mh *MenuHandler) SaveImage() {
	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mh.window)
			return
		}
		if writer == nil {
			return // cancelled
		}
		// The codec writes by path, so release fyne's handle first.
		path := writer.URI().Path()
		writer.Close()

		if mh.onSave != nil {
			mh.onSave(path)
		}
	}, mh.window)

	fileDialog.SetFileName("catmap.png")
	fileDialog.SetFilter(storage.NewExtensionFileFilter(mh.extensions))
	fileDialog.Show()
}

func (mh *MenuHandler) showAbout() {
	content := widget.NewLabel(
		"Arnold Cat Map Processor\n\n" +
			"Applies (x, y) -> (x + y mod W, x + 2y mod H)\n" +
			"to every pixel, the chosen number of times.")
	dialog.NewCustom("About", "Close", content, mh.window).Show()
}
