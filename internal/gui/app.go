// Main window wiring the image panels, controls and transform processor
package gui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"github.com/sirupsen/logrus"

	"arnold-cat-map/internal/catmap"
	"arnold-cat-map/internal/config"
	"arnold-cat-map/internal/core"
	"arnold-cat-map/internal/metrics"
)

const WindowTitle = "Arnold Cat Map Processor"

// ImageSource decodes and encodes images by path.
type ImageSource interface {
	Load(path string) (*catmap.Grid, error)
	Save(grid *catmap.Grid, path string) error
	SupportedExtensions() []string
}

// Application is the main window and its handlers. All error-to-message
// translation happens here.
type Application struct {
	app    fyne.App
	window fyne.Window
	logger logrus.FieldLogger
	cfg    config.Config

	// Core components
	source    ImageSource
	imageData *core.ImageData
	processor *core.Processor

	// GUI components
	centerPanel  *CenterPanel
	controlPanel *ControlPanel
	infoPanel    *InfoPanel
	menuHandler  *MenuHandler

	// Touched only on the UI goroutine. Each load and each transform bumps
	// its counter so late callbacks from older work are dropped.
	loadSeq      int
	transformSeq int
}

func NewApplication(app fyne.App, source ImageSource, cfg config.Config, logger logrus.FieldLogger) *Application {
	window := app.NewWindow(WindowTitle)
	window.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	window.CenterOnScreen()

	a := &Application{
		app:    app,
		window: window,
		logger: logger,
		cfg:    cfg,
		source: source,
	}

	a.initializeCore()
	a.initializeGUI()
	a.setupLayout()
	a.setupCallbacks()

	return a
}

func (a *Application) initializeCore() {
	a.imageData = core.NewImageData()
	a.processor = core.NewProcessor(a.imageData, a.logger, core.ProcessorOptions{
		ReducePeriod: a.cfg.ReducePeriod,
	})
}

func (a *Application) initializeGUI() {
	a.centerPanel = NewCenterPanel(a.cfg.ThumbnailHeight)
	a.controlPanel = NewControlPanel(a.cfg.Iterations)
	a.infoPanel = NewInfoPanel(metrics.NewEvaluator().GetMetricInfo())
	a.menuHandler = NewMenuHandler(a.window, a.logger, a.source.SupportedExtensions())
}

func (a *Application) setupLayout() {
	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(container.NewBorder(
		a.controlPanel.GetContainer(), // top
		a.infoPanel.GetContainer(),    // bottom
		nil,
		nil,
		a.centerPanel.GetContainer(),
	))
}

func (a *Application) setupCallbacks() {
	a.controlPanel.SetCallbacks(a.handleTransform, a.menuHandler.SaveImage)

	a.menuHandler.SetCallbacks(
		// onOpen
		func(path string) {
			if err := a.LoadImageFromPath(path); err != nil {
				a.showError("Failed to load image", err)
			}
		},
		// onSave
		func(path string) {
			if err := a.SaveResult(path); err != nil {
				a.showError("Failed to save image", err)
				return
			}
			a.showInfo("Image saved", fmt.Sprintf("Result saved to:\n%s", path))
		},
	)
}

// Start loads the configured image, if any. A failure is reported in a
// dialog and the window stays usable through File > Open.
func (a *Application) Start() {
	if a.cfg.ImagePath == "" {
		a.controlPanel.SetStatus("Open an image to begin (File > Open)")
		return
	}
	if err := a.LoadImageFromPath(a.cfg.ImagePath); err != nil {
		a.centerPanel.OriginalError("Error loading image")
		a.showError("Failed to load image", err)
	}
}

// LoadImageFromPath decodes path and shows it as the new original.
func (a *Application) LoadImageFromPath(path string) error {
	grid, err := a.source.Load(path)
	if err != nil {
		return err
	}
	if err := core.ValidateGrid(grid); err != nil {
		return fmt.Errorf("invalid image: %w", err)
	}
	if err := a.imageData.SetOriginal(grid, path); err != nil {
		return fmt.Errorf("failed to set image: %w", err)
	}

	a.centerPanel.UpdateOriginal(grid)
	a.infoPanel.Clear()
	a.controlPanel.SetSaveEnabled(false)
	a.refreshPeriod()
	a.controlPanel.SetStatus(fmt.Sprintf("Loaded %s", filepath.Base(path)))
	a.window.SetTitle(fmt.Sprintf("%s - %s", WindowTitle, filepath.Base(path)))

	a.logger.WithField("filepath", path).Info("Image loaded")
	return nil
}

// handleTransform runs on the UI goroutine when the button is pressed.
func (a *Application) handleTransform(text string) {
	iterations, err := ParseIterations(text)
	if err != nil {
		a.showError("Invalid iterations", err)
		return
	}
	if !a.imageData.HasImage() {
		a.showError("No image", core.ErrNoImage)
		return
	}

	// Re-read the source so the result always reflects the file on disk.
	if err := a.reloadOriginal(); err != nil {
		a.showError("Failed to load image", err)
		return
	}

	a.transformSeq++
	seq := a.transformSeq
	a.controlPanel.SetBusy(true)
	a.controlPanel.SetStatus(fmt.Sprintf("Applying %s...", iterationsLabel(iterations)))
	a.processor.SetProgressCallback(func(done, total int) {
		fyne.Do(func() {
			a.applyProgress(seq, done, total)
		})
	})
	a.processor.Start(iterations, func(res *core.Result, err error) {
		fyne.Do(func() {
			a.completeTransform(seq, res, err)
		})
	})
}

func (a *Application) applyProgress(seq, done, total int) {
	if seq != a.transformSeq || total == 0 {
		return
	}
	a.controlPanel.SetProgress(float64(done) / float64(total))
}

// completeTransform ignores results from transforms that a later click
// superseded.
func (a *Application) completeTransform(seq int, res *core.Result, err error) {
	if seq != a.transformSeq {
		return
	}
	a.finishTransform(res, err)
}

func (a *Application) reloadOriginal() error {
	path := a.imageData.GetFilepath()
	grid, err := a.source.Load(path)
	if err != nil {
		return err
	}
	current := a.imageData.GetOriginal()
	if current != nil && current.Equal(grid) {
		return nil
	}
	if err := a.imageData.SetOriginal(grid, path); err != nil {
		return err
	}
	a.centerPanel.UpdateOriginal(grid)
	a.infoPanel.Clear()
	a.controlPanel.SetSaveEnabled(false)
	a.refreshPeriod()
	return nil
}

// refreshPeriod computes the period of the current original off the UI
// goroutine. A result for an image that has since been replaced is dropped.
func (a *Application) refreshPeriod() {
	a.loadSeq++
	seq := a.loadSeq
	a.controlPanel.SetPeriod("Period: computing...")

	go func() {
		text := periodText(a.imageData.Period())
		fyne.Do(func() {
			if seq == a.loadSeq {
				a.controlPanel.SetPeriod(text)
			}
		})
	}()
}

func (a *Application) finishTransform(res *core.Result, err error) {
	a.controlPanel.SetBusy(false)
	if err != nil {
		a.showError("Transform failed", err)
		return
	}

	a.centerPanel.UpdateResult(res.Grid, res.Iterations)
	a.infoPanel.UpdateReport(res.Report)
	a.controlPanel.SetSaveEnabled(true)
	a.controlPanel.SetStatus(fmt.Sprintf("Done: %s in %s, %.0f%% displaced",
		iterationsLabel(res.Iterations), res.Duration.Round(time.Millisecond), res.Metrics["displaced"]*100))
}

// SaveResult writes the last result through the image source.
func (a *Application) SaveResult(path string) error {
	grid, _ := a.imageData.GetResult()
	if grid == nil {
		return errors.New("no transformed image to save")
	}
	if err := a.source.Save(grid, path); err != nil {
		return err
	}
	a.controlPanel.SetStatus(fmt.Sprintf("Saved %s", filepath.Base(path)))
	return nil
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})
	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.processor.Stop()
	a.processor.Wait()
	a.imageData.Clear()
}

func (a *Application) showError(title string, err error) {
	message := userMessage(err)
	a.logger.WithError(err).Error(title)
	dialog.ShowError(errors.New(message), a.window)
	a.controlPanel.SetStatus("Error: " + firstLine(message))
}

func (a *Application) showInfo(title, message string) {
	a.logger.WithField("message", message).Info(title)
	dialog.ShowInformation(title, message, a.window)
}

func periodText(p int, err error) string {
	switch {
	case errors.Is(err, core.ErrNoImage):
		return ""
	case errors.Is(err, catmap.ErrNotBijective):
		return "No period (map is not a bijection on this size)"
	case err != nil:
		return "Period: too large to compute"
	}
	return fmt.Sprintf("Period: %d", p)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
