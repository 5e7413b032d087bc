// Main application window wiring the preview pipeline to the widgets
package gui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"interpolation-preview/internal/config"
	"interpolation-preview/internal/core"
	"interpolation-preview/internal/io"
	"interpolation-preview/internal/resample"
	"interpolation-preview/internal/transform"
)

// Application represents the main application window
type Application struct {
	app       fyne.App
	window    fyne.Window
	logger    *logrus.Logger
	debugMode bool
	cfg       config.Config

	// Core components
	imageData     *core.ImageData
	regionManager *core.RegionManager
	pipeline      *core.PreviewPipeline
	loader        *io.ImageLoader

	// GUI components
	canvas      *InteractiveCanvas
	controls    *ControlPanel
	results     *ResultsPanel
	menuHandler *MenuHandler

	mainContent *container.Split
	statusCard  *widget.Card
	statusLabel *widget.Label

	// last delivered preview, only touched on the Fyne thread
	lastPreview *core.Preview
}

func NewApplication(app fyne.App, cfg config.Config, logger *logrus.Logger, debugMode bool) (*Application, error) {
	window := app.NewWindow("Interpolation Preview")
	window.Resize(fyne.NewSize(1600, 1000))
	window.CenterOnScreen()

	a := &Application{
		app:       app,
		window:    window,
		logger:    logger,
		debugMode: debugMode,
		cfg:       cfg,
	}

	if err := a.initializeCore(); err != nil {
		return nil, err
	}
	a.initializeGUI()
	a.setupLayout()
	a.setupCallbacks()

	return a, nil
}

func (a *Application) initializeCore() error {
	tr, err := transform.New(a.cfg.Transform.Backend)
	if err != nil {
		return fmt.Errorf("transform backend: %w", err)
	}

	a.imageData = core.NewImageData()
	a.regionManager = core.NewRegionManager()
	a.pipeline = core.NewPreviewPipeline(a.imageData, a.regionManager, tr, a.cfg, a.logger)
	a.loader = io.NewImageLoader(a.logger)
	return nil
}

func (a *Application) initializeGUI() {
	a.canvas = NewInteractiveCanvas(a.imageData, a.regionManager, a.logger)
	a.controls = NewControlPanel(a.pipeline, a.logger)
	a.results = NewResultsPanel()
	a.menuHandler = NewMenuHandler(a.window, a.imageData, a.loader, a.logger, a.debugMode)
}

func (a *Application) setupLayout() {
	a.statusLabel = widget.NewLabel("Open an image to compare interpolation methods")
	a.statusLabel.Wrapping = fyne.TextWrapWord
	a.statusCard = widget.NewCard("Status", "", a.statusLabel)

	left := container.NewVSplit(
		widget.NewCard("Source", "Drag to select the region to magnify", a.canvas),
		container.NewVScroll(a.controls.GetContainer()),
	)
	left.SetOffset(0.6)

	right := container.NewBorder(nil, a.statusCard, nil, nil, a.results.GetContainer())

	a.mainContent = container.NewHSplit(left, right)
	a.mainContent.SetOffset(0.4)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(a.mainContent)
}

func (a *Application) setupCallbacks() {
	a.pipeline.SetCallbacks(
		func(preview *core.Preview) {
			fyne.Do(func() {
				a.lastPreview = preview
				a.results.Update(preview)
				a.updateStatusMessage(fmt.Sprintf("Region %dx%d magnified to %dx%d in %s",
					preview.Input.Width(), preview.Input.Height(),
					preview.Input.Width()*2, preview.Input.Height()*2,
					preview.Duration.Round(time.Millisecond)))
			})
		},
		func(err error) {
			fyne.Do(func() {
				a.lastPreview = nil
				a.results.Clear()
				a.showError("Processing Error", err)
			})
		},
	)

	a.pipeline.SetTransformedCallback(func(transformed *resample.Buffer) {
		fyne.Do(func() {
			a.canvas.UpdateImage(transformed)
		})
	})

	a.menuHandler.SetCallbacks(
		func(path string) {
			fyne.Do(func() {
				a.regionManager.ClearAll()
				a.lastPreview = nil
				a.canvas.UpdateImage(a.imageData.GetOriginal())
				a.results.Clear()
				a.controls.Enable()
				a.updateStatusMessage(fmt.Sprintf("Loaded: %s", path))
				a.pipeline.Trigger()
			})
		},
		a.comparison,
		func(path string) {
			fyne.Do(func() {
				a.updateStatusMessage(fmt.Sprintf("Saved: %s", path))
			})
		},
	)
	a.menuHandler.SetTimingsSource(a.pipeline.Debugger())

	a.controls.SetClearSelectionCallback(a.clearSelection)
	a.menuHandler.SetClearSelectionCallback(a.clearSelection)

	a.canvas.SetSelectionChangedCallback(func(hasSelection bool) {
		if hasSelection {
			if sel := a.regionManager.GetActiveSelection(); sel != nil {
				a.updateStatusMessage(fmt.Sprintf("Region %s selected", sel.Bounds))
			}
		}
		a.pipeline.Trigger()
	})
}

// comparison returns the side-by-side composite of the last preview.
func (a *Application) comparison() (*resample.Buffer, error) {
	if a.lastPreview == nil {
		return nil, fmt.Errorf("no preview to export: %w", core.ErrNoImage)
	}
	return a.lastPreview.Composite()
}

func (a *Application) clearSelection() {
	a.regionManager.ClearAll()
	a.canvas.RefreshSelections()
	a.updateStatusMessage("Selection cleared")
	a.pipeline.Trigger()
}

func (a *Application) updateStatusMessage(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

// LoadImageFromPath loads path before the window is shown.
func (a *Application) LoadImageFromPath(path string) error {
	buf, err := a.loader.Open(path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	if err := a.imageData.SetOriginal(buf, path); err != nil {
		return fmt.Errorf("invalid image: %w", err)
	}

	a.canvas.UpdateImage(buf)
	a.controls.Enable()
	a.updateStatusMessage(fmt.Sprintf("Loaded: %s", path))
	a.pipeline.Trigger()
	return nil
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.pipeline.Stop()
	if a.debugMode {
		a.pipeline.Debugger().LogSummary()
	}
	a.imageData.Clear()
	a.regionManager.ClearAll()
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
	a.updateStatusMessage(fmt.Sprintf("Error: %s", err.Error()))
}
