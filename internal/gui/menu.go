// Menu handler for application actions
package gui

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"interpolation-preview/internal/core"
	"interpolation-preview/internal/io"
	"interpolation-preview/internal/resample"
)

// MenuHandler handles menu actions
type MenuHandler struct {
	window    fyne.Window
	imageData *core.ImageData
	loader    *io.ImageLoader
	logger    *logrus.Logger
	debugMode bool
	timings   *core.PipelineDebugger

	onImageLoaded    func(string)
	comparison       func() (*resample.Buffer, error)
	onImageSaved     func(string)
	onClearSelection func()
}

func NewMenuHandler(window fyne.Window, imageData *core.ImageData, loader *io.ImageLoader, logger *logrus.Logger, debugMode bool) *MenuHandler {
	return &MenuHandler{
		window:    window,
		imageData: imageData,
		loader:    loader,
		logger:    logger,
		debugMode: debugMode,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mh.openImage),
		fyne.NewMenuItem("Export Comparison...", mh.exportComparison),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Clear Selection", func() {
			if mh.onClearSelection != nil {
				mh.onClearSelection()
			}
		}),
	)

	helpItems := []*fyne.MenuItem{fyne.NewMenuItem("About", mh.showAbout)}
	if mh.debugMode {
		helpItems = append(helpItems, fyne.NewMenuItem("Pipeline Timings", mh.showTimings))
	}
	helpMenu := fyne.NewMenu("Help", helpItems...)

	return fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
}

func (mh *MenuHandler) openImage() {
	mh.logger.Info("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		mh.logger.WithField("filepath", path).Info("Loading selected image")

		buf, _, err := io.Decode(reader)
		if errors.Is(err, image.ErrFormat) {
			buf, err = mh.loader.LoadImage(path)
		}
		if err != nil {
			mh.showError("Failed to Load Image", err)
			return
		}

		if err := mh.imageData.SetOriginal(buf, path); err != nil {
			mh.showError("Invalid Image", err)
			return
		}

		mh.logger.WithField("filepath", path).Info("Image loaded successfully")
		if mh.onImageLoaded != nil {
			mh.onImageLoaded(path)
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.GetSupportedExtensions()))
	fileDialog.Show()
}

func (mh *MenuHandler) exportComparison() {
	if mh.comparison == nil {
		return
	}
	composite, err := mh.comparison()
	if err != nil {
		mh.showError("Nothing to Export", err)
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}

		uri := writer.URI()
		mh.logger.WithField("filepath", uri.Path()).Info("Exporting comparison")

		if io.CanEncode(uri.Name()) {
			err = io.Encode(writer, composite, uri.Name())
			if cerr := writer.Close(); err == nil {
				err = cerr
			}
		} else {
			writer.Close()
			err = mh.loader.SaveImage(composite, uri.Path())
		}
		if err != nil {
			mh.showError("Failed to Export", err)
			return
		}

		if mh.onImageSaved != nil {
			mh.onImageSaved(uri.Path())
		}
	}, mh.window)

	fileDialog.SetFileName("comparison.png")
	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.GetSupportedExtensions()))
	fileDialog.Show()
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Interpolation Preview"),
		widget.NewSeparator(),
		widget.NewLabel("Magnifies a selected region 2x with pixel"),
		widget.NewLabel("duplication, Mitchell-Netravali, cubic B-spline"),
		widget.NewLabel("and Lanczos, side by side."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne v2.6 and OpenCV"),
		widget.NewLabel("License: MIT"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(400, 260))
	aboutDialog.Show()
}

func (mh *MenuHandler) showTimings() {
	stats := mh.timings.Stats()
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		s := stats[name]
		fmt.Fprintf(&b, "%-10s runs %d  avg %s  max %s\n", name, s.Runs, s.Average(), s.Longest)
	}
	if b.Len() == 0 {
		b.WriteString("No runs yet")
	}
	dialog.ShowInformation("Pipeline Timings", b.String(), mh.window)
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.WithError(err).Error(title)
	dialog.ShowError(err, mh.window)
}

func (mh *MenuHandler) SetCallbacks(onImageLoaded func(string), comparison func() (*resample.Buffer, error), onImageSaved func(string)) {
	mh.onImageLoaded = onImageLoaded
	mh.comparison = comparison
	mh.onImageSaved = onImageSaved
}

func (mh *MenuHandler) SetClearSelectionCallback(fn func()) {
	mh.onClearSelection = fn
}

func (mh *MenuHandler) SetTimingsSource(pd *core.PipelineDebugger) {
	mh.timings = pd
}
