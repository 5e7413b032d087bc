// Interactive canvas widget for crop rectangle selection
package gui

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"interpolation-preview/internal/core"
	"interpolation-preview/internal/resample"
)

var (
	selectionColor = color.RGBA{R: 255, G: 0, B: 0, A: 200}
	draggingColor  = color.RGBA{R: 0, G: 255, B: 0, A: 200}
)

// InteractiveCanvas displays the transformed source and lets the user drag
// a crop rectangle over it. Coordinates are in displayed-image pixels.
type InteractiveCanvas struct {
	widget.BaseWidget

	imageData     *core.ImageData
	regionManager *core.RegionManager
	logger        *logrus.Logger

	currentImage  *canvas.Image
	overlayRaster *canvas.Raster
	imageSize     image.Point

	isDrawing       bool
	startPoint      image.Point
	currentMousePos fyne.Position

	onSelectionChanged func(bool)
}

func NewInteractiveCanvas(imageData *core.ImageData, regionManager *core.RegionManager, logger *logrus.Logger) *InteractiveCanvas {
	ic := &InteractiveCanvas{
		imageData:     imageData,
		regionManager: regionManager,
		logger:        logger,
	}

	ic.currentImage = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	ic.currentImage.FillMode = canvas.ImageFillContain
	ic.currentImage.ScaleMode = canvas.ImageScalePixels
	ic.overlayRaster = canvas.NewRaster(ic.createOverlay)

	ic.ExtendBaseWidget(ic)
	return ic
}

func (ic *InteractiveCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &interactiveCanvasRenderer{
		image:   ic.currentImage,
		overlay: ic.overlayRaster,
	}
}

// UpdateImage replaces the displayed image
func (ic *InteractiveCanvas) UpdateImage(buf *resample.Buffer) {
	if buf.Empty() {
		return
	}
	ic.imageSize = image.Pt(buf.Width(), buf.Height())
	ic.currentImage.Image = buf.ToImage()
	ic.currentImage.Refresh()
	ic.overlayRaster.Refresh()
}

func (ic *InteractiveCanvas) MouseDown(event *desktop.MouseEvent) {
	if !ic.imageData.HasImage() || ic.imageSize == (image.Point{}) {
		return
	}

	ic.isDrawing = true
	ic.currentMousePos = event.Position
	ic.startPoint = ic.screenToImageCoords(event.Position)

	ic.logger.WithField("point", ic.startPoint).Debug("Mouse down in interactive canvas")
}

func (ic *InteractiveCanvas) MouseUp(event *desktop.MouseEvent) {
	if !ic.isDrawing {
		return
	}
	ic.currentMousePos = event.Position
	ic.finishSelection()
}

func (ic *InteractiveCanvas) Dragged(event *fyne.DragEvent) {
	if !ic.isDrawing {
		return
	}
	ic.currentMousePos = event.Position
	ic.overlayRaster.Refresh()
}

func (ic *InteractiveCanvas) DragEnd() {
	if !ic.isDrawing {
		return
	}
	ic.finishSelection()
}

func (ic *InteractiveCanvas) finishSelection() {
	ic.isDrawing = false

	rect := ic.currentRect()
	if !rect.Empty() {
		selectionID := ic.regionManager.CreateRectangleSelection(rect)
		ic.logger.WithFields(logrus.Fields{
			"selection_id": selectionID,
			"bounds":       rect,
		}).Debug("Created rectangle selection")
		ic.notifySelectionChanged(true)
	}
	ic.overlayRaster.Refresh()
}

// currentRect spans the drag start and the current pointer, inclusive of
// the pixel under the pointer.
func (ic *InteractiveCanvas) currentRect() image.Rectangle {
	end := ic.screenToImageCoords(ic.currentMousePos)
	r := image.Rectangle{Min: ic.startPoint, Max: end}.Canon()
	r.Max = r.Max.Add(image.Pt(1, 1))
	if r.Dx() < 2 && r.Dy() < 2 {
		return image.Rectangle{}
	}
	return r
}

// containTransform returns the scale and offset of an image of imageSize
// shown with ImageFillContain inside a w x h area.
func containTransform(imageSize image.Point, w, h float64) (scale, offsetX, offsetY float64) {
	scale = math.Min(w/float64(imageSize.X), h/float64(imageSize.Y))
	offsetX = (w - float64(imageSize.X)*scale) / 2
	offsetY = (h - float64(imageSize.Y)*scale) / 2
	return scale, offsetX, offsetY
}

func (ic *InteractiveCanvas) screenToImageCoords(screenPos fyne.Position) image.Point {
	if ic.imageSize == (image.Point{}) {
		return image.Point{}
	}
	size := ic.Size()
	scale, offsetX, offsetY := containTransform(ic.imageSize, float64(size.Width), float64(size.Height))

	imageX := (float64(screenPos.X) - offsetX) / scale
	imageY := (float64(screenPos.Y) - offsetY) / scale

	imageX = math.Max(0, math.Min(imageX, float64(ic.imageSize.X-1)))
	imageY = math.Max(0, math.Min(imageY, float64(ic.imageSize.Y-1)))

	return image.Point{X: int(imageX), Y: int(imageY)}
}

// createOverlay draws the active and in-progress rectangles. The raster is
// rendered in device pixels, so the widget size is rescaled to w x h.
func (ic *InteractiveCanvas) createOverlay(w, h int) image.Image {
	overlay := image.NewRGBA(image.Rect(0, 0, w, h))
	if ic.imageSize == (image.Point{}) {
		return overlay
	}

	if sel := ic.regionManager.GetActiveSelection(); sel != nil {
		ic.drawRectangleOverlay(overlay, sel.Bounds, selectionColor, w, h)
	}
	if ic.isDrawing {
		if r := ic.currentRect(); !r.Empty() {
			ic.drawRectangleOverlay(overlay, r, draggingColor, w, h)
		}
	}
	return overlay
}

func (ic *InteractiveCanvas) drawRectangleOverlay(overlay *image.RGBA, rect image.Rectangle, col color.RGBA, w, h int) {
	scale, offsetX, offsetY := containTransform(ic.imageSize, float64(w), float64(h))
	screen := image.Rect(
		int(float64(rect.Min.X)*scale+offsetX),
		int(float64(rect.Min.Y)*scale+offsetY),
		int(float64(rect.Max.X)*scale+offsetX)-1,
		int(float64(rect.Max.Y)*scale+offsetY)-1,
	)

	for x := screen.Min.X; x <= screen.Max.X; x++ {
		overlay.Set(x, screen.Min.Y, col)
		overlay.Set(x, screen.Max.Y, col)
	}
	for y := screen.Min.Y; y <= screen.Max.Y; y++ {
		overlay.Set(screen.Min.X, y, col)
		overlay.Set(screen.Max.X, y, col)
	}
}

func (ic *InteractiveCanvas) SetSelectionChangedCallback(callback func(bool)) {
	ic.onSelectionChanged = callback
}

func (ic *InteractiveCanvas) notifySelectionChanged(hasSelection bool) {
	if ic.onSelectionChanged != nil {
		ic.onSelectionChanged(hasSelection)
	}
}

func (ic *InteractiveCanvas) RefreshSelections() {
	ic.overlayRaster.Refresh()
}

type interactiveCanvasRenderer struct {
	image   *canvas.Image
	overlay *canvas.Raster
}

func (r *interactiveCanvasRenderer) Layout(size fyne.Size) {
	r.image.Resize(size)
	r.overlay.Resize(size)
}

func (r *interactiveCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *interactiveCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.image, r.overlay}
}

func (r *interactiveCanvasRenderer) Refresh() {
	r.image.Refresh()
	r.overlay.Refresh()
}

func (r *interactiveCanvasRenderer) Destroy() {}
