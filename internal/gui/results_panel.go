// Grid of magnified results with quality metrics
package gui

import (
	"fmt"
	"image"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"interpolation-preview/internal/algorithms"
	"interpolation-preview/internal/core"
)

type resultView struct {
	card    *widget.Card
	image   *canvas.Image
	metrics *widget.Label
}

// ResultsPanel shows one tile per registered algorithm, two per row.
type ResultsPanel struct {
	container *fyne.Container
	views     map[string]*resultView
}

func NewResultsPanel() *ResultsPanel {
	rp := &ResultsPanel{views: make(map[string]*resultView)}

	grid := container.NewGridWithColumns(2)
	for _, id := range algorithms.Names() {
		alg, _ := algorithms.Get(id)

		img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
		img.FillMode = canvas.ImageFillContain
		img.ScaleMode = canvas.ImageScalePixels
		img.SetMinSize(fyne.NewSize(240, 240))

		metrics := widget.NewLabel("")
		view := &resultView{
			card:    widget.NewCard(alg.GetName(), alg.GetDescription(), container.NewBorder(nil, metrics, nil, nil, img)),
			image:   img,
			metrics: metrics,
		}
		rp.views[id] = view
		grid.Add(view.card)
	}

	rp.container = grid
	return rp
}

func (rp *ResultsPanel) GetContainer() fyne.CanvasObject {
	return rp.container
}

// Update shows preview. Must run on the Fyne thread.
func (rp *ResultsPanel) Update(preview *core.Preview) {
	for _, r := range preview.Results {
		view, ok := rp.views[r.ID]
		if !ok {
			continue
		}
		view.image.Image = r.Output.ToImage()
		view.image.Refresh()
		view.metrics.SetText(formatMetrics(r))
	}
}

func (rp *ResultsPanel) Clear() {
	for _, view := range rp.views {
		view.image.Image = image.NewRGBA(image.Rect(0, 0, 1, 1))
		view.image.Refresh()
		view.metrics.SetText("")
	}
}

func formatMetrics(r core.Result) string {
	psnr, ok := r.Metrics["psnr"]
	if !ok {
		return fmt.Sprintf("%dx%d", r.Output.Width(), r.Output.Height())
	}
	if math.IsInf(psnr, 1) {
		return fmt.Sprintf("%dx%d  baseline", r.Output.Width(), r.Output.Height())
	}
	return fmt.Sprintf("%dx%d  PSNR %.2f dB  SSIM %.4f  sharpness %.2f",
		r.Output.Width(), r.Output.Height(), psnr, r.Metrics["ssim"], r.Metrics["sharpness"])
}
