// Control panel for view transform and kernel parameters
package gui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"interpolation-preview/internal/algorithms"
	"interpolation-preview/internal/core"
	"interpolation-preview/internal/resample"
)

const (
	minZoom = 0.25
	maxZoom = 4
)

type ControlPanel struct {
	pipeline *core.PreviewPipeline
	logger   *logrus.Logger

	container *fyne.Container

	zoomSlider     *widget.Slider
	rotationSlider *widget.Slider
	bSlider        *widget.Slider
	cSlider        *widget.Slider
	lanczosSelect  *widget.Select
	edgeSelect     *widget.Select
	clearButton    *widget.Button
	resetButton    *widget.Button

	onClearSelection func()
}

func NewControlPanel(pipeline *core.PreviewPipeline, logger *logrus.Logger) *ControlPanel {
	panel := &ControlPanel{
		pipeline: pipeline,
		logger:   logger,
	}

	panel.initializeUI()
	return panel
}

func (cp *ControlPanel) initializeUI() {
	view := cp.pipeline.View()

	var zoomRow, rotationRow *fyne.Container
	cp.zoomSlider, zoomRow = labelledSlider(minZoom, maxZoom, 0.25, view.Zoom, "%.2fx", func(v float64) {
		cp.pipeline.UpdateView(func(s *core.ViewState) { s.Zoom = v })
	})
	cp.rotationSlider, rotationRow = labelledSlider(-180, 180, 1, view.Rotation, "%.0f°", func(v float64) {
		cp.pipeline.UpdateView(func(s *core.ViewState) { s.Rotation = v })
	})

	cp.clearButton = widget.NewButton("Clear Selection", func() {
		if cp.onClearSelection != nil {
			cp.onClearSelection()
		}
	})
	cp.resetButton = widget.NewButton("Reset View", cp.resetView)

	viewCard := widget.NewCard("View", "Applied before cropping",
		container.NewVBox(
			widget.NewLabel("Zoom"), zoomRow,
			widget.NewLabel("Rotation"), rotationRow,
			container.NewGridWithColumns(2, cp.clearButton, cp.resetButton),
		))

	mitchellInfo := parameterInfo(algorithms.Mitchell)
	var bRow, cRow *fyne.Container
	bMin, bMax := paramRange(mitchellInfo["b"])
	cMin, cMax := paramRange(mitchellInfo["c"])
	cp.bSlider, bRow = labelledSlider(bMin, bMax, 0.01, view.MitchellB, "%.3f", func(v float64) {
		cp.pipeline.UpdateView(func(s *core.ViewState) { s.MitchellB = v })
	})
	cp.cSlider, cRow = labelledSlider(cMin, cMax, 0.01, view.MitchellC, "%.3f", func(v float64) {
		cp.pipeline.UpdateView(func(s *core.ViewState) { s.MitchellC = v })
	})

	lo, hi := paramRange(parameterInfo(algorithms.Lanczos)["a"])
	var radii []string
	for a := int(lo); a <= int(hi); a++ {
		radii = append(radii, strconv.Itoa(a))
	}
	cp.lanczosSelect = widget.NewSelect(radii, func(selected string) {
		a, err := strconv.Atoi(selected)
		if err != nil {
			return
		}
		cp.pipeline.UpdateView(func(s *core.ViewState) { s.LanczosA = a })
	})
	cp.lanczosSelect.SetSelected(strconv.Itoa(view.LanczosA))

	cp.edgeSelect = widget.NewSelect(edgeOptions(), func(selected string) {
		mode, err := resample.ParseEdgeMode(selected)
		if err != nil {
			cp.logger.WithError(err).Warn("Ignoring edge mode")
			return
		}
		cp.pipeline.UpdateView(func(s *core.ViewState) { s.Edge = mode })
	})
	cp.edgeSelect.SetSelected(view.Edge.String())

	kernelCard := widget.NewCard("Kernels", "",
		container.NewVBox(
			widget.NewLabel("Mitchell B: "+mitchellInfo["b"].Description), bRow,
			widget.NewLabel("Mitchell C: "+mitchellInfo["c"].Description), cRow,
			widget.NewForm(
				widget.NewFormItem("Lanczos a", cp.lanczosSelect),
				widget.NewFormItem("Edges", cp.edgeSelect),
			),
		))

	cp.container = container.NewVBox(viewCard, kernelCard)
	cp.Disable()
}

// resetView restores zoom and rotation; kernel settings are kept.
func (cp *ControlPanel) resetView() {
	cp.zoomSlider.SetValue(1)
	cp.rotationSlider.SetValue(0)
	cp.logger.Debug("View reset")
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}

func (cp *ControlPanel) SetClearSelectionCallback(fn func()) {
	cp.onClearSelection = fn
}

func (cp *ControlPanel) Enable() {
	for _, w := range cp.widgets() {
		w.Enable()
	}
}

func (cp *ControlPanel) Disable() {
	for _, w := range cp.widgets() {
		w.Disable()
	}
}

// widgets lists the controls toggled with image availability. Slider moves
// without an image are harmless since the pipeline ignores them.
func (cp *ControlPanel) widgets() []fyne.Disableable {
	return []fyne.Disableable{
		cp.lanczosSelect, cp.edgeSelect, cp.clearButton, cp.resetButton,
	}
}

// labelledSlider builds a slider with a value label that follows it.
func labelledSlider(min, max, step, value float64, format string, onChanged func(float64)) (*widget.Slider, *fyne.Container) {
	slider := widget.NewSlider(min, max)
	slider.Step = step
	slider.SetValue(value)

	valueLabel := widget.NewLabel(fmt.Sprintf(format, value))
	slider.OnChanged = func(v float64) {
		valueLabel.SetText(fmt.Sprintf(format, v))
		onChanged(v)
	}
	return slider, container.NewBorder(nil, nil, nil, valueLabel, slider)
}

func parameterInfo(id string) map[string]algorithms.ParameterInfo {
	out := make(map[string]algorithms.ParameterInfo)
	if alg, ok := algorithms.Get(id); ok {
		for _, p := range alg.GetParameterInfo() {
			out[p.Name] = p
		}
	}
	return out
}

func paramRange(p algorithms.ParameterInfo) (float64, float64) {
	return toFloat(p.Min), toFloat(p.Max)
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func edgeOptions() []string {
	return []string{resample.EdgeOmit.String(), resample.EdgeClamp.String()}
}
