package core

import (
	"context"
	"image"
	"io"
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interpolation-preview/internal/algorithms"
	"interpolation-preview/internal/config"
	"interpolation-preview/internal/resample"
	"interpolation-preview/internal/transform"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func gradient(w, h int) *resample.Buffer {
	px := make([]resample.Pixel, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px[y*w+x] = resample.Pixel{R: uint8(x * 255 / max(w-1, 1)), G: uint8(y * 255 / max(h-1, 1)), B: 128}
		}
	}
	buf, err := resample.NewBuffer(w, h, px)
	if err != nil {
		panic(err)
	}
	return buf
}

func newTestPipeline(t *testing.T, cfg config.Config, src *resample.Buffer) (*PreviewPipeline, *RegionManager) {
	t.Helper()
	data := NewImageData()
	if src != nil {
		require.NoError(t, data.SetOriginal(src, "test.png"))
	}
	regions := NewRegionManager()
	tr, err := transform.New("gift")
	require.NoError(t, err)
	return NewPreviewPipeline(data, regions, tr, cfg, quietLogger()), regions
}

func TestImageData(t *testing.T) {
	data := NewImageData()
	assert.False(t, data.HasImage())
	assert.Nil(t, data.GetOriginal())

	err := data.SetOriginal(nil, "x.png")
	assert.ErrorIs(t, err, resample.ErrInvalidInput)

	src := gradient(6, 4)
	require.NoError(t, data.SetOriginal(src, "/tmp/Photo.JPG"))
	assert.True(t, data.HasImage())
	assert.Same(t, src, data.GetOriginal())
	assert.Equal(t, ImageMetadata{Width: 6, Height: 4, Format: "jpg"}, data.GetMetadata())
	assert.Equal(t, "/tmp/Photo.JPG", data.GetFilepath())

	data.Clear()
	assert.False(t, data.HasImage())
	assert.Empty(t, data.GetFilepath())
}

func TestRegionManagerCrop(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 8)
	rm := NewRegionManager()

	assert.Equal(t, bounds, rm.CropFor(bounds, 0))
	assert.Equal(t, image.Rect(3, 2, 7, 6), rm.CropFor(bounds, 4))
	assert.Equal(t, bounds, rm.CropFor(bounds, 20))
	assert.Nil(t, rm.GetActiveSelection())

	id := rm.CreateRectangleSelection(image.Rect(6, 6, 2, 3))
	assert.Equal(t, "rect_1", id)
	sel := rm.GetActiveSelection()
	require.NotNil(t, sel)
	assert.Equal(t, image.Rect(2, 3, 6, 6), sel.Bounds)
	assert.Equal(t, image.Rect(2, 3, 6, 6), rm.CropFor(bounds, 4))

	rm.CreateRectangleSelection(image.Rect(8, 4, 20, 20))
	assert.Equal(t, image.Rect(8, 4, 10, 8), rm.CropFor(bounds, 4))

	rm.CreateRectangleSelection(image.Rect(50, 50, 60, 60))
	assert.Equal(t, image.Rect(3, 2, 7, 6), rm.CropFor(bounds, 4), "selection outside the image falls back to the centred square")
	assert.Equal(t, bounds, rm.CropFor(bounds, 0))

	assert.Empty(t, rm.CreateRectangleSelection(image.Rect(3, 3, 3, 9)))
	assert.False(t, rm.HasActiveSelection())

	rm.CreateRectangleSelection(image.Rect(0, 0, 2, 2))
	rm.ClearAll()
	assert.False(t, rm.HasActiveSelection())
}

func TestViewStateParams(t *testing.T) {
	view := DefaultViewState(config.Default())
	assert.Equal(t, 1.0, view.Zoom)

	for _, id := range algorithms.Names() {
		assert.NoError(t, algorithms.ValidateParameters(id, view.Params(id)), id)
	}

	view.LanczosA = 2
	view.Edge = resample.EdgeClamp
	p := view.Params(algorithms.Lanczos)
	assert.Equal(t, 2.0, p["a"])
	assert.Equal(t, "clamp", p["edge"])
}

func TestPipelineRunNoImage(t *testing.T) {
	pp, _ := newTestPipeline(t, config.Default(), nil)
	_, err := pp.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestPipelineRunAllAlgorithms(t *testing.T) {
	pp, _ := newTestPipeline(t, config.Default(), gradient(8, 6))

	preview, err := pp.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, preview.Input.Width())
	assert.Equal(t, 6, preview.Input.Height())
	require.Len(t, preview.Results, len(algorithms.Names()))

	for i, id := range algorithms.Names() {
		r := preview.Results[i]
		assert.Equal(t, id, r.ID)
		assert.NotEmpty(t, r.Name)
		assert.Equal(t, 16, r.Output.Width())
		assert.Equal(t, 12, r.Output.Height())
		assert.Contains(t, r.Metrics, "psnr")
	}

	base, ok := preview.Result(algorithms.Duplicate)
	require.True(t, ok)
	assert.Equal(t, 0.0, base.Metrics["mse"])
	assert.True(t, math.IsInf(base.Metrics["psnr"], 1))

	composite, err := preview.Composite()
	require.NoError(t, err)
	assert.Equal(t, 16*(len(preview.Results)+1), composite.Width())
	assert.Equal(t, 12, composite.Height())
	assert.True(t, composite.Crop(image.Rect(0, 0, 8, 6)).Equal(preview.Input), "region comes first, unscaled")
	assert.Equal(t, resample.Pixel{}, composite.At(8, 0))
	assert.Equal(t, resample.Pixel{}, composite.At(0, 6))
	assert.True(t, composite.Crop(image.Rect(16, 0, 32, 12)).Equal(preview.Results[0].Output))

	stats := pp.Debugger().Stats()
	for _, id := range algorithms.Names() {
		assert.Equal(t, 1, stats[id].Runs, id)
	}
}

func TestPipelineCropAndZoom(t *testing.T) {
	pp, regions := newTestPipeline(t, config.Default(), gradient(8, 8))
	regions.CreateRectangleSelection(image.Rect(4, 4, 10, 9))
	pp.UpdateView(func(v *ViewState) { v.Zoom = 2 })
	pp.Stop()

	preview, err := pp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 16, preview.Transformed.Width())
	assert.Equal(t, 6, preview.Input.Width())
	assert.Equal(t, 5, preview.Input.Height())
	assert.True(t, preview.Transformed.Crop(image.Rect(4, 4, 10, 9)).Equal(preview.Input))
}

func TestPipelineRejectsLargeSelection(t *testing.T) {
	cfg := config.Default()
	cfg.Preview.MaxPixels = 16
	src := gradient(8, 8)
	pp, regions := newTestPipeline(t, cfg, src)

	// the fallback square shrinks to fit max_pixels
	preview, err := pp.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, src.Crop(image.Rect(2, 2, 6, 6)).Equal(preview.Input))

	regions.CreateRectangleSelection(image.Rect(0, 0, 5, 5))
	preview, err = pp.Run(context.Background())
	assert.ErrorIs(t, err, resample.ErrInvalidInput)
	require.NotNil(t, preview)
	assert.Same(t, src, preview.Transformed)
	assert.Empty(t, preview.Results)

	regions.CreateRectangleSelection(image.Rect(0, 0, 4, 4))
	_, err = pp.Run(context.Background())
	assert.NoError(t, err)
}

func TestPipelineDefaultRegionWithoutSelection(t *testing.T) {
	src := gradient(600, 600)
	pp, _ := newTestPipeline(t, config.Default(), src)

	preview, err := pp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 128, preview.Input.Width())
	assert.Equal(t, 128, preview.Input.Height())
	assert.True(t, src.Crop(image.Rect(236, 236, 364, 364)).Equal(preview.Input))
	for _, r := range preview.Results {
		assert.Equal(t, 256, r.Output.Width(), r.ID)
	}

	cfg := config.Default()
	cfg.Preview.Region = 0
	pp, _ = newTestPipeline(t, cfg, src)
	_, err = pp.Run(context.Background())
	assert.ErrorIs(t, err, resample.ErrInvalidInput, "whole image exceeds max_pixels")
}

func TestPipelineRunCancelled(t *testing.T) {
	pp, _ := newTestPipeline(t, config.Default(), gradient(8, 8))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pp.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipelineTriggerDeliversPreview(t *testing.T) {
	cfg := config.Default()
	cfg.Preview.DebounceMS = 1
	pp, _ := newTestPipeline(t, cfg, gradient(4, 4))

	done := make(chan *Preview, 4)
	pp.SetCallbacks(func(p *Preview) { done <- p }, func(err error) { t.Errorf("unexpected error: %v", err) })

	pp.Trigger()
	pp.Trigger()

	select {
	case p := <-done:
		assert.Len(t, p.Results, len(algorithms.Names()))
	case <-time.After(5 * time.Second):
		t.Fatal("preview not delivered")
	}

	assert.Eventually(t, func() bool { return !pp.IsProcessing() }, time.Second, 5*time.Millisecond)
	pp.Stop()
}

func TestPipelineTriggerReportsError(t *testing.T) {
	cfg := config.Default()
	cfg.Preview.DebounceMS = 1
	cfg.Preview.MaxPixels = 1
	src := gradient(4, 4)
	pp, regions := newTestPipeline(t, cfg, src)
	regions.CreateRectangleSelection(image.Rect(0, 0, 2, 2))

	errs := make(chan error, 1)
	transformed := make(chan *resample.Buffer, 1)
	pp.SetCallbacks(func(*Preview) { t.Error("unexpected preview") }, func(err error) { errs <- err })
	pp.SetTransformedCallback(func(b *resample.Buffer) { transformed <- b })
	pp.Trigger()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, resample.ErrInvalidInput)
	case <-time.After(5 * time.Second):
		t.Fatal("error not delivered")
	}
	select {
	case b := <-transformed:
		assert.Same(t, src, b)
	default:
		t.Fatal("transformed image not delivered before the error")
	}
}

func TestPipelineDebuggerNilSafe(t *testing.T) {
	var pd *PipelineDebugger
	pd.LogEvent("start", "", 0, nil)
	pd.LogAlgorithm("mitchell", time.Millisecond, nil)
	assert.Nil(t, pd.Events())
	assert.Nil(t, pd.Stats())
}

func TestPipelineDebuggerEventCap(t *testing.T) {
	pd := NewPipelineDebugger(quietLogger())
	for i := 0; i < maxEvents+10; i++ {
		pd.LogEvent("trigger", "", 0, nil)
	}
	assert.Len(t, pd.Events(), maxEvents)
}
