// Preview pipeline running every interpolation algorithm on the selected region
package core

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"interpolation-preview/internal/algorithms"
	"interpolation-preview/internal/config"
	"interpolation-preview/internal/metrics"
	"interpolation-preview/internal/resample"
	"interpolation-preview/internal/transform"
)

// ViewState is the user-adjustable input of a preview run.
type ViewState struct {
	Zoom      float64
	Rotation  float64
	MitchellB float64
	MitchellC float64
	LanczosA  int
	Edge      resample.EdgeMode
}

// DefaultViewState builds the initial view from cfg.
func DefaultViewState(cfg config.Config) ViewState {
	return ViewState{
		Zoom:      1,
		MitchellB: cfg.Mitchell.B,
		MitchellC: cfg.Mitchell.C,
		LanczosA:  cfg.Lanczos.A,
		Edge:      cfg.EdgeMode(),
	}
}

// Params returns the algorithm parameters for id.
func (v ViewState) Params(id string) map[string]interface{} {
	edge := v.Edge.String()
	switch id {
	case algorithms.Mitchell:
		return map[string]interface{}{"b": v.MitchellB, "c": v.MitchellC, "edge": edge}
	case algorithms.BSpline:
		return map[string]interface{}{"edge": edge}
	case algorithms.Lanczos:
		return map[string]interface{}{"a": float64(v.LanczosA), "edge": edge}
	default:
		return map[string]interface{}{}
	}
}

// Result is one algorithm's output.
type Result struct {
	ID       string
	Name     string
	Output   *resample.Buffer
	Metrics  map[string]float64 // against the duplicate baseline
	Duration time.Duration
}

// Preview is the outcome of a pipeline run.
type Preview struct {
	Transformed *resample.Buffer // source after zoom and rotation
	Input       *resample.Buffer // cropped region fed to the algorithms
	Results     []Result         // in algorithms.Names() order
	Duration    time.Duration
}

// Result returns the entry for id.
func (p *Preview) Result(id string) (Result, bool) {
	for _, r := range p.Results {
		if r.ID == id {
			return r, true
		}
	}
	return Result{}, false
}

// Composite places the unmagnified region followed by all outputs side by
// side. The region sits in the top-left corner of a black panel the size of
// one output.
func (p *Preview) Composite() (*resample.Buffer, error) {
	if p.Input == nil || p.Input.Empty() {
		return nil, fmt.Errorf("preview has no region: %w", resample.ErrInvalidInput)
	}
	panel := resample.Fill(p.Input.Width()*2, p.Input.Height()*2, resample.Pixel{}).ToImage()
	draw.Copy(panel, image.Point{}, p.Input.ToImage(), p.Input.Bounds(), draw.Src, nil)

	buffers := make([]*resample.Buffer, 0, len(p.Results)+1)
	buffers = append(buffers, resample.FromImage(panel))
	for _, r := range p.Results {
		buffers = append(buffers, r.Output)
	}
	return resample.Concat(buffers...)
}

// PreviewPipeline transforms the loaded image, crops the selected region and
// magnifies it with every registered algorithm.
type PreviewPipeline struct {
	mu            sync.RWMutex
	imageData     *ImageData
	regionManager *RegionManager
	transformer   transform.Transformer
	metricsEval   *metrics.Evaluator
	debugger      *PipelineDebugger
	logger        *logrus.Logger

	view      ViewState
	maxPixels int
	region    int

	processing bool
	cancel     context.CancelFunc
	generation uint64

	onPreviewUpdate func(*Preview)
	onError         func(error)
	onTransformed   func(*resample.Buffer)

	previewTimer *time.Timer
	previewDelay time.Duration
}

func NewPreviewPipeline(imageData *ImageData, regionManager *RegionManager, transformer transform.Transformer, cfg config.Config, logger *logrus.Logger) *PreviewPipeline {
	return &PreviewPipeline{
		imageData:     imageData,
		regionManager: regionManager,
		transformer:   transformer,
		metricsEval:   metrics.NewEvaluator(),
		debugger:      NewPipelineDebugger(logger),
		logger:        logger,
		view:          DefaultViewState(cfg),
		maxPixels:     cfg.Preview.MaxPixels,
		region:        cfg.Preview.Region,
		previewDelay:  cfg.Debounce(),
	}
}

// SetCallbacks sets preview update and error callbacks. They are invoked
// from pipeline goroutines.
func (pp *PreviewPipeline) SetCallbacks(onPreviewUpdate func(*Preview), onError func(error)) {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	pp.onPreviewUpdate = onPreviewUpdate
	pp.onError = onError
	pp.logger.Debug("PIPELINE: Callbacks set")
}

// SetTransformedCallback sets a callback receiving the zoomed and rotated
// source of every run that got that far, including runs that fail later.
func (pp *PreviewPipeline) SetTransformedCallback(onTransformed func(*resample.Buffer)) {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	pp.onTransformed = onTransformed
}

func (pp *PreviewPipeline) View() ViewState {
	pp.mu.RLock()
	defer pp.mu.RUnlock()
	return pp.view
}

// SetView replaces the view state without scheduling a preview.
func (pp *PreviewPipeline) SetView(view ViewState) {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	pp.view = view
}

// UpdateView applies fn to the view state and schedules a preview.
func (pp *PreviewPipeline) UpdateView(fn func(*ViewState)) {
	pp.mu.Lock()
	fn(&pp.view)
	view := pp.view
	pp.mu.Unlock()

	pp.logger.WithFields(logrus.Fields{
		"zoom":     view.Zoom,
		"rotation": view.Rotation,
		"b":        view.MitchellB,
		"c":        view.MitchellC,
		"a":        view.LanczosA,
	}).Debug("PIPELINE: View updated")
	pp.Trigger()
}

func (pp *PreviewPipeline) Debugger() *PipelineDebugger {
	return pp.debugger
}

func (pp *PreviewPipeline) IsProcessing() bool {
	pp.mu.RLock()
	defer pp.mu.RUnlock()
	return pp.processing
}

// Trigger schedules a debounced preview run, superseding any pending one.
func (pp *PreviewPipeline) Trigger() {
	if !pp.imageData.HasImage() {
		pp.logger.Debug("PIPELINE: No image available for preview processing")
		return
	}

	pp.mu.Lock()
	defer pp.mu.Unlock()

	if pp.previewTimer != nil {
		pp.previewTimer.Stop()
	}
	pp.debugger.LogEvent("trigger", "", pp.previewDelay, nil)
	pp.previewTimer = time.AfterFunc(pp.previewDelay, pp.processPreview)
}

// Stop cancels pending and running work.
func (pp *PreviewPipeline) Stop() {
	pp.mu.Lock()
	defer pp.mu.Unlock()

	if pp.previewTimer != nil {
		pp.previewTimer.Stop()
		pp.previewTimer = nil
	}
	if pp.cancel != nil {
		pp.cancel()
		pp.cancel = nil
	}
}

func (pp *PreviewPipeline) processPreview() {
	pp.mu.Lock()
	if pp.processing && pp.cancel != nil {
		pp.logger.Debug("PIPELINE: Already processing, cancelling previous")
		pp.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	pp.cancel = cancel
	pp.processing = true
	pp.generation++
	gen := pp.generation
	pp.mu.Unlock()

	go func() {
		defer cancel()

		preview, err := pp.Run(ctx)

		pp.mu.Lock()
		current := gen == pp.generation
		if current {
			pp.processing = false
			pp.cancel = nil
		}
		onPreviewUpdate, onError, onTransformed := pp.onPreviewUpdate, pp.onError, pp.onTransformed
		pp.mu.Unlock()

		if !current || errors.Is(err, context.Canceled) {
			pp.debugger.LogEvent("cancelled", "", 0, nil)
			return
		}
		if preview != nil && onTransformed != nil {
			onTransformed(preview.Transformed)
		}
		if err != nil {
			pp.logger.WithError(err).Error("PIPELINE: Preview processing failed")
			if onError != nil {
				onError(err)
			}
			return
		}
		if onPreviewUpdate != nil {
			onPreviewUpdate(preview)
		}
	}()
}

// regionSide is the side of the fallback square, kept within maxPixels.
func (pp *PreviewPipeline) regionSide() int {
	if pp.region <= 0 {
		return 0
	}
	return max(1, min(pp.region, int(math.Sqrt(float64(pp.maxPixels)))))
}

// Run executes one preview synchronously. When it fails after the transform
// step the returned Preview carries only Transformed.
func (pp *PreviewPipeline) Run(ctx context.Context) (*Preview, error) {
	start := time.Now()
	src := pp.imageData.GetOriginal()
	if src == nil {
		return nil, ErrNoImage
	}
	view := pp.View()
	pp.debugger.LogEvent("start", "", 0, nil)

	transformed, err := transform.Apply(pp.transformer, src, view.Zoom, view.Rotation)
	if err != nil {
		pp.debugger.LogEvent("error", "", time.Since(start), err)
		return nil, fmt.Errorf("transform: %w", err)
	}

	partial := &Preview{Transformed: transformed}

	rect := pp.regionManager.CropFor(transformed.Bounds(), pp.regionSide())
	if area := rect.Dx() * rect.Dy(); area > pp.maxPixels {
		err := fmt.Errorf("selection %dx%d exceeds %d pixels: %w",
			rect.Dx(), rect.Dy(), pp.maxPixels, resample.ErrInvalidInput)
		pp.debugger.LogEvent("error", "", time.Since(start), err)
		return partial, err
	}
	input := transformed.Crop(rect)

	pp.logger.WithFields(logrus.Fields{
		"transformed": transformed.String(),
		"crop":        rect.String(),
	}).Info("PIPELINE: Processing preview")

	ids := algorithms.Names()
	results := make([]Result, len(ids))
	errs := make([]error, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			algStart := time.Now()
			out, err := algorithms.Apply(ctx, id, input, view.Params(id))
			elapsed := time.Since(algStart)
			pp.debugger.LogAlgorithm(id, elapsed, err)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", id, err)
				return
			}
			alg, _ := algorithms.Get(id)
			results[i] = Result{ID: id, Name: alg.GetName(), Output: out, Duration: elapsed}
		}(i, id)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return partial, err
	}
	if err := errors.Join(errs...); err != nil {
		pp.debugger.LogEvent("error", "", time.Since(start), err)
		return partial, err
	}

	preview := &Preview{Transformed: transformed, Input: input, Results: results}
	if base, ok := preview.Result(algorithms.Duplicate); ok {
		for i := range preview.Results {
			preview.Results[i].Metrics = pp.metricsEval.CalculateAll(base.Output, preview.Results[i].Output)
		}
	}

	preview.Duration = time.Since(start)
	pp.debugger.LogEvent("complete", "", preview.Duration, nil)
	pp.logger.WithField("duration", preview.Duration).Info("PIPELINE: Preview complete")
	return preview, nil
}
