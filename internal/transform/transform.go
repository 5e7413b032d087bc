// Zoom and rotation applied to the source before cropping
package transform

import (
	"fmt"
	"math"

	"interpolation-preview/internal/resample"
)

// Zoom limits accepted by every backend.
const (
	MinZoom = 1.0 / 16
	MaxZoom = 8.0

	// maxOutputPixels caps the area of a zoomed image.
	maxOutputPixels = 1 << 26
)

// Transformer resizes and rotates whole images.
type Transformer interface {
	Name() string
	// Zoom scales by factor; output sides are rounded and at least one pixel.
	Zoom(src *resample.Buffer, factor float64) (*resample.Buffer, error)
	// Rotate turns the image counter-clockwise by degrees about its centre,
	// keeping the canvas size. Uncovered corners are black.
	Rotate(src *resample.Buffer, degrees float64) (*resample.Buffer, error)
}

// New returns the backend registered under name: "opencv" or "gift".
func New(name string) (Transformer, error) {
	switch name {
	case "opencv":
		return NewOpenCV(), nil
	case "gift":
		return NewGift(), nil
	}
	return nil, fmt.Errorf("unknown transform backend %q", name)
}

// Apply zooms then rotates src, skipping identity steps.
func Apply(t Transformer, src *resample.Buffer, zoom, degrees float64) (*resample.Buffer, error) {
	if src.Empty() {
		return nil, fmt.Errorf("cannot transform empty image: %w", resample.ErrInvalidInput)
	}
	out := src
	if zoom != 1 {
		var err error
		if out, err = t.Zoom(out, zoom); err != nil {
			return nil, fmt.Errorf("zoom %.3f: %w", zoom, err)
		}
	}
	if d := normalizeDegrees(degrees); d != 0 {
		var err error
		if out, err = t.Rotate(out, d); err != nil {
			return nil, fmt.Errorf("rotate %.1f: %w", degrees, err)
		}
	}
	return out, nil
}

// zoomSize validates factor and returns the scaled dimensions.
func zoomSize(src *resample.Buffer, factor float64) (int, int, error) {
	if src.Empty() {
		return 0, 0, fmt.Errorf("cannot zoom empty image: %w", resample.ErrInvalidInput)
	}
	if math.IsNaN(factor) || factor < MinZoom || factor > MaxZoom {
		return 0, 0, fmt.Errorf("zoom factor %v outside [%v, %v]: %w", factor, MinZoom, MaxZoom, resample.ErrInvalidInput)
	}
	w := max(1, int(math.Round(float64(src.Width())*factor)))
	h := max(1, int(math.Round(float64(src.Height())*factor)))
	if w*h > maxOutputPixels {
		return 0, 0, fmt.Errorf("zoomed image %dx%d too large: %w", w, h, resample.ErrInvalidInput)
	}
	return w, h, nil
}

// normalizeDegrees maps any angle into (-180, 180].
func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
