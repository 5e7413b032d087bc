package transform

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"

	"interpolation-preview/internal/io"
	"interpolation-preview/internal/resample"
)

// OpenCV transforms through gocv: Lanczos4 for enlargement, stepped
// area averaging for strong reduction, affine warp for rotation.
type OpenCV struct {
	// StepFactor is the per-step ratio used when shrinking below one half.
	StepFactor float64
}

func NewOpenCV() *OpenCV {
	return &OpenCV{StepFactor: 0.6}
}

func (o *OpenCV) Name() string { return "opencv" }

func (o *OpenCV) Zoom(src *resample.Buffer, factor float64) (*resample.Buffer, error) {
	w, h, err := zoomSize(src, factor)
	if err != nil {
		return nil, err
	}
	mat, err := io.MatFromBuffer(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	current := mat.Clone()
	defer func() { current.Close() }()

	// Large reductions alias badly in one pass.
	if factor < 0.5 {
		cw, ch := current.Cols(), current.Rows()
		for cw > w*2 || ch > h*2 {
			nw := int(math.Max(float64(cw)*o.StepFactor, float64(w)))
			nh := int(math.Max(float64(ch)*o.StepFactor, float64(h)))
			if nw >= cw && nh >= ch {
				break
			}
			next := gocv.NewMat()
			if err := gocv.Resize(current, &next, image.Point{X: nw, Y: nh}, 0, 0, gocv.InterpolationArea); err != nil {
				next.Close()
				return nil, fmt.Errorf("resize step failed: %w", err)
			}
			current.Close()
			current = next
			cw, ch = nw, nh
		}
	}

	interpolation := gocv.InterpolationLanczos4
	if factor < 1 {
		interpolation = gocv.InterpolationArea
	}
	scaled := gocv.NewMat()
	defer scaled.Close()
	if err := gocv.Resize(current, &scaled, image.Point{X: w, Y: h}, 0, 0, interpolation); err != nil {
		return nil, fmt.Errorf("resize failed: %w", err)
	}
	return io.BufferFromMat(scaled)
}

func (o *OpenCV) Rotate(src *resample.Buffer, degrees float64) (*resample.Buffer, error) {
	if src.Empty() {
		return nil, fmt.Errorf("cannot rotate empty image: %w", resample.ErrInvalidInput)
	}
	mat, err := io.MatFromBuffer(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	size := image.Point{X: src.Width(), Y: src.Height()}
	m := gocv.GetRotationMatrix2D(image.Point{X: size.X / 2, Y: size.Y / 2}, degrees, 1.0)
	defer m.Close()

	rotated := gocv.NewMat()
	defer rotated.Close()
	if err := gocv.WarpAffine(mat, &rotated, m, size); err != nil {
		return nil, fmt.Errorf("rotation failed: %w", err)
	}
	return io.BufferFromMat(rotated)
}
