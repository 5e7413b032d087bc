package metrics

import (
	"fmt"
	"math"

	"interpolation-preview/internal/resample"
)

func checkPair(reference, processed *resample.Buffer) error {
	if reference.Empty() || processed.Empty() {
		return fmt.Errorf("empty images: %w", resample.ErrInvalidInput)
	}
	if reference.Width() != processed.Width() || reference.Height() != processed.Height() {
		return fmt.Errorf("image dimensions %dx%d and %dx%d: %w",
			reference.Width(), reference.Height(), processed.Width(), processed.Height(),
			resample.ErrDimensionMismatch)
	}
	return nil
}

// MSE is the mean squared error over all three channels
type MSE struct{}

func NewMSE() *MSE { return &MSE{} }

func (m *MSE) Calculate(reference, processed *resample.Buffer) (float64, error) {
	if err := checkPair(reference, processed); err != nil {
		return 0, err
	}
	return meanSquaredError(reference, processed), nil
}

func meanSquaredError(a, b *resample.Buffer) float64 {
	pa, pb := a.RGB(), b.RGB()
	sum := 0.0
	for i := range pa {
		d := float64(pa[i]) - float64(pb[i])
		sum += d * d
	}
	return sum / float64(len(pa))
}

func (m *MSE) GetName() string              { return "MSE" }
func (m *MSE) GetDescription() string       { return "Mean Squared Error" }
func (m *MSE) GetRange() (float64, float64) { return 0, 65025 }
func (m *MSE) IsHigherBetter() bool         { return false }

// PSNR implements Peak Signal-to-Noise Ratio
type PSNR struct{}

func NewPSNR() *PSNR { return &PSNR{} }

func (p *PSNR) Calculate(reference, processed *resample.Buffer) (float64, error) {
	if err := checkPair(reference, processed); err != nil {
		return 0, err
	}
	mse := meanSquaredError(reference, processed)
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(255*255/mse), nil
}

func (p *PSNR) GetName() string              { return "PSNR" }
func (p *PSNR) GetDescription() string       { return "Peak Signal-to-Noise Ratio in dB" }
func (p *PSNR) GetRange() (float64, float64) { return 0, 100 }
func (p *PSNR) IsHigherBetter() bool         { return true }

// SSIM is the mean structural similarity over 8x8 luma windows
type SSIM struct {
	Window int
}

func NewSSIM() *SSIM { return &SSIM{Window: 8} }

func (s *SSIM) Calculate(reference, processed *resample.Buffer) (float64, error) {
	if err := checkPair(reference, processed); err != nil {
		return 0, err
	}

	const (
		c1 = 6.5025  // (0.01 * 255)^2
		c2 = 58.5225 // (0.03 * 255)^2
	)

	la, lb := luma(reference), luma(processed)
	w, h := reference.Width(), reference.Height()
	win := max(1, min(s.Window, w, h))

	total := 0.0
	windows := 0
	for y0 := 0; y0+win <= h; y0 += win {
		for x0 := 0; x0+win <= w; x0 += win {
			var ma, mb float64
			for y := y0; y < y0+win; y++ {
				for x := x0; x < x0+win; x++ {
					ma += la[y*w+x]
					mb += lb[y*w+x]
				}
			}
			n := float64(win * win)
			ma /= n
			mb /= n

			var va, vb, cov float64
			for y := y0; y < y0+win; y++ {
				for x := x0; x < x0+win; x++ {
					da := la[y*w+x] - ma
					db := lb[y*w+x] - mb
					va += da * da
					vb += db * db
					cov += da * db
				}
			}
			va /= n
			vb /= n
			cov /= n

			total += ((2*ma*mb + c1) * (2*cov + c2)) / ((ma*ma + mb*mb + c1) * (va + vb + c2))
			windows++
		}
	}
	return total / float64(windows), nil
}

func (s *SSIM) GetName() string              { return "SSIM" }
func (s *SSIM) GetDescription() string       { return "Structural Similarity Index" }
func (s *SSIM) GetRange() (float64, float64) { return 0, 1 }
func (s *SSIM) IsHigherBetter() bool         { return true }

// MaxAbsDiff is the largest per-channel difference
type MaxAbsDiff struct{}

func NewMaxAbsDiff() *MaxAbsDiff { return &MaxAbsDiff{} }

func (m *MaxAbsDiff) Calculate(reference, processed *resample.Buffer) (float64, error) {
	if err := checkPair(reference, processed); err != nil {
		return 0, err
	}
	pa, pb := reference.RGB(), processed.RGB()
	worst := 0
	for i := range pa {
		d := int(pa[i]) - int(pb[i])
		if d < 0 {
			d = -d
		}
		worst = max(worst, d)
	}
	return float64(worst), nil
}

func (m *MaxAbsDiff) GetName() string              { return "Max Abs Diff" }
func (m *MaxAbsDiff) GetDescription() string       { return "Largest single channel difference" }
func (m *MaxAbsDiff) GetRange() (float64, float64) { return 0, 255 }
func (m *MaxAbsDiff) IsHigherBetter() bool         { return false }

// Sharpness compares edge energy (mean absolute Laplacian of luma) of the
// processed image against the reference. 1 means equally sharp.
type Sharpness struct{}

func NewSharpness() *Sharpness { return &Sharpness{} }

func (s *Sharpness) Calculate(reference, processed *resample.Buffer) (float64, error) {
	if err := checkPair(reference, processed); err != nil {
		return 0, err
	}
	ref := laplacianEnergy(reference)
	if ref == 0 {
		if laplacianEnergy(processed) == 0 {
			return 1, nil
		}
		return math.Inf(1), nil
	}
	return laplacianEnergy(processed) / ref, nil
}

func laplacianEnergy(b *resample.Buffer) float64 {
	w, h := b.Width(), b.Height()
	if w < 3 || h < 3 {
		return 0
	}
	l := luma(b)
	sum := 0.0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			sum += math.Abs(4*l[i] - l[i-1] - l[i+1] - l[i-w] - l[i+w])
		}
	}
	return sum / float64((w-2)*(h-2))
}

func (s *Sharpness) GetName() string              { return "Sharpness" }
func (s *Sharpness) GetDescription() string       { return "Edge energy relative to the reference" }
func (s *Sharpness) GetRange() (float64, float64) { return 0, 2 }
func (s *Sharpness) IsHigherBetter() bool         { return true }

// luma returns BT.601 luma for every pixel.
func luma(b *resample.Buffer) []float64 {
	pix := b.RGB()
	out := make([]float64, len(pix)/3)
	for i := range out {
		out[i] = 0.299*float64(pix[i*3]) + 0.587*float64(pix[i*3+1]) + 0.114*float64(pix[i*3+2])
	}
	return out
}
