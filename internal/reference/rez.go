package reference

import (
	"fmt"
	"image"
	"image/color"

	"github.com/bamiaux/rez"

	"interpolation-preview/internal/resample"
)

// rezResizer runs github.com/bamiaux/rez, which only converts between
// YCbCr images. Planes are kept at full resolution (4:4:4).
type rezResizer struct {
	name   string
	filter rez.Filter
}

func (r rezResizer) Name() string { return r.name }

func (r rezResizer) Upscale2x(src *resample.Buffer) (*resample.Buffer, error) {
	if src.Empty() {
		return nil, fmt.Errorf("%s: empty source: %w", r.name, resample.ErrInvalidInput)
	}
	in := toYCbCr(src)
	out := image.NewYCbCr(image.Rect(0, 0, src.Width()*2, src.Height()*2), image.YCbCrSubsampleRatio444)
	if err := rez.Convert(out, in, r.filter); err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}
	return resample.FromImage(out), nil
}

func toYCbCr(b *resample.Buffer) *image.YCbCr {
	img := image.NewYCbCr(b.Bounds(), image.YCbCrSubsampleRatio444)
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			p := b.At(x, y)
			yy, cb, cr := color.RGBToYCbCr(p.R, p.G, p.B)
			img.Y[img.YOffset(x, y)] = yy
			i := img.COffset(x, y)
			img.Cb[i] = cb
			img.Cr[i] = cr
		}
	}
	return img
}

// rezKernel lets rez drive one of our kernels.
type rezKernel struct {
	k resample.Kernel
}

func (r rezKernel) Taps() int { return r.k.Support() }

func (r rezKernel) Get(dx float64) float64 { return r.k.Weight(dx) }
