package transform

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/gift"

	"interpolation-preview/internal/resample"
)

// Gift is a pure Go backend built on github.com/disintegration/gift.
type Gift struct{}

func NewGift() *Gift {
	return &Gift{}
}

func (g *Gift) Name() string { return "gift" }

func (g *Gift) Zoom(src *resample.Buffer, factor float64) (*resample.Buffer, error) {
	w, h, err := zoomSize(src, factor)
	if err != nil {
		return nil, err
	}
	resampling := gift.LanczosResampling
	if factor < 1 {
		resampling = gift.LinearResampling
	}
	return run(src, gift.Resize(w, h, resampling)), nil
}

func (g *Gift) Rotate(src *resample.Buffer, degrees float64) (*resample.Buffer, error) {
	if src.Empty() {
		return nil, fmt.Errorf("cannot rotate empty image: %w", resample.ErrInvalidInput)
	}
	// gift grows the canvas to fit; cut the centre back to the source size.
	return run(src,
		gift.Rotate(float32(degrees), color.Black, gift.CubicInterpolation),
		gift.CropToSize(src.Width(), src.Height(), gift.CenterAnchor),
	), nil
}

func run(src *resample.Buffer, filters ...gift.Filter) *resample.Buffer {
	g := gift.New(filters...)
	img := src.ToImage()
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return resample.FromImage(dst)
}
