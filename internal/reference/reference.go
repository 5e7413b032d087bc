// Package reference wraps established third-party resizers used as yardsticks
// for the engine.
package reference

import (
	"fmt"
	"image"
	"sort"

	"github.com/anthonynsimon/bild/transform"
	"github.com/bamiaux/rez"
	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"interpolation-preview/internal/resample"
)

// Resizer produces a 2x magnification with some external library.
type Resizer interface {
	Name() string
	Upscale2x(src *resample.Buffer) (*resample.Buffer, error)
}

// imageResizer adapts a func over image.Image to Resizer.
type imageResizer struct {
	name string
	fn   func(img image.Image, w, h int) image.Image
}

func (r imageResizer) Name() string { return r.name }

func (r imageResizer) Upscale2x(src *resample.Buffer) (*resample.Buffer, error) {
	if src.Empty() {
		return nil, fmt.Errorf("%s: empty source: %w", r.name, resample.ErrInvalidInput)
	}
	out := r.fn(src.ToImage(), src.Width()*2, src.Height()*2)
	return resample.FromImage(out), nil
}

func nfntResizer(name string, interp resize.InterpolationFunction) Resizer {
	return imageResizer{name: name, fn: func(img image.Image, w, h int) image.Image {
		return resize.Resize(uint(w), uint(h), img, interp)
	}}
}

func bildResizer(name string, filter transform.ResampleFilter) Resizer {
	return imageResizer{name: name, fn: func(img image.Image, w, h int) image.Image {
		return transform.Resize(img, w, h, filter)
	}}
}

func giftResizer(name string, resampling gift.Resampling) Resizer {
	return imageResizer{name: name, fn: func(img image.Image, w, h int) image.Image {
		g := gift.New(gift.Resize(w, h, resampling))
		dst := image.NewRGBA(g.Bounds(img.Bounds()))
		g.Draw(dst, img)
		return dst
	}}
}

func imagingResizer(name string, filter imaging.ResampleFilter) Resizer {
	return imageResizer{name: name, fn: func(img image.Image, w, h int) image.Image {
		return imaging.Resize(img, w, h, filter)
	}}
}

func xdrawResizer(name string, scaler draw.Scaler) Resizer {
	return imageResizer{name: name, fn: func(img image.Image, w, h int) image.Image {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		return dst
	}}
}

// kernelResampling lets gift drive one of our kernels.
type kernelResampling struct {
	k resample.Kernel
}

func (r kernelResampling) Support() float32 { return float32(r.k.Support()) }

func (r kernelResampling) Kernel(x float32) float32 { return float32(r.k.Weight(float64(x))) }

var registry = map[string]Resizer{}

func register(r Resizer) {
	registry[r.Name()] = r
}

func init() {
	register(nfntResizer("nfnt-lanczos3", resize.Lanczos3))
	register(nfntResizer("nfnt-mitchell", resize.MitchellNetravali))
	register(nfntResizer("nfnt-nearest", resize.NearestNeighbor))
	register(bildResizer("bild-lanczos", transform.Lanczos))
	register(bildResizer("bild-mitchell", transform.MitchellNetravali))
	register(giftResizer("gift-lanczos", gift.LanczosResampling))
	register(giftResizer("gift-bspline", kernelResampling{k: resample.CubicBSpline{}}))
	register(imagingResizer("imaging-lanczos", imaging.Lanczos))
	register(imagingResizer("imaging-bspline", imaging.BSpline))
	register(xdrawResizer("xdraw-catmullrom", draw.CatmullRom))
	register(xdrawResizer("xdraw-bspline", resample.DrawKernel(resample.CubicBSpline{})))
	register(rezResizer{name: "rez-lanczos3", filter: rez.NewLanczosFilter(3)})
	register(rezResizer{name: "rez-mitchell", filter: rez.NewCustomBicubicFilter(resample.DefaultMitchellB, resample.DefaultMitchellC)})
	register(rezResizer{name: "rez-bspline", filter: rezKernel{k: resample.CubicBSpline{}}})
	register(NewOpenCV())
}

// Get returns the resizer registered under name.
func Get(name string) (Resizer, error) {
	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown reference resizer %q (have %v)", name, Names())
	}
	return r, nil
}

// Names lists the registered resizers alphabetically.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
