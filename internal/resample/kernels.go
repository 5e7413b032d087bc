package resample

import (
	"math"
)

// Kernel is a 1-D filter used separably by the resampler.
type Kernel interface {
	// Support is the half-width beyond which Weight is zero, in source pixels.
	Support() int
	// Weight returns the filter value at distance x.
	Weight(x float64) float64
}

// Default kernel parameters.
const (
	DefaultMitchellB = 1.0 / 3.0
	DefaultMitchellC = 1.0 / 3.0
	DefaultLanczosA  = 3
)

// MitchellNetravali is the two-parameter cubic family. B = C = 1/3 is the
// classic recommendation.
type MitchellNetravali struct {
	B, C float64
}

func (MitchellNetravali) Support() int { return 2 }

func (k MitchellNetravali) Weight(x float64) float64 {
	return mitchellNetravali(x, k.B, k.C)
}

func mitchellNetravali(x, b, c float64) float64 {
	x = math.Abs(x)
	switch {
	case x < 1:
		return ((12-9*b-6*c)*x*x*x + (-18+12*b+6*c)*x*x + (6 - 2*b)) / 6
	case x < 2:
		return ((-b-6*c)*x*x*x + (6*b+30*c)*x*x + (-12*b-48*c)*x + (8*b + 24*c)) / 6
	}
	return 0
}

// CubicBSpline is the non-negative cubic B-spline. It never overshoots.
type CubicBSpline struct{}

func (CubicBSpline) Support() int { return 2 }

func (CubicBSpline) Weight(x float64) float64 {
	return cubicBSpline(x)
}

func cubicBSpline(x float64) float64 {
	x = math.Abs(x)
	switch {
	case x < 1:
		return 2.0/3.0 + x*x*(x/2-1)
	case x < 2:
		t := 2 - x
		return t * t * t / 6
	}
	return 0
}

// Lanczos is the sinc function windowed by a wider sinc of radius A.
// A must be a positive integer.
type Lanczos struct {
	A int
}

func (k Lanczos) Support() int { return k.A }

func (k Lanczos) Weight(x float64) float64 {
	return lanczos(x, k.A)
}

func lanczos(x float64, a int) float64 {
	x = math.Abs(x)
	if x == 0 {
		return 1
	}
	fa := float64(a)
	if x >= fa {
		return 0
	}
	px := math.Pi * x
	return fa * math.Sin(px) * math.Sin(px/fa) / (px * px)
}

// Box selects the nearest source sample, rounding half offsets down. Run
// through the resampler it reproduces Duplicate2x.
type Box struct{}

func (Box) Support() int { return 1 }

func (Box) Weight(x float64) float64 {
	if x >= -0.5 && x < 0.5 {
		return 1
	}
	return 0
}
