package resample

import (
	"context"
	"math"
)

// MitchellParams configures MitchellNetravali2x.
type MitchellParams struct {
	B, C float64
	Options
}

// DefaultMitchellParams returns B = C = 1/3.
func DefaultMitchellParams() MitchellParams {
	return MitchellParams{B: DefaultMitchellB, C: DefaultMitchellC}
}

// Validate rejects non-finite shape parameters.
func (p MitchellParams) Validate() error {
	if math.IsNaN(p.B) || math.IsInf(p.B, 0) || math.IsNaN(p.C) || math.IsInf(p.C, 0) {
		return errorf(ErrInvalidInput, "mitchell parameters must be finite (b=%v, c=%v)", p.B, p.C)
	}
	return nil
}

// LanczosParams configures Lanczos2x.
type LanczosParams struct {
	A int
	Options
}

// DefaultLanczosParams returns a = 3.
func DefaultLanczosParams() LanczosParams {
	return LanczosParams{A: DefaultLanczosA}
}

// Validate rejects a window radius below one.
func (p LanczosParams) Validate() error {
	if p.A < 1 {
		return errorf(ErrInvalidInput, "lanczos radius must be a positive integer, got %d", p.A)
	}
	return nil
}

// Duplicate2x replicates every source pixel into a 2x2 block.
func Duplicate2x(src *Buffer) (*Buffer, error) {
	if err := validateSource(src); err != nil {
		return nil, err
	}
	dst := newBuffer(src.width*2, src.height*2)
	rowBytes := dst.width * 3
	for y := 0; y < src.height; y++ {
		row := dst.pix[2*y*rowBytes : (2*y+1)*rowBytes]
		for x := 0; x < src.width; x++ {
			i := (y*src.width + x) * 3
			copy(row[x*6:], src.pix[i:i+3])
			copy(row[x*6+3:], src.pix[i:i+3])
		}
		copy(dst.pix[(2*y+1)*rowBytes:(2*y+2)*rowBytes], row)
	}
	return dst, nil
}

// MitchellNetravali2x magnifies src with the Mitchell-Netravali cubic.
func MitchellNetravali2x(src *Buffer, p MitchellParams) (*Buffer, error) {
	return MitchellNetravali2xContext(context.Background(), src, p)
}

// MitchellNetravali2xContext is MitchellNetravali2x with cancellation.
func MitchellNetravali2xContext(ctx context.Context, src *Buffer, p MitchellParams) (*Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return ResampleContext(ctx, src, MitchellNetravali{B: p.B, C: p.C}, p.Options)
}

// CubicBSpline2x magnifies src with the cubic B-spline.
func CubicBSpline2x(src *Buffer) (*Buffer, error) {
	return CubicBSpline2xContext(context.Background(), src, Options{})
}

// CubicBSpline2xContext is CubicBSpline2x with cancellation and edge options.
func CubicBSpline2xContext(ctx context.Context, src *Buffer, opts Options) (*Buffer, error) {
	return ResampleContext(ctx, src, CubicBSpline{}, opts)
}

// Lanczos2x magnifies src with a Lanczos window of radius p.A.
func Lanczos2x(src *Buffer, p LanczosParams) (*Buffer, error) {
	return Lanczos2xContext(context.Background(), src, p)
}

// Lanczos2xContext is Lanczos2x with cancellation.
func Lanczos2xContext(ctx context.Context, src *Buffer, p LanczosParams) (*Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return ResampleContext(ctx, src, Lanczos{A: p.A}, p.Options)
}
