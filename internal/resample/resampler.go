package resample

import (
	"context"
	"math"
)

// EdgeMode selects how taps falling outside the source are treated.
type EdgeMode int

const (
	// EdgeOmit drops out-of-bounds taps from the weighted sum without
	// renormalizing, so borders darken slightly.
	EdgeOmit EdgeMode = iota
	// EdgeClamp replaces out-of-bounds taps with the nearest border sample.
	EdgeClamp
)

func (m EdgeMode) String() string {
	switch m {
	case EdgeOmit:
		return "omit"
	case EdgeClamp:
		return "clamp"
	}
	return "unknown"
}

// ParseEdgeMode maps "omit" and "clamp" to their EdgeMode.
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch s {
	case "", "omit":
		return EdgeOmit, nil
	case "clamp":
		return EdgeClamp, nil
	}
	return EdgeOmit, errorf(ErrInvalidInput, "unknown edge mode %q", s)
}

// Options tune the convolution driver. The zero value is the default.
type Options struct {
	Edge EdgeMode
}

// tap is one contributing source index and its 1-D weight.
type tap struct {
	index  int
	weight float64
}

// Resample magnifies src by two in both directions using k.
func Resample(src *Buffer, k Kernel, opts Options) (*Buffer, error) {
	return ResampleContext(context.Background(), src, k, opts)
}

// ResampleContext is Resample with a cancellation check between output rows.
// A cancelled call returns ctx.Err() and no buffer.
func ResampleContext(ctx context.Context, src *Buffer, k Kernel, opts Options) (*Buffer, error) {
	if err := validateSource(src); err != nil {
		return nil, err
	}
	return resample(ctx, src, k, opts)
}

func resample(ctx context.Context, src *Buffer, k Kernel, opts Options) (*Buffer, error) {
	dst := newBuffer(src.width*2, src.height*2)
	cols := axisTaps(src.width, k, opts.Edge)
	rows := axisTaps(src.height, k, opts.Edge)

	for y := 0; y < dst.height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ty := rows[y]
		for x := 0; x < dst.width; x++ {
			var r, g, b float64
			for _, vy := range ty {
				for _, vx := range cols[x] {
					w := vx.weight * vy.weight
					i := (vy.index*src.width + vx.index) * 3
					r += w * float64(src.pix[i])
					g += w * float64(src.pix[i+1])
					b += w * float64(src.pix[i+2])
				}
			}
			dst.set(x, y, clampChannel(r), clampChannel(g), clampChannel(b))
		}
	}
	return dst, nil
}

// axisTaps precomputes, for every output coordinate along one axis of
// length 2n, the source indices and kernel weights that contribute to it.
func axisTaps(n int, k Kernel, edge EdgeMode) [][]tap {
	support := k.Support()
	out := make([][]tap, n*2)
	for o := range out {
		pos := float64(o) / 2
		base := int(math.Floor(pos))
		frac := pos - float64(base)

		taps := make([]tap, 0, 2*support+1)
		for d := -support; d <= support; d++ {
			s := base + d
			if s < 0 || s >= n {
				if edge != EdgeClamp {
					continue
				}
				s = min(max(s, 0), n-1)
			}
			taps = append(taps, tap{index: s, weight: k.Weight(float64(d) - frac)})
		}
		out[o] = taps
	}
	return out
}

// clampChannel clamps to [0,255] and truncates toward zero.
func clampChannel(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
