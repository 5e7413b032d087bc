package resample

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanczosZeroCrossings(t *testing.T) {
	k := Lanczos{A: DefaultLanczosA}
	assert.Equal(t, 1.0, k.Weight(0))
	for _, x := range []float64{1, 2, 3, -1, -2, -3} {
		assert.InDelta(t, 0, k.Weight(x), 1e-9, "x=%v", x)
	}
	assert.Equal(t, 0.0, k.Weight(3.5))
	assert.Greater(t, k.Weight(0.5), 0.0)
	assert.Less(t, k.Weight(1.5), 0.0)
}

func TestMitchellNetravaliShape(t *testing.T) {
	b, c := DefaultMitchellB, DefaultMitchellC
	k := MitchellNetravali{B: b, C: c}

	assert.InDelta(t, (6-2*b)/6, k.Weight(0), 1e-12)
	assert.InDelta(t, b/6, k.Weight(1), 1e-12)
	assert.InDelta(t, k.Weight(1-1e-9), k.Weight(1+1e-9), 1e-6)
	assert.Equal(t, 0.0, k.Weight(2))
	assert.Equal(t, k.Weight(0.7), k.Weight(-0.7))
	assert.Less(t, k.Weight(1.5), 0.0)
}

func TestCubicBSplineShape(t *testing.T) {
	k := CubicBSpline{}
	assert.InDelta(t, 2.0/3.0, k.Weight(0), 1e-12)
	assert.InDelta(t, 1.0/6.0, k.Weight(1), 1e-12)
	assert.Equal(t, 0.0, k.Weight(2))
	for x := -2.5; x <= 2.5; x += 0.125 {
		assert.GreaterOrEqual(t, k.Weight(x), 0.0, "x=%v", x)
	}
}

func TestPartitionOfUnity(t *testing.T) {
	kernels := map[string]Kernel{
		"mitchell": MitchellNetravali{B: DefaultMitchellB, C: DefaultMitchellC},
		"bspline":  CubicBSpline{},
		"box":      Box{},
	}
	for name, k := range kernels {
		for _, frac := range []float64{0, 0.5} {
			sum := 0.0
			for d := -k.Support(); d <= k.Support(); d++ {
				sum += k.Weight(float64(d) - frac)
			}
			assert.InDelta(t, 1, sum, 1e-12, "%s frac=%v", name, frac)
		}
	}
}

func TestClampChannel(t *testing.T) {
	cases := []struct {
		in   float64
		want uint8
	}{
		{-12.5, 0},
		{0, 0},
		{12.9, 12},
		{254.999, 254},
		{255, 255},
		{310, 255},
		{math.NaN(), 0},
		{math.Inf(1), 255},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, clampChannel(tc.in), "%v", tc.in)
	}
}

func TestDrawKernel(t *testing.T) {
	k := DrawKernel(Lanczos{A: 2})
	assert.Equal(t, 2.0, k.Support)
	assert.Equal(t, lanczos(0.3, 2), k.At(0.3))
}

func TestParseEdgeMode(t *testing.T) {
	m, err := ParseEdgeMode("clamp")
	assert.NoError(t, err)
	assert.Equal(t, EdgeClamp, m)
	m, err = ParseEdgeMode("")
	assert.NoError(t, err)
	assert.Equal(t, EdgeOmit, m)
	_, err = ParseEdgeMode("mirror")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
