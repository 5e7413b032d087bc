package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interpolation-preview/internal/resample"
)

func gradient(t *testing.T, w, h int, offset uint8) *resample.Buffer {
	t.Helper()
	pixels := make([]resample.Pixel, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x*17+y*31)%200) + offset
			pixels = append(pixels, resample.Pixel{R: v, G: v / 2, B: 255 - v})
		}
	}
	b, err := resample.NewBuffer(w, h, pixels)
	require.NoError(t, err)
	return b
}

func TestIdenticalImages(t *testing.T) {
	a := gradient(t, 16, 16, 0)
	e := NewEvaluator()

	psnr, err := e.Calculate("psnr", a, a)
	require.NoError(t, err)
	assert.True(t, math.IsInf(psnr, 1))

	ssim, err := e.Calculate("ssim", a, a)
	require.NoError(t, err)
	assert.InDelta(t, 1, ssim, 1e-9)

	mse, err := e.Calculate("mse", a, a)
	require.NoError(t, err)
	assert.Zero(t, mse)

	sharp, err := e.Calculate("sharpness", a, a)
	require.NoError(t, err)
	assert.InDelta(t, 1, sharp, 1e-9)

	report := e.GenerateReport(a, a)
	assert.Equal(t, "excellent", report.Analysis.QualityLevel)
	assert.InDelta(t, 100, report.OverallScore, 1e-9)
	assert.Empty(t, report.Analysis.Issues)
}

func TestKnownOffset(t *testing.T) {
	a := resample.Fill(4, 4, resample.Pixel{R: 100, G: 100, B: 100})
	b := resample.Fill(4, 4, resample.Pixel{R: 110, G: 100, B: 100})

	mse, err := NewMSE().Calculate(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 100.0/3.0, mse, 1e-9)

	psnr, err := NewPSNR().Calculate(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 10*math.Log10(255*255/(100.0/3.0)), psnr, 1e-9)

	diff, err := NewMaxAbsDiff().Calculate(a, b)
	require.NoError(t, err)
	assert.Equal(t, 10.0, diff)
}

func TestSizeMismatch(t *testing.T) {
	a := resample.Fill(4, 4, resample.Pixel{})
	b := resample.Fill(4, 5, resample.Pixel{})
	for _, name := range NewEvaluator().Names() {
		_, err := NewEvaluator().Calculate(name, a, b)
		assert.ErrorIs(t, err, resample.ErrDimensionMismatch, name)
	}
	assert.Empty(t, NewEvaluator().CalculateAll(a, b))

	_, err := NewEvaluator().Calculate("f_measure", a, a)
	assert.Error(t, err)
}

func TestBlurLowersSharpness(t *testing.T) {
	src := gradient(t, 12, 12, 0)
	dup, err := resample.Duplicate2x(src)
	require.NoError(t, err)
	smooth, err := resample.CubicBSpline2xContext(context.Background(), src, resample.Options{Edge: resample.EdgeClamp})
	require.NoError(t, err)

	sharp, err := NewSharpness().Calculate(dup, smooth)
	require.NoError(t, err)
	assert.Less(t, sharp, 1.0)
}

func TestSSIMDropsWithNoise(t *testing.T) {
	a := gradient(t, 16, 16, 0)
	b := gradient(t, 16, 16, 40)
	ssim, err := NewSSIM().Calculate(a, b)
	require.NoError(t, err)
	assert.Less(t, ssim, 1.0)
	assert.Greater(t, ssim, -1.0)
}

func TestMetricInfo(t *testing.T) {
	info := NewEvaluator().GetMetricInfo()
	require.Contains(t, info, "psnr")
	assert.True(t, info["psnr"].HigherBetter)
	assert.False(t, info["mse"].HigherBetter)
	assert.Equal(t, [2]float64{0, 1}, info["ssim"].Range)
}
