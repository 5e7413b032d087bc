package gui

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"interpolation-preview/internal/core"
	"interpolation-preview/internal/resample"
)

func TestFormatMetrics(t *testing.T) {
	out := resample.Fill(4, 2, resample.Pixel{})

	assert.Equal(t, "4x2", formatMetrics(core.Result{Output: out}))
	assert.Equal(t, "4x2  baseline", formatMetrics(core.Result{
		Output:  out,
		Metrics: map[string]float64{"psnr": math.Inf(1)},
	}))
	assert.Equal(t, "4x2  PSNR 31.50 dB  SSIM 0.9000  sharpness 1.25", formatMetrics(core.Result{
		Output:  out,
		Metrics: map[string]float64{"psnr": 31.5, "ssim": 0.9, "sharpness": 1.25},
	}))
}

func TestContainTransform(t *testing.T) {
	scale, ox, oy := containTransform(image.Pt(100, 50), 400, 400)
	assert.Equal(t, 4.0, scale)
	assert.Equal(t, 0.0, ox)
	assert.Equal(t, 100.0, oy)
}

func TestParamRange(t *testing.T) {
	lo, hi := paramRange(parameterInfo("lanczos")["a"])
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 8.0, hi)

	lo, hi = paramRange(parameterInfo("mitchell")["b"])
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
	assert.Equal(t, []string{"omit", "clamp"}, edgeOptions())
}
