package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interpolation-preview/internal/resample"
)

// pureGo skips the OpenCV resizer, which needs the native library.
func pureGo() []string {
	var names []string
	for _, name := range Names() {
		if name != "opencv-lanczos4" {
			names = append(names, name)
		}
	}
	return names
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "nfnt-lanczos3")
	assert.Contains(t, names, "xdraw-bspline")
	assert.Contains(t, names, "opencv-lanczos4")
	assert.Contains(t, names, "rez-bspline")
}

func TestUpscaleDoublesSize(t *testing.T) {
	src := resample.Fill(16, 12, resample.Pixel{R: 90, G: 90, B: 90})
	for _, name := range pureGo() {
		r, err := Get(name)
		require.NoError(t, err)
		out, err := r.Upscale2x(src)
		require.NoError(t, err, name)
		assert.Equal(t, 32, out.Width(), name)
		assert.Equal(t, 24, out.Height(), name)
		// Every library renormalizes at the border, so flat stays flat.
		assert.InDelta(t, 90, int(out.At(0, 0).R), 2, name)
		assert.InDelta(t, 90, int(out.At(5, 3).G), 2, name)
	}
}

func TestUpscaleRejectsEmpty(t *testing.T) {
	r, err := Get("nfnt-lanczos3")
	require.NoError(t, err)
	_, err = r.Upscale2x(resample.Fill(0, 1, resample.Pixel{}))
	assert.ErrorIs(t, err, resample.ErrInvalidInput)
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("bicubic")
	assert.Error(t, err)
}

func TestKernelResampling(t *testing.T) {
	r := kernelResampling{k: resample.Lanczos{A: 3}}
	assert.Equal(t, float32(3), r.Support())
	assert.Equal(t, float32(1), r.Kernel(0))
}

func TestYCbCrConversionKeepsGray(t *testing.T) {
	src := resample.Fill(3, 2, resample.Pixel{R: 77, G: 77, B: 77})
	img := toYCbCr(src)
	assert.Equal(t, uint8(77), img.Y[img.YOffset(2, 1)])
	assert.Equal(t, uint8(128), img.Cb[img.COffset(2, 1)])
	assert.True(t, src.Equal(resample.FromImage(img)))
}

func TestRezKernel(t *testing.T) {
	f := rezKernel{k: resample.CubicBSpline{}}
	assert.Equal(t, 2, f.Taps())
	assert.InDelta(t, 2.0/3.0, f.Get(0), 1e-12)
}
