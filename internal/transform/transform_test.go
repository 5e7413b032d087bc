package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interpolation-preview/internal/resample"
)

func TestNew(t *testing.T) {
	for _, name := range []string{"opencv", "gift"} {
		tr, err := New(name)
		require.NoError(t, err)
		assert.Equal(t, name, tr.Name())
	}
	_, err := New("vips")
	assert.Error(t, err)
}

func TestNormalizeDegrees(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		90:   90,
		180:  180,
		-180: 180,
		270:  -90,
		-270: 90,
		720:  0,
	}
	for in, want := range cases {
		assert.InDelta(t, want, normalizeDegrees(in), 1e-9, "%v", in)
	}
}

func TestZoomSize(t *testing.T) {
	src := resample.Fill(10, 3, resample.Pixel{})
	w, h, err := zoomSize(src, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 3, w) // 2.5 rounds away from zero
	assert.Equal(t, 1, h)

	_, _, err = zoomSize(src, 0)
	assert.ErrorIs(t, err, resample.ErrInvalidInput)
	_, _, err = zoomSize(src, 9)
	assert.ErrorIs(t, err, resample.ErrInvalidInput)
	_, _, err = zoomSize(src, MinZoom/2)
	assert.ErrorIs(t, err, resample.ErrInvalidInput)

	w, h, err = zoomSize(src, MinZoom)
	require.NoError(t, err)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
	w, h, err = zoomSize(src, MaxZoom)
	require.NoError(t, err)
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
	_, _, err = zoomSize(resample.Fill(2000, 2000, resample.Pixel{}), 8)
	assert.ErrorIs(t, err, resample.ErrInvalidInput)
	_, _, err = zoomSize(resample.Fill(0, 3, resample.Pixel{}), 1)
	assert.ErrorIs(t, err, resample.ErrInvalidInput)
}

func TestGiftZoom(t *testing.T) {
	src := resample.Fill(8, 6, resample.Pixel{R: 200, G: 100, B: 50})
	out, err := NewGift().Zoom(src, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 12, out.Width())
	assert.Equal(t, 9, out.Height())

	p := out.At(6, 4)
	assert.InDelta(t, 200, int(p.R), 2)
	assert.InDelta(t, 100, int(p.G), 2)
	assert.InDelta(t, 50, int(p.B), 2)
}

func TestGiftRotateKeepsCanvas(t *testing.T) {
	src := resample.Fill(9, 5, resample.Pixel{R: 255, G: 255, B: 255})
	out, err := NewGift().Rotate(src, 45)
	require.NoError(t, err)
	assert.Equal(t, 9, out.Width())
	assert.Equal(t, 5, out.Height())
	// The centre stays covered.
	assert.Greater(t, out.At(4, 2).R, uint8(200))
}

func TestApplySkipsIdentity(t *testing.T) {
	src := resample.Fill(4, 4, resample.Pixel{G: 9})
	out, err := Apply(NewGift(), src, 1, 360)
	require.NoError(t, err)
	assert.Same(t, src, out)

	_, err = Apply(NewGift(), resample.Fill(0, 0, resample.Pixel{}), 2, 0)
	assert.ErrorIs(t, err, resample.ErrInvalidInput)
}
