package io

import (
	"bytes"
	goio "io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interpolation-preview/internal/resample"
)

func testBuffer(t *testing.T) *resample.Buffer {
	t.Helper()
	b, err := resample.NewBuffer(3, 2, []resample.Pixel{
		{R: 255}, {G: 255}, {B: 255},
		{R: 10, G: 20, B: 30}, {R: 128, G: 128, B: 128}, {R: 255, G: 255, B: 255},
	})
	require.NoError(t, err)
	return b
}

func TestLosslessRoundTrip(t *testing.T) {
	src := testBuffer(t)
	for _, name := range []string{"out.png", "OUT.BMP", "out.tiff"} {
		var w bytes.Buffer
		require.NoError(t, Encode(&w, src, name), name)

		got, _, err := Decode(&w)
		require.NoError(t, err, name)
		assert.True(t, src.Equal(got), name)
	}
}

func TestDecodeReportsFormat(t *testing.T) {
	var w bytes.Buffer
	require.NoError(t, Encode(&w, testBuffer(t), "x.bmp"))
	_, format, err := Decode(&w)
	require.NoError(t, err)
	assert.Equal(t, "bmp", format)
}

func TestJPEGKeepsSize(t *testing.T) {
	var w bytes.Buffer
	require.NoError(t, Encode(&w, testBuffer(t), "x.jpg"))
	got, format, err := Decode(&w)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 3, got.Width())
	assert.Equal(t, 2, got.Height())
}

func TestEncodeErrors(t *testing.T) {
	var w bytes.Buffer
	assert.ErrorIs(t, Encode(&w, testBuffer(t), "x.gif"), ErrUnsupportedFormat)
	assert.ErrorIs(t, Encode(&w, resample.Fill(0, 0, resample.Pixel{}), "x.png"), resample.ErrInvalidInput)

	_, _, err := Decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestSupportedFormats(t *testing.T) {
	assert.True(t, IsSupportedImageFormat("/tmp/a.PNG"))
	assert.True(t, IsSupportedImageFormat("photo.jpeg"))
	assert.False(t, IsSupportedImageFormat("dir.png/file"))
	assert.False(t, IsSupportedImageFormat("noext"))
	assert.Contains(t, GetSupportedExtensions(), ".bmp")
}

func TestSwapRB(t *testing.T) {
	pix := []uint8{1, 2, 3, 4, 5, 6}
	swapRB(pix)
	assert.Equal(t, []uint8{3, 2, 1, 6, 5, 4}, pix)
}

func TestCanEncode(t *testing.T) {
	for _, name := range []string{"a.png", "b.JPEG", "c.bmp", "dir.v2/d.tif"} {
		assert.True(t, CanEncode(name), name)
	}
	for _, name := range []string{"a.webp", "noext", "dir.png/file"} {
		assert.False(t, CanEncode(name), name)
	}
}

func TestLoaderWriteThenOpen(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(goio.Discard)
	loader := NewImageLoader(logger)

	path := filepath.Join(t.TempDir(), "frame.png")
	src := testBuffer(t)
	require.NoError(t, loader.Write(src, path))

	got, err := loader.Open(path)
	require.NoError(t, err)
	assert.True(t, src.Equal(got))

	_, err = loader.Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
