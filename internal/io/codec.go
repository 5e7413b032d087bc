package io

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	goio "io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"interpolation-preview/internal/resample"
)

// ErrUnsupportedFormat is returned by Encode for extensions it cannot write.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// CanEncode reports whether Encode handles filename's extension.
func CanEncode(filename string) bool {
	switch strings.ToLower(getFileExtension(filename)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

// Decode reads a PNG, JPEG, BMP, TIFF or WebP stream. It is used for readers
// handed out by file dialogs, where no filesystem path may exist.
func Decode(r goio.Reader) (*resample.Buffer, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	buf := resample.FromImage(img)
	if buf.Empty() {
		return nil, format, fmt.Errorf("decoded %s image is empty: %w", format, resample.ErrInvalidInput)
	}
	return buf, format, nil
}

// Encode writes buf in the format implied by filename's extension.
func Encode(w goio.Writer, buf *resample.Buffer, filename string) error {
	if buf.Empty() {
		return fmt.Errorf("cannot encode empty image: %w", resample.ErrInvalidInput)
	}
	img := buf.ToImage()
	switch ext := strings.ToLower(getFileExtension(filename)); ext {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
