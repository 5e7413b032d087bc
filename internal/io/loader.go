// Image loading and saving
package io

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"interpolation-preview/internal/resample"
)

// ImageLoader handles image file operations through OpenCV
type ImageLoader struct {
	logger *logrus.Logger
}

func NewImageLoader(logger *logrus.Logger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

func (il *ImageLoader) LoadImage(filepath string) (*resample.Buffer, error) {
	il.logger.WithField("filepath", filepath).Debug("Loading image")

	if !IsSupportedImageFormat(filepath) {
		return nil, fmt.Errorf("unsupported image format: %s", filepath)
	}

	mat := gocv.IMRead(filepath, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("failed to load image: %s", filepath)
	}

	buf, err := BufferFromMat(mat)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filepath, err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": filepath,
		"width":    buf.Width(),
		"height":   buf.Height(),
		"channels": mat.Channels(),
	}).Info("Image loaded successfully")

	return buf, nil
}

func (il *ImageLoader) SaveImage(buf *resample.Buffer, filepath string) error {
	il.logger.WithField("filepath", filepath).Debug("Saving image")

	if buf.Empty() {
		return fmt.Errorf("cannot save empty image")
	}

	if !IsSupportedImageFormat(filepath) {
		return fmt.Errorf("unsupported image format: %s", filepath)
	}

	mat, err := MatFromBuffer(buf)
	if err != nil {
		return err
	}
	defer mat.Close()

	if !gocv.IMWrite(filepath, mat) {
		return fmt.Errorf("failed to save image: %s", filepath)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": filepath,
		"width":    buf.Width(),
		"height":   buf.Height(),
	}).Info("Image saved successfully")

	return nil
}

var supportedFormats = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp", ".webp", ".ppm", ".pgm"}

// Open reads path with the pure Go codec and falls back to OpenCV for
// streams it cannot decode.
func (il *ImageLoader) Open(path string) (*resample.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, format, err := Decode(f)
	if errors.Is(err, image.ErrFormat) {
		il.logger.WithField("filepath", path).Debug("Falling back to OpenCV decoder")
		return il.LoadImage(path)
	}
	if err != nil {
		return nil, err
	}
	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"format":   format,
		"width":    buf.Width(),
		"height":   buf.Height(),
	}).Info("Image decoded")
	return buf, nil
}

// Write stores buf at path, using OpenCV for extensions Encode lacks.
func (il *ImageLoader) Write(buf *resample.Buffer, path string) error {
	if !CanEncode(path) {
		return il.SaveImage(buf, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, buf, path); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	il.logger.WithField("filepath", path).Info("Image written")
	return nil
}

// IsSupportedImageFormat reports whether the extension of filepath is one
// both the OpenCV loader and the stream codec understand.
func IsSupportedImageFormat(filepath string) bool {
	ext := strings.ToLower(getFileExtension(filepath))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

func getFileExtension(filepath string) string {
	for i := len(filepath) - 1; i >= 0; i-- {
		if filepath[i] == '.' {
			return filepath[i:]
		}
		if filepath[i] == '/' || filepath[i] == '\\' {
			break
		}
	}
	return ""
}

// GetSupportedExtensions returns the accepted file extensions, dot included.
func GetSupportedExtensions() []string {
	return append([]string(nil), supportedFormats...)
}
