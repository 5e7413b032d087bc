// Core image data structure with thread-safe operations
package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"interpolation-preview/internal/resample"
)

// ErrNoImage is returned when an operation needs a loaded image.
var ErrNoImage = errors.New("no image loaded")

// maxDimension bounds loaded images to keep previews responsive.
const maxDimension = 16384

// ImageData holds the loaded source image with thread safety. Buffers are
// immutable, so the getters hand out the stored pointer.
type ImageData struct {
	mu       sync.RWMutex
	original *resample.Buffer
	hasImage bool
	filepath string
	metadata ImageMetadata
}

// ImageMetadata contains image information
type ImageMetadata struct {
	Width  int
	Height int
	Format string
}

func NewImageData() *ImageData {
	return &ImageData{}
}

// SetOriginal replaces the source image after validation
func (img *ImageData) SetOriginal(buf *resample.Buffer, path string) error {
	if err := ValidateImage(buf); err != nil {
		return err
	}

	img.mu.Lock()
	defer img.mu.Unlock()

	img.original = buf
	img.hasImage = true
	img.filepath = path
	img.metadata = ImageMetadata{
		Width:  buf.Width(),
		Height: buf.Height(),
		Format: getFormatFromPath(path),
	}
	return nil
}

// GetOriginal returns the source image or nil
func (img *ImageData) GetOriginal() *resample.Buffer {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.original
}

func (img *ImageData) HasImage() bool {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.hasImage
}

func (img *ImageData) GetMetadata() ImageMetadata {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.metadata
}

func (img *ImageData) GetFilepath() string {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.filepath
}

func (img *ImageData) Clear() {
	img.mu.Lock()
	defer img.mu.Unlock()

	img.original = nil
	img.hasImage = false
	img.filepath = ""
	img.metadata = ImageMetadata{}
}

func getFormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}

// ValidateImage checks basic requirements for a source image
func ValidateImage(buf *resample.Buffer) error {
	if buf.Empty() {
		return fmt.Errorf("image is empty: %w", resample.ErrInvalidInput)
	}
	if buf.Width() > maxDimension || buf.Height() > maxDimension {
		return fmt.Errorf("image too large: %dx%d (max: %d): %w",
			buf.Width(), buf.Height(), maxDimension, resample.ErrInvalidInput)
	}
	return nil
}
