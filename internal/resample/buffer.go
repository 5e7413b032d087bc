// Immutable RGB pixel buffers consumed and produced by the resampling engine
package resample

import (
	"fmt"
	"image"
	"image/color"
)

// Pixel is a single 8-bit RGB sample. There is no alpha channel.
type Pixel struct {
	R, G, B uint8
}

// Buffer is a width x height grid of pixels. It is never mutated once
// returned to a caller; every transform allocates a new Buffer.
type Buffer struct {
	width  int
	height int
	pix    []uint8 // 3 bytes per pixel, row-major
}

// NewBuffer creates a buffer from a row-major slice of pixels.
// The slice is copied.
func NewBuffer(width, height int, pixels []Pixel) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("negative dimensions %dx%d: %w", width, height, ErrInvalidInput)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("got %d pixels for %dx%d: %w", len(pixels), width, height, ErrInvalidInput)
	}
	b := newBuffer(width, height)
	for i, p := range pixels {
		b.pix[i*3] = p.R
		b.pix[i*3+1] = p.G
		b.pix[i*3+2] = p.B
	}
	return b, nil
}

// NewBufferRGB creates a buffer from packed RGB bytes. The slice is copied.
func NewBufferRGB(width, height int, rgb []uint8) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("negative dimensions %dx%d: %w", width, height, ErrInvalidInput)
	}
	if len(rgb) != width*height*3 {
		return nil, fmt.Errorf("got %d bytes for %dx%d RGB: %w", len(rgb), width, height, ErrInvalidInput)
	}
	b := newBuffer(width, height)
	copy(b.pix, rgb)
	return b, nil
}

// Fill returns a buffer where every pixel equals p.
func Fill(width, height int, p Pixel) *Buffer {
	b := newBuffer(width, height)
	for i := 0; i < len(b.pix); i += 3 {
		b.pix[i] = p.R
		b.pix[i+1] = p.G
		b.pix[i+2] = p.B
	}
	return b
}

// FromImage converts any image.Image into a Buffer. Alpha is discarded
// after un-premultiplying.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	b := newBuffer(bounds.Dx(), bounds.Dy())

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < b.height; y++ {
			row := rgba.Pix[rgba.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := 0; x < b.width; x++ {
				s := row[x*4 : x*4+4]
				b.set(x, y, unpremultiply(s[0], s[3]), unpremultiply(s[1], s[3]), unpremultiply(s[2], s[3]))
			}
		}
		return b
	}

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			b.set(x, y, c.R, c.G, c.B)
		}
	}
	return b
}

func unpremultiply(v, a uint8) uint8 {
	switch a {
	case 0:
		return 0
	case 255:
		return v
	}
	return uint8(uint32(v) * 255 / uint32(a))
}

// ToImage returns an opaque RGBA copy of the buffer.
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for i, j := 0, 0; i < len(b.pix); i, j = i+3, j+4 {
		img.Pix[j] = b.pix[i]
		img.Pix[j+1] = b.pix[i+1]
		img.Pix[j+2] = b.pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Bounds returns the rectangle (0,0)-(width,height).
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Empty reports whether the buffer has zero area.
func (b *Buffer) Empty() bool {
	return b == nil || b.width == 0 || b.height == 0
}

// At returns the pixel at (x, y). It panics when out of bounds.
func (b *Buffer) At(x, y int) Pixel {
	i := b.offset(x, y)
	return Pixel{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2]}
}

// RGB returns a copy of the packed RGB bytes.
func (b *Buffer) RGB() []uint8 {
	out := make([]uint8, len(b.pix))
	copy(out, b.pix)
	return out
}

// Equal reports whether both buffers have the same size and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Crop returns a copy of the region r intersected with the buffer bounds.
// The result may be empty.
func (b *Buffer) Crop(r image.Rectangle) *Buffer {
	r = r.Intersect(b.Bounds())
	out := newBuffer(r.Dx(), r.Dy())
	for y := 0; y < out.height; y++ {
		src := b.offset(r.Min.X, r.Min.Y+y)
		copy(out.pix[y*out.width*3:(y+1)*out.width*3], b.pix[src:src+out.width*3])
	}
	return out
}

func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(%dx%d)", b.width, b.height)
}

func newBuffer(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}
}

func (b *Buffer) offset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("resample: pixel (%d,%d) outside %dx%d", x, y, b.width, b.height))
	}
	return (y*b.width + x) * 3
}

func (b *Buffer) set(x, y int, r, g, bl uint8) {
	i := (y*b.width + x) * 3
	b.pix[i] = r
	b.pix[i+1] = g
	b.pix[i+2] = bl
}
