package resample

// Concat places buffers left to right. All inputs must have the same height.
func Concat(buffers ...*Buffer) (*Buffer, error) {
	if len(buffers) == 0 {
		return nil, errorf(ErrInvalidInput, "nothing to concatenate")
	}
	height := -1
	width := 0
	for i, b := range buffers {
		if b == nil {
			return nil, errorf(ErrInvalidInput, "buffer %d is nil", i)
		}
		if height < 0 {
			height = b.height
		} else if b.height != height {
			return nil, errorf(ErrDimensionMismatch, "buffer %d has height %d, want %d", i, b.height, height)
		}
		width += b.width
	}

	dst := newBuffer(width, height)
	rowBytes := width * 3
	left := 0
	for _, b := range buffers {
		n := b.width * 3
		for y := 0; y < height; y++ {
			copy(dst.pix[y*rowBytes+left:], b.pix[y*n:(y+1)*n])
		}
		left += n
	}
	return dst, nil
}
