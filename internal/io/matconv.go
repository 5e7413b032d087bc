package io

import (
	"fmt"

	"gocv.io/x/gocv"

	"interpolation-preview/internal/resample"
)

// MatFromBuffer copies b into a new 8-bit BGR Mat. The caller owns the Mat.
func MatFromBuffer(b *resample.Buffer) (gocv.Mat, error) {
	if b.Empty() {
		return gocv.NewMat(), fmt.Errorf("cannot convert empty buffer: %w", resample.ErrInvalidInput)
	}
	bgr := b.RGB()
	swapRB(bgr)
	return gocv.NewMatFromBytes(b.Height(), b.Width(), gocv.MatTypeCV8UC3, bgr)
}

// BufferFromMat copies an 8-bit gray, BGR or BGRA Mat into a Buffer.
func BufferFromMat(mat gocv.Mat) (*resample.Buffer, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("image is empty: %w", resample.ErrInvalidInput)
	}

	var code gocv.ColorConversionCode
	switch mat.Channels() {
	case 3:
	case 1:
		code = gocv.ColorGrayToBGR
	case 4:
		code = gocv.ColorBGRAToBGR
	default:
		return nil, fmt.Errorf("unsupported number of channels: %d", mat.Channels())
	}

	bgr := mat.Clone()
	defer bgr.Close()
	if mat.Channels() != 3 {
		converted := gocv.NewMat()
		defer converted.Close()
		if err := gocv.CvtColor(bgr, &converted, code); err != nil {
			return nil, fmt.Errorf("color conversion failed: %w", err)
		}
		bgr, converted = converted, bgr
	}

	if bgr.Type() != gocv.MatTypeCV8UC3 {
		depth := gocv.NewMat()
		defer depth.Close()
		bgr.ConvertTo(&depth, gocv.MatTypeCV8UC3)
		bgr, depth = depth, bgr
	}

	data := bgr.ToBytes()
	swapRB(data)
	return resample.NewBufferRGB(bgr.Cols(), bgr.Rows(), data)
}

func swapRB(pix []uint8) {
	for i := 0; i+2 < len(pix); i += 3 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}
