package reference

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"interpolation-preview/internal/io"
	"interpolation-preview/internal/resample"
)

// OpenCV upscales with cv::resize and INTER_LANCZOS4.
type OpenCV struct{}

func NewOpenCV() *OpenCV { return &OpenCV{} }

func (o *OpenCV) Name() string { return "opencv-lanczos4" }

func (o *OpenCV) Upscale2x(src *resample.Buffer) (*resample.Buffer, error) {
	mat, err := io.MatFromBuffer(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	result := gocv.NewMat()
	defer result.Close()
	err = gocv.Resize(mat, &result, image.Point{X: src.Width() * 2, Y: src.Height() * 2}, 0, 0, gocv.InterpolationLanczos4)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.Name(), err)
	}
	return io.BufferFromMat(result)
}
