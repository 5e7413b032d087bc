package resample

import (
	"golang.org/x/image/draw"
)

// DrawKernel adapts k to golang.org/x/image/draw so the standard scalers can
// run with the same weighting function. Note that x/image/draw samples at
// pixel centres, so its output is offset by a quarter source pixel compared
// to Resample.
func DrawKernel(k Kernel) *draw.Kernel {
	return &draw.Kernel{
		Support: float64(k.Support()),
		At:      k.Weight,
	}
}
