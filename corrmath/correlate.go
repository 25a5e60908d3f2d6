// Package corrmath provides the numeric kernels shared by the trigger
// algorithms: FFT-accelerated cross-correlation, period estimation, window
// generation, and buffer resampling.
package corrmath

import (
	"errors"
	"fmt"

	dspconv "github.com/cwbudde/algo-dsp/dsp/conv"
)

// ErrEmptyInput is returned by correlation and period helpers given a
// zero-length signal.
var ErrEmptyInput = errors.New("corrmath: input must not be empty")

// Correlate computes the full cross-correlation of a and b via FFT.
// The result has length len(a) + len(b) - 1; output index k corresponds to
// lag k - (len(b) - 1).
//
// The FFT correlation itself is the teacher's own dsp/conv.CorrelateFFT:
// the trigger algorithms only need the correlation primitive, not the rest
// of dsp/conv's convolution/deconvolution surface, so this pulls in just
// that function rather than re-deriving it under a new name.
func Correlate(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	result, err := dspconv.CorrelateFFT(a, b)
	if err != nil {
		return nil, fmt.Errorf("corrmath: %w", err)
	}

	return result, nil
}

// FindPeak returns the index and value of the first maximum in a
// correlation result. Ties are broken by the earliest occurrence.
func FindPeak(corr []float64) (index int, value float64) {
	return dspconv.FindPeak(corr)
}
