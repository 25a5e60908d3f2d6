// Package wave provides random-access, in-memory audio sample sources for
// the trigger algorithms to read windows of data from.
package wave

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned by GetAround when n or stride is not positive.
// Indices outside the available samples are not an error: they read as 0.
var ErrOutOfRange = errors.New("wave: index out of range")

// Source is a random-access, single-channel audio sample provider.
type Source interface {
	// SampleRate returns the source's sample rate in Hz.
	SampleRate() float64

	// NumSamples returns the total number of samples available.
	NumSamples() int

	// GetAround returns n samples centered on center, spaced stride apart.
	// Samples that fall before index 0 or at/after NumSamples() are
	// returned as 0, matching the reference implementation's zero-padding
	// behavior at the edges of a clip.
	GetAround(center, n, stride int) ([]float32, error)

	// At returns the single sample at index i, or 0 if i is out of range.
	At(i int) float32
}

// MemSource is a Source backed by an in-memory slice of samples.
type MemSource struct {
	samples    []float32
	sampleRate float64
}

// NewMemSource wraps samples (already amplitude-scaled) as a Source.
func NewMemSource(samples []float32, sampleRate float64) *MemSource {
	return &MemSource{samples: samples, sampleRate: sampleRate}
}

func (m *MemSource) SampleRate() float64 { return m.sampleRate }

func (m *MemSource) NumSamples() int { return len(m.samples) }

func (m *MemSource) At(i int) float32 {
	if i < 0 || i >= len(m.samples) {
		return 0
	}

	return m.samples[i]
}

func (m *MemSource) GetAround(center, n, stride int) ([]float32, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d must be > 0", ErrOutOfRange, n)
	}

	if stride <= 0 {
		return nil, fmt.Errorf("%w: stride=%d must be > 0", ErrOutOfRange, stride)
	}

	out := make([]float32, n)
	begin := center - (n/2)*stride

	for i := range out {
		out[i] = m.At(begin + i*stride)
	}

	return out, nil
}
