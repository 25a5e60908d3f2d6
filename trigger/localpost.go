package trigger

import (
	"fmt"
	"math"

	"github.com/cwbudde/corrtrigger/corrmath"
	"github.com/cwbudde/corrtrigger/wave"
)

// LocalPostTriggerConfig configures a LocalPostTrigger.
type LocalPostTriggerConfig struct {
	// Strength scales the antisymmetric step function used to find the
	// nearest rising edge.
	Strength float64
}

// Build validates the configuration and constructs a LocalPostTrigger.
// Per PostTrigger semantics, it must be built with stride=1 and no further
// nested post trigger.
func (c LocalPostTriggerConfig) Build(source wave.Source, tsamp, stride int, fps float64) (Trigger, error) {
	if stride != 1 {
		return nil, fmt.Errorf("%w: LocalPostTrigger requires stride=1, got %d", ErrConfiguration, stride)
	}

	b, err := newBase(source, tsamp, stride, fps, nil)
	if err != nil {
		return nil, err
	}

	n := tsamp
	corrLen := 2*n - 1

	costNorm := make([]float64, corrLen)
	for i := range costNorm {
		d := float64(i - n)
		costNorm[i] = d * d
	}

	return &LocalPostTrigger{
		base:         b,
		bufferNsamp:  n,
		dataWindow:   corrmath.Hann(n),
		windowedStep: corrmath.CalcStep(n, c.Strength, 1.0/3),
		costNorm:     costNorm,
	}, nil
}

// LocalPostTrigger refines a trigger index by correlating a short, tightly
// windowed slice of data against a step function, restricted to a narrow
// search radius and penalized by squared distance from the probed index,
// divided by the period estimate.
type LocalPostTrigger struct {
	base

	bufferNsamp  int
	dataWindow   []float64
	windowedStep []float64
	costNorm     []float64
}

// GetTrigger implements Trigger.
func (t *LocalPostTrigger) GetTrigger(index int, cache *FrameCache) (int, error) {
	n := t.bufferNsamp

	raw, err := t.wave.GetAround(index, n, t.stride)
	if err != nil {
		return 0, err
	}

	data := toFloat64(raw)

	mean := 0.0
	if cache.Mean != nil {
		mean = float64(*cache.Mean)
	}

	subtractScalar(data, mean)
	corrmath.NormalizeBuffer(data)

	for i := range data {
		data[i] *= t.dataWindow[i]
	}

	if cache.Period == nil {
		return 0, ErrMissingPeriod
	}

	corr, err := corrmath.Correlate(data, t.windowedStep)
	if err != nil {
		return 0, err
	}

	mid := n - 1
	if corr[mid] < 0 {
		// Near a falling edge: give up rather than make a drastic change.
		return index, nil
	}

	cost := make([]float64, len(corr))
	period := float64(*cache.Period)

	for i := range corr {
		cost[i] = t.costNorm[i] / period
	}

	for i := range corr {
		corr[i] -= cost[i]
	}

	radius := int(math.Round(float64(n) / 4))
	left := mid - radius
	right := mid + radius + 1

	restricted := corr[left:right]
	restrictedMid := mid - left

	peakIdx, _ := corrmath.FindPeak(restricted)
	peakOffset := peakIdx - restrictedMid

	return index + t.stride*peakOffset, nil
}
