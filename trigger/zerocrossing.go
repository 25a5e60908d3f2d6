package trigger

import (
	"fmt"

	"github.com/cwbudde/corrtrigger/wave"
)

// ZeroCrossingTriggerConfig configures a ZeroCrossingTrigger. It has no
// parameters of its own.
type ZeroCrossingTriggerConfig struct{}

// Build constructs a ZeroCrossingTrigger. It is only meaningful as a post
// trigger, and is refused for any stride other than 1.
func (c ZeroCrossingTriggerConfig) Build(source wave.Source, tsamp, stride int, fps float64) (Trigger, error) {
	if stride != 1 {
		return nil, fmt.Errorf("%w: ZeroCrossingTrigger requires stride=1, got %d", ErrConfiguration, stride)
	}

	b, err := newBase(source, tsamp, stride, fps, nil)
	if err != nil {
		return nil, err
	}

	return &ZeroCrossingTrigger{base: b}, nil
}

// ZeroCrossingTrigger nudges index to the nearest zero crossing in the
// waveform's raw sign, scanning outward in the direction that approaches
// zero from the current sample's sign.
type ZeroCrossingTrigger struct {
	base
}

// GetTrigger implements Trigger. cache is unused.
func (t *ZeroCrossingTrigger) GetTrigger(index int, _ *FrameCache) (int, error) {
	if index < 0 || index >= t.wave.NumSamples() {
		return index, nil
	}

	here := t.wave.At(index)

	var direction int
	var test func(float32) bool

	switch {
	case here < 0:
		direction = 1
		test = func(v float32) bool { return v >= 0 }
	case here > 0:
		direction = -1
		test = func(v float32) bool { return v <= 0 }
	default:
		return index + 1, nil
	}

	for delta := 1; delta <= t.tsamp-1; delta++ {
		i := index + delta*direction
		if i < 0 || i >= t.wave.NumSamples() {
			break
		}

		v := t.wave.At(i)
		if test(v) {
			increment := 0
			if v <= 0 {
				increment = 1
			}

			return index + delta*direction + increment, nil
		}
	}

	return index, nil
}
