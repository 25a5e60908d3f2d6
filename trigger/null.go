package trigger

import "github.com/cwbudde/corrtrigger/wave"

// NullTriggerConfig configures a NullTrigger. It has no parameters.
type NullTriggerConfig struct{}

// Build constructs a NullTrigger.
func (c NullTriggerConfig) Build(source wave.Source, tsamp, stride int, fps float64) (Trigger, error) {
	b, err := newBase(source, tsamp, stride, fps, nil)
	if err != nil {
		return nil, err
	}

	return &NullTrigger{base: b}, nil
}

// NullTrigger never adjusts the requested index. Useful for channels that
// should render un-triggered (e.g. already phase-aligned material).
type NullTrigger struct {
	base
}

// GetTrigger implements Trigger: it always returns index unchanged.
func (t *NullTrigger) GetTrigger(index int, _ *FrameCache) (int, error) {
	return index, nil
}
