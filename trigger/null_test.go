package trigger

import (
	"testing"

	"github.com/cwbudde/corrtrigger/wave"
)

// TestNullTriggerS1 is scenario S1: an impulse wave, NullTrigger at index 0
// returns 0 unchanged.
func TestNullTriggerS1(t *testing.T) {
	samples := make([]float32, 48000)
	samples[24000] = 1

	src := wave.NewMemSource(samples, 48000)

	trig, err := NullTriggerConfig{}.Build(src, 1000, 1, 60)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := trig.GetTrigger(0, &FrameCache{})
	if err != nil {
		t.Fatalf("GetTrigger: %v", err)
	}

	if got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestNullTriggerCacheUntouched(t *testing.T) {
	src := wave.NewMemSource(make([]float32, 100), 48000)

	trig, err := NullTriggerConfig{}.Build(src, 10, 1, 60)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	cache := &FrameCache{}

	if _, err := trig.GetTrigger(42, cache); err != nil {
		t.Fatalf("GetTrigger: %v", err)
	}

	if cache.Period != nil || cache.Mean != nil || cache.Spectrum != nil {
		t.Fatalf("cache was touched: %+v", cache)
	}
}
