package trigger

import (
	"math"
	"testing"

	"github.com/cwbudde/corrtrigger/wave"
)

// TestZeroCrossingS2 is scenario S2: an impulse at sample 24000 in a
// 48000-sample buffer of zeros. Index 23999 holds a zero sample, so the
// "wave[index]==0" branch returns index+1, the impulse sample itself.
func TestZeroCrossingS2(t *testing.T) {
	samples := make([]float32, 48000)
	samples[24000] = 1

	src := wave.NewMemSource(samples, 48000)

	trig, err := ZeroCrossingTriggerConfig{}.Build(src, 1000, 1, 60)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := trig.GetTrigger(23999, &FrameCache{})
	if err != nil {
		t.Fatalf("GetTrigger: %v", err)
	}

	if got != 24000 {
		t.Fatalf("GetTrigger(23999)=%d, want 24000", got)
	}
}

// TestZeroCrossingNoCrossingWithinScan covers "If no crossing found,
// return index unchanged" (§4.5): a monotonic wave with no sign change
// within the scan window leaves the index untouched.
func TestZeroCrossingNoCrossingWithinScan(t *testing.T) {
	samples := make([]float32, 2000)
	for i := range samples {
		samples[i] = 1
	}

	src := wave.NewMemSource(samples, 48000)

	trig, err := ZeroCrossingTriggerConfig{}.Build(src, 10, 1, 60)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := trig.GetTrigger(500, &FrameCache{})
	if err != nil {
		t.Fatalf("GetTrigger: %v", err)
	}

	if got != 500 {
		t.Fatalf("GetTrigger(500)=%d, want 500 unchanged (all-positive wave has no crossing)", got)
	}
}

// TestZeroCrossingS3 is scenario S3: a 100 Hz sine at 48 kHz, triggering a
// quarter period past a zero crossing should land within [479, 481].
func TestZeroCrossingS3(t *testing.T) {
	n := 48000
	samples := make([]float32, n)

	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * 100 * float64(i) / 48000))
	}

	src := wave.NewMemSource(samples, 48000)

	trig, err := ZeroCrossingTriggerConfig{}.Build(src, 1000, 1, 60)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := trig.GetTrigger(240, &FrameCache{})
	if err != nil {
		t.Fatalf("GetTrigger: %v", err)
	}

	if got < 479 || got > 481 {
		t.Fatalf("GetTrigger(240)=%d, want in [479, 481]", got)
	}

	if !(samples[got-1] <= 0 && samples[got] > 0) {
		t.Fatalf("result %d does not land on a rising zero crossing: wave[%d]=%v wave[%d]=%v",
			got, got-1, samples[got-1], got, samples[got])
	}
}

func TestZeroCrossingOutOfRangeUnchanged(t *testing.T) {
	src := wave.NewMemSource(make([]float32, 100), 48000)

	trig, err := ZeroCrossingTriggerConfig{}.Build(src, 10, 1, 60)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, idx := range []int{-5, 100, 1000} {
		got, err := trig.GetTrigger(idx, &FrameCache{})
		if err != nil {
			t.Fatalf("GetTrigger(%d): %v", idx, err)
		}

		if got != idx {
			t.Fatalf("GetTrigger(%d)=%d, want unchanged", idx, got)
		}
	}
}

// TestZeroCrossingRequiresStride1 is testable property 6.
func TestZeroCrossingRequiresStride1(t *testing.T) {
	src := wave.NewMemSource(make([]float32, 100), 48000)

	if _, err := (ZeroCrossingTriggerConfig{}).Build(src, 10, 2, 60); err == nil {
		t.Fatal("expected error building ZeroCrossingTrigger with stride != 1")
	}
}
