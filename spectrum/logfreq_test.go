package spectrum

import (
	"math"
	"testing"
)

func defaultConfig() Config {
	return Config{
		MinHz:                      40,
		Octaves:                    7,
		NotesPerOctave:             6,
		Exponent:                   1,
		MinFramesBetweenRecompute:  6,
		FramesToLookbehind:         2,
		PitchEstimateBoost:         1.2,
		AddCurrentToHistory:        0.1,
		MaxOctavesToResample:       1.0,
	}
}

func TestNewBuildsNonCollidingFenceposts(t *testing.T) {
	s, err := New(defaultConfig(), 48000.0/64, 2048)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if s.NFFT() <= 0 {
		t.Fatalf("NFFT=%d", s.NFFT())
	}

	for i := 1; i < len(s.binFenceposts); i++ {
		if s.binFenceposts[i] == s.binFenceposts[i-1] {
			t.Fatalf("adjacent fenceposts collided at %d: %v", i, s.binFenceposts)
		}
	}
}

func TestCalcSpectrumLength(t *testing.T) {
	cfg := defaultConfig()
	subsmpHz := 48000.0 / 64

	s, err := New(cfg, subsmpHz, 2048)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	data := make([]float64, 2048)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * float64(i) * 440 / subsmpHz)
	}

	spec, err := s.CalcSpectrum(data)
	if err != nil {
		t.Fatalf("CalcSpectrum: %v", err)
	}

	wantLen := len(s.binFenceposts) - 1
	if len(spec) != wantLen {
		t.Fatalf("len(spec)=%d, want %d", len(spec), wantLen)
	}
}

func TestMaxNotesToResample(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.MaxNotesToResample(); got != 6 {
		t.Fatalf("MaxNotesToResample=%d, want 6", got)
	}
}
