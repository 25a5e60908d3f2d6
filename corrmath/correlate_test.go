package corrmath

import (
	"math"
	"testing"
)

func TestCorrelateLength(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{0, 1, 0, 0}

	corr, err := Correlate(a, b)
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}

	want := len(a) + len(b) - 1
	if len(corr) != want {
		t.Fatalf("len=%d want=%d", len(corr), want)
	}
}

func TestCorrelateEmptyInput(t *testing.T) {
	if _, err := Correlate(nil, []float64{1}); err != ErrEmptyInput {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestCorrelateSelfPeakAtZeroLag(t *testing.T) {
	a := []float64{0, 1, 0, -1, 0, 1, 0, -1}

	corr, err := Correlate(a, a)
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}

	mid := len(a) - 1
	idx, _ := FindPeak(corr)
	if idx != mid {
		t.Fatalf("autocorrelation peak at %d, want %d (zero lag)", idx, mid)
	}
}

func TestFindPeakTiesBreakFirst(t *testing.T) {
	corr := []float64{1, 3, 3, 2}
	idx, val := FindPeak(corr)
	if idx != 1 || val != 3 {
		t.Fatalf("idx=%d val=%v, want idx=1 val=3", idx, val)
	}
}

func TestGetPeriodSquareWave(t *testing.T) {
	period := 100
	data := make([]float64, period*4)
	for i := range data {
		if i%period < period/2 {
			data[i] = 1
		} else {
			data[i] = -1
		}
	}

	got, err := GetPeriod(data)
	if err != nil {
		t.Fatalf("GetPeriod: %v", err)
	}

	if got != period {
		t.Fatalf("GetPeriod=%d, want %d", got, period)
	}
}

func TestGetPeriodAllZeros(t *testing.T) {
	data := make([]float64, 64)
	got, err := GetPeriod(data)
	if err != nil {
		t.Fatalf("GetPeriod: %v", err)
	}

	if got != len(data) {
		t.Fatalf("GetPeriod=%d, want len(data)=%d", got, len(data))
	}
}

func TestGetPeriodEmpty(t *testing.T) {
	if _, err := GetPeriod(nil); err != ErrEmptyInput {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestCorrelateOffsetDetectsShift(t *testing.T) {
	n := 64
	ref := make([]float64, n)
	for i := range ref {
		ref[i] = math.Sin(2 * math.Pi * float64(i) / 16)
	}

	shift := 3
	data := make([]float64, n)
	for i := range data {
		src := i - shift
		if src >= 0 && src < n {
			data[i] = ref[src]
		}
	}

	offset, err := CorrelateOffset(data, ref, -1, 0, 1)
	if err != nil {
		t.Fatalf("CorrelateOffset: %v", err)
	}

	if offset != shift {
		t.Fatalf("offset=%d, want %d", offset, shift)
	}
}
