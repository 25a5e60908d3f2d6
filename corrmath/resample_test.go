package corrmath

import "testing"

func TestResampleLinearPreservesEndpoints(t *testing.T) {
	data := []float64{0, 10, 20, 30}
	out := ResampleLinear(data, 7)

	if !almostEqual(out[0], data[0], 1e-9) {
		t.Fatalf("first=%v want %v", out[0], data[0])
	}

	if !almostEqual(out[len(out)-1], data[len(data)-1], 1e-9) {
		t.Fatalf("last=%v want %v", out[len(out)-1], data[len(data)-1])
	}
}

func TestResampleLinearSameLength(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	out := ResampleLinear(data, len(data))

	for i := range data {
		if !almostEqual(out[i], data[i], 1e-9) {
			t.Fatalf("index %d: got=%v want=%v", i, out[i], data[i])
		}
	}
}
