package ring

import "testing"

func TestPushAndPeekWraparound(t *testing.T) {
	a := New(3, 2)

	a.Push([]float64{1, 1})
	a.Push([]float64{2, 2})
	a.Push([]float64{3, 3})

	// After 3 pushes into a 3-slot ring, the write pointer wrapped to 0,
	// so Peek returns the oldest (about to be overwritten) frame.
	got := a.Peek()
	if got[0] != 1 || got[1] != 1 {
		t.Fatalf("Peek=%v, want [1 1]", got)
	}

	a.Push([]float64{4, 4})
	got = a.Peek()
	if got[0] != 2 || got[1] != 2 {
		t.Fatalf("Peek=%v, want [2 2]", got)
	}
}

func TestZeroSizeIsNoOp(t *testing.T) {
	a := New(0, 4)
	a.Push([]float64{1, 2, 3, 4})

	if got := a.Peek(); got != nil {
		t.Fatalf("Peek on zero-size array=%v, want nil", got)
	}
}

func TestLen(t *testing.T) {
	a := New(5, 2)
	if a.Len() != 5 {
		t.Fatalf("Len=%d want 5", a.Len())
	}
}
