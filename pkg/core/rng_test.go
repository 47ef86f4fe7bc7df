package core

import "testing"

func TestStreamDeterministic(t *testing.T) {
	a := NewStream(42, 0)
	b := NewStream(42, 0)
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d diverged: %d vs %d", i, x, y)
		}
	}
}

func TestStreamsDiffer(t *testing.T) {
	a := NewStream(7, 0)
	b := NewStream(7, 1)
	same := 0
	for i := 0; i < 64; i++ {
		if a.IntN(1<<30) == b.IntN(1<<30) {
			same++
		}
	}
	if same == 64 {
		t.Fatal("streams with different indexes produced identical sequences")
	}

	c := NewStream(7, 1)
	d := NewStream(7, 1)
	for i := 0; i < 64; i++ {
		if x, y := c.IntN(100), d.IntN(100); x != y {
			t.Fatalf("stream draw %d diverged: %d vs %d", i, x, y)
		}
	}
}

func TestIntNBounds(t *testing.T) {
	r := NewStream(1, 0)
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d, want 0", got)
	}
	for i := 0; i < 1000; i++ {
		if v := r.IntN(100); v < 0 || v >= 100 {
			t.Fatalf("IntN(100) out of range: %d", v)
		}
	}
}
