package core

import "testing"

func TestClampInt(t *testing.T) {
	cases := []struct{ v, want int }{
		{-3, 0},
		{12, 9},
		{5, 5},
		{0, 0},
		{9, 9},
	}
	for _, tc := range cases {
		if got := ClampInt(tc.v, 0, 9); got != tc.want {
			t.Fatalf("ClampInt(%d, 0, 9) = %d, want %d", tc.v, got, tc.want)
		}
	}
}

func TestByteGridFind(t *testing.T) {
	g := NewByteGrid(4, 3)
	g.Set(1, 2, 255)
	g.Set(3, 0, 255)
	g.Set(2, 2, 7)

	hits := g.Find(255)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0] != [2]int{3, 0} || hits[1] != [2]int{1, 2} {
		t.Fatalf("unexpected hit order %v", hits)
	}
	if g.At(2, 2) != 7 {
		t.Fatalf("At(2,2) = %d, want 7", g.At(2, 2))
	}
}

func TestNewByteGridMinimumSize(t *testing.T) {
	g := NewByteGrid(0, -4)
	if g.W != 1 || g.H != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d", g.W, g.H)
	}
	if len(g.Cells()) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(g.Cells()))
	}
}
