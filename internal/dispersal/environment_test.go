package dispersal

import (
	"errors"
	"testing"

	"bomb-abm/internal/core"
)

func TestEnvironmentClamp(t *testing.T) {
	env, err := NewEnvironment(10, 10, Position{X: 5, Y: 5})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		in, want Position
	}{
		{Position{-3, 5}, Position{0, 5}},
		{Position{12, 5}, Position{9, 5}},
		{Position{5, 5}, Position{5, 5}},
		{Position{-1, -1}, Position{0, 0}},
		{Position{10, 10}, Position{9, 9}},
	}
	for _, tc := range cases {
		if got := env.Clamp(tc.in); got != tc.want {
			t.Fatalf("Clamp(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEnvironmentContains(t *testing.T) {
	env, err := NewEnvironment(3, 2, Position{X: 1, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !env.Contains(Position{1, 1}) || !env.Contains(Position{2, 1}) {
		t.Fatal("expected in-bounds positions to be contained")
	}
	for _, p := range []Position{{3, 0}, {0, 2}, {-1, 0}, {10, 1}} {
		if env.Contains(p) {
			t.Fatalf("expected %v to be outside", p)
		}
	}
}

func TestNewEnvironmentRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		w, h   int
		origin Position
	}{
		{"zero width", 0, 5, Position{0, 0}},
		{"negative height", 5, -1, Position{0, 0}},
		{"origin outside", 5, 5, Position{5, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewEnvironment(tc.w, tc.h, tc.origin); !errors.Is(err, ErrInvalidEnvironment) {
				t.Fatalf("expected ErrInvalidEnvironment, got %v", err)
			}
		})
	}
}

func TestEnvironmentFromRaster(t *testing.T) {
	g := core.NewByteGrid(3, 2)
	g.Set(2, 1, OriginSentinel)
	g.Set(0, 0, 254)

	env, err := EnvironmentFromRaster(g)
	if err != nil {
		t.Fatal(err)
	}
	if env.Width() != 3 || env.Height() != 2 {
		t.Fatalf("unexpected size %dx%d", env.Width(), env.Height())
	}
	if got := env.Origin(); got != (Position{X: 2, Y: 1}) {
		t.Fatalf("origin = %v, want (2,1)", got)
	}
}

func TestEnvironmentFromRasterSentinelCount(t *testing.T) {
	none := core.NewByteGrid(4, 4)
	if _, err := EnvironmentFromRaster(none); !errors.Is(err, ErrInvalidEnvironment) {
		t.Fatalf("expected error for raster without release point, got %v", err)
	}

	two := core.NewByteGrid(4, 4)
	two.Set(0, 0, OriginSentinel)
	two.Set(3, 3, OriginSentinel)
	if _, err := EnvironmentFromRaster(two); !errors.Is(err, ErrInvalidEnvironment) {
		t.Fatalf("expected error for raster with two release points, got %v", err)
	}

	if _, err := EnvironmentFromRaster(nil); !errors.Is(err, ErrInvalidEnvironment) {
		t.Fatalf("expected error for nil raster, got %v", err)
	}
}

func TestPositionTranslate(t *testing.T) {
	p := Position{X: 1, Y: 2}
	q := p.Translate(-3, 4)
	if q != (Position{X: -2, Y: 6}) {
		t.Fatalf("Translate = %v", q)
	}
	if p != (Position{X: 1, Y: 2}) {
		t.Fatal("Translate mutated the receiver")
	}
	seen := map[Position]int{p: 1}
	if seen[Position{X: 1, Y: 2}] != 1 {
		t.Fatal("positions must compare by value")
	}
}
