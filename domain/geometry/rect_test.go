package geometry

import (
	"sort"
	"testing"
)

func TestNormalizeFlipsNegativeExtents(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"positive unchanged", Rect{X: 10, Y: 20, Width: 30, Height: 40}, Rect{X: 10, Y: 20, Width: 30, Height: 40}},
		{"negative width", Rect{X: 50, Y: 20, Width: -30, Height: 40}, Rect{X: 20, Y: 20, Width: 30, Height: 40}},
		{"negative height", Rect{X: 10, Y: 60, Width: 30, Height: -40}, Rect{X: 10, Y: 20, Width: 30, Height: 40}},
		{"both negative", Rect{X: 50, Y: 60, Width: -30, Height: -40}, Rect{X: 20, Y: 20, Width: 30, Height: 40}},
		{"zero size", Rect{X: 5, Y: 5}, Rect{X: 5, Y: 5}},
	}
	for _, tt := range tests {
		got := tt.in.Normalize()
		if got != tt.want {
			t.Errorf("%s: Normalize(%+v) = %+v, want %+v", tt.name, tt.in, got, tt.want)
		}
		// Normalizing twice must not change anything further.
		if again := got.Normalize(); again != got {
			t.Errorf("%s: Normalize not idempotent: %+v -> %+v", tt.name, got, again)
		}
	}
}

func TestNormalizePreservesCoveredPixels(t *testing.T) {
	r := Rect{X: 100, Y: 100, Width: -40, Height: 60}
	n := r.Normalize()
	if n.Width*n.Height != 40*60 {
		t.Fatalf("area changed: got %dx%d", n.Width, n.Height)
	}
	if n.X != 60 || n.Y != 100 {
		t.Fatalf("origin wrong: got (%d,%d)", n.X, n.Y)
	}
}

func TestReadingOrderLess(t *testing.T) {
	a := Rect{X: 50, Y: 10}
	b := Rect{X: 10, Y: 20}
	c := Rect{X: 20, Y: 20}
	if !ReadingOrderLess(a, b) {
		t.Error("higher row must come first regardless of x")
	}
	if !ReadingOrderLess(b, c) {
		t.Error("same row must order by x")
	}
	if ReadingOrderLess(c, b) {
		t.Error("ordering must be asymmetric")
	}
}

func TestReadingOrderSortIsStable(t *testing.T) {
	// Two rects at the same position with different sizes keep their
	// insertion order.
	rects := []Rect{
		{X: 5, Y: 5, Width: 10, Height: 10},
		{X: 5, Y: 5, Width: 20, Height: 20},
		{X: 1, Y: 1, Width: 3, Height: 3},
	}
	sort.SliceStable(rects, func(i, j int) bool { return ReadingOrderLess(rects[i], rects[j]) })
	if rects[0].X != 1 {
		t.Fatalf("expected (1,1) first, got %+v", rects[0])
	}
	if rects[1].Width != 10 || rects[2].Width != 20 {
		t.Fatalf("tie order not preserved: %+v", rects[1:])
	}
}

func TestClampTo(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"inside unchanged", Rect{X: 10, Y: 10, Width: 20, Height: 20}, Rect{X: 10, Y: 10, Width: 20, Height: 20}},
		{"pushed left", Rect{X: -5, Y: 10, Width: 20, Height: 20}, Rect{X: 0, Y: 10, Width: 20, Height: 20}},
		{"pushed up from bottom", Rect{X: 10, Y: 90, Width: 20, Height: 20}, Rect{X: 10, Y: 80, Width: 20, Height: 20}},
		{"wider than bounds", Rect{X: -10, Y: 0, Width: 200, Height: 20}, Rect{X: 0, Y: 0, Width: 100, Height: 20}},
	}
	for _, tt := range tests {
		if got := tt.in.ClampTo(bounds); got != tt.want {
			t.Errorf("%s: ClampTo(%+v) = %+v, want %+v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestContainsAndCenter(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 10}
	if !r.Contains(10, 10) || !r.Contains(29, 19) {
		t.Error("corner pixels must be inside")
	}
	if r.Contains(30, 10) || r.Contains(10, 20) {
		t.Error("far edges are exclusive")
	}
	cx, cy := r.Center()
	if cx != 20 || cy != 15 {
		t.Errorf("Center() = (%d,%d), want (20,15)", cx, cy)
	}
}
