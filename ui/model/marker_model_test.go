package model

import (
	"testing"

	"github.com/soocke/voice-target-go/domain/geometry"
)

func markerRects(n int) []geometry.Rect {
	out := make([]geometry.Rect, n)
	for i := range out {
		out[i] = geometry.Rect{X: i * 10, Y: 0, Width: 8, Height: 8}
	}
	return out
}

func TestMarkerLabelsFollowAlphabet(t *testing.T) {
	set := NewMarkerSet(markerRects(4), "abc")
	want := []string{"a", "b", "c", "aa"}
	markers := set.Markers()
	if len(markers) != 4 {
		t.Fatalf("got %d markers", len(markers))
	}
	for i, m := range markers {
		if m.Label != want[i] {
			t.Errorf("marker %d label %q, want %q", i, m.Label, want[i])
		}
	}
}

func TestMarkerLabelsRepeatBeyondTwice(t *testing.T) {
	set := NewMarkerSet(markerRects(7), "ab")
	want := []string{"a", "b", "aa", "bb", "aaa", "bbb", "aaaa"}
	for i, m := range set.Markers() {
		if m.Label != want[i] {
			t.Errorf("marker %d label %q, want %q", i, m.Label, want[i])
		}
	}
}

func TestMarkerFindRect(t *testing.T) {
	rects := markerRects(3)
	set := NewMarkerSet(rects, "abc")
	r, ok := set.FindRect("b")
	if !ok || r != rects[1] {
		t.Fatalf("FindRect(b) = %+v ok=%v", r, ok)
	}
	if _, ok := set.FindRect("z"); ok {
		t.Error("unknown label must not resolve")
	}
}

func TestMarkerNilSetIsSafe(t *testing.T) {
	var set *MarkerSet
	if set.Len() != 0 || set.Markers() != nil {
		t.Error("nil set must behave as empty")
	}
	if _, ok := set.FindRect("a"); ok {
		t.Error("nil set must not resolve labels")
	}
}

func TestMarkerEmptyAlphabetFallsBack(t *testing.T) {
	set := NewMarkerSet(markerRects(1), "")
	if set.Markers()[0].Label != "a" {
		t.Fatalf("fallback alphabet not applied: %q", set.Markers()[0].Label)
	}
}
