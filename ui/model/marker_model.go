package model

import (
	"strings"

	"github.com/soocke/voice-target-go/domain/geometry"
)

// Marker is a labeled rectangle. Immutable once constructed.
type Marker struct {
	Rect  geometry.Rect
	Label string
}

// MarkerSet pairs rectangles with labels from a fixed alphabet. The set is
// replaced wholesale on each redraw cycle, never partially mutated.
type MarkerSet struct {
	markers []Marker
}

// NewMarkerSet assigns each rect the next unused label from the alphabet.
// When the alphabet runs out the character repeats ("a".."9", then "aa",
// "bb", ...), keeping labels speakable and unique.
func NewMarkerSet(rects []geometry.Rect, alphabet string) *MarkerSet {
	chars := []rune(alphabet)
	if len(chars) == 0 {
		chars = []rune("abcdefghijklmnopqrstuvwxyz0123456789")
	}
	markers := make([]Marker, 0, len(rects))
	for i, r := range rects {
		c := chars[i%len(chars)]
		label := strings.Repeat(string(c), i/len(chars)+1)
		markers = append(markers, Marker{Rect: r, Label: label})
	}
	return &MarkerSet{markers: markers}
}

// Markers returns the markers in label-assignment order. The returned slice
// must not be mutated.
func (s *MarkerSet) Markers() []Marker {
	if s == nil {
		return nil
	}
	return s.markers
}

// FindRect resolves a typed label back to its rectangle.
func (s *MarkerSet) FindRect(label string) (geometry.Rect, bool) {
	if s == nil {
		return geometry.Rect{}, false
	}
	for _, m := range s.markers {
		if m.Label == label {
			return m.Rect, true
		}
	}
	return geometry.Rect{}, false
}

// Len reports the number of markers.
func (s *MarkerSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.markers)
}
