package locate

import (
	"image"
	"math"
)

// Disambiguator selects one match from a reading-ordered list.
type Disambiguator struct {
	kind  disambiguatorKind
	index int
}

type disambiguatorKind int

const (
	kindIndex disambiguatorKind = iota
	kindNearest
	kindNearestCycle
)

// Index selects the i-th match in reading order.
func Index(i int) Disambiguator { return Disambiguator{kind: kindIndex, index: i} }

// Nearest selects the first match strictly after the pointer's normalized
// reference point in reading order, or nothing when the pointer is already
// past the last match.
func Nearest() Disambiguator { return Disambiguator{kind: kindNearest} }

// NearestCycle behaves like Nearest but wraps around to the first match when
// no later match exists. Repeated invocation walks all matches in a loop.
func NearestCycle() Disambiguator { return Disambiguator{kind: kindNearestCycle} }

// ChooseParams carries the pointer context used by the Nearest strategies.
type ChooseParams struct {
	Cursor       image.Point // current pointer position, global coordinates
	Offset       image.Point // offset previously applied to the pointer target
	TemplateSize image.Point // width/height of the matched template
	SearchOrigin image.Point // global origin of the search rectangle
}

// Choose selects one match according to the disambiguator. Matches must be
// in reading order (as returned by LocateInImage). The boolean result is
// false when no match qualifies; callers treat that as a silent no-op.
func Choose(matches []Match, d Disambiguator, p ChooseParams) (Match, bool) {
	if len(matches) == 0 {
		return Match{}, false
	}
	switch d.kind {
	case kindIndex:
		if d.index < 0 || d.index >= len(matches) {
			return Match{}, false
		}
		return matches[d.index], true
	case kindNearest, kindNearestCycle:
		// Shift the pointer back by the applied offset and half the template
		// size so the reference point lines up with match top-left corners.
		// Ceiling keeps the bookkeeping consistent with PointerTarget.
		refX := int(math.Ceil(float64(p.Cursor.X-p.Offset.X) - float64(p.TemplateSize.X)/2))
		refY := int(math.Ceil(float64(p.Cursor.Y-p.Offset.Y) - float64(p.TemplateSize.Y)/2))
		for _, m := range matches {
			gx := p.SearchOrigin.X + m.Rect.X
			gy := p.SearchOrigin.Y + m.Rect.Y
			if (gy == refY && gx > refX) || gy > refY {
				return m, true
			}
		}
		if d.kind == kindNearestCycle {
			return matches[0], true
		}
		return Match{}, false
	}
	return Match{}, false
}

// PointerTarget computes the on-screen point for a chosen match: the search
// rectangle origin plus the match center plus the caller offset, rounded up
// to whole pixels on both axes. The ceiling must stay consistent with the
// reference-point math in Choose.
func PointerTarget(searchOrigin image.Point, m Match, offset image.Point) image.Point {
	r := m.Rect.Normalize()
	x := float64(searchOrigin.X+r.X+offset.X) + float64(r.Width)/2
	y := float64(searchOrigin.Y+r.Y+offset.Y) + float64(r.Height)/2
	return image.Point{X: int(math.Ceil(x)), Y: int(math.Ceil(y))}
}
