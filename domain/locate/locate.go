// Package locate finds occurrences of a small template image inside a larger
// frame using normalized cross-correlation, and selects one occurrence among
// several via a disambiguation strategy.
package locate

import (
	"image"
	"sort"

	"github.com/soocke/voice-target-go/domain/geometry"
)

// Match is a candidate placement of a template within a frame. Rect is
// relative to the searched frame's origin; Score is the NCC confidence in
// [-1, 1].
type Match struct {
	Rect  geometry.Rect
	Score float64
}

// Options configures a template search.
type Options struct {
	// Threshold is the minimum NCC score a window must reach. Zero means
	// the default of 0.9.
	Threshold float64
	// MaxMatches stops the scan once this many deduplicated matches have
	// been collected. Zero means unbounded. Callers enforcing a sanity
	// limit of N should pass N+1 so an overflow remains detectable.
	MaxMatches int
}

func (o Options) threshold() float64 {
	if o.Threshold <= 0 {
		return 0.90
	}
	return o.Threshold
}

// LocateInImage returns every placement of tmpl inside frame whose NCC score
// meets the threshold, deduplicated so that no two matches overlap, sorted
// in reading order (top to bottom, then left to right). A nil or zero-area
// frame or template yields no matches.
func LocateInImage(frame *image.RGBA, tmpl image.Image, opts Options) []Match {
	pre := buildGrayPrecomp(frame)
	pc := buildTemplatePrecomp(tmpl)
	if pre == nil || pc == nil || pre.W < pc.W || pre.H < pc.H {
		return nil
	}

	var candidates []Match
	for y := 0; y <= pre.H-pc.H; y++ {
		for x := 0; x <= pre.W-pc.W; x++ {
			var score float64
			if pc.stdT <= 1e-9 {
				if !flatMatchAt(pre, pc, x, y) {
					continue
				}
				score = 1
			} else {
				score = nccScoreAt(pre, pc, x, y)
				if score < opts.threshold() {
					continue
				}
			}
			candidates = append(candidates, Match{
				Rect:  geometry.Rect{X: x, Y: y, Width: pc.W, Height: pc.H},
				Score: score,
			})
		}
	}

	matches := suppressOverlaps(candidates, pc.W, pc.H, opts.MaxMatches)
	SortReadingOrder(matches)
	return matches
}

// suppressOverlaps keeps the best-scoring window from each cluster of
// overlapping candidates. Candidates are visited by descending score; a
// candidate whose rect intersects an already accepted one is dropped.
func suppressOverlaps(candidates []Match, w, h, limit int) []Match {
	if len(candidates) == 0 {
		return nil
	}
	byScore := make([]Match, len(candidates))
	copy(byScore, candidates)
	sort.SliceStable(byScore, func(i, j int) bool { return byScore[i].Score > byScore[j].Score })

	var kept []Match
	for _, c := range byScore {
		overlaps := false
		for _, k := range kept {
			if c.Rect.Image().Overlaps(k.Rect.Image()) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		kept = append(kept, c)
		if limit > 0 && len(kept) >= limit {
			break
		}
	}
	return kept
}

// SortReadingOrder sorts matches by the top-left corner of their rects, top
// to bottom then left to right. The sort is stable: ties keep their original
// relative order.
func SortReadingOrder(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return geometry.ReadingOrderLess(matches[i].Rect, matches[j].Rect)
	})
}
