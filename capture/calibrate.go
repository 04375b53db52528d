package capture

import (
	"image"
	"image/color"
)

// Sentinel is the probe color the overlay paints itself with during
// calibration. Pure magenta is effectively absent from real desktop content,
// so any nominal-rect pixel still carrying it after a redraw belongs to the
// overlay's client area rather than to window-manager decorations.
var Sentinel = color.RGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF}

// EffectiveRect scans a capture of the overlay's nominal rectangle for the
// maximal contiguous sub-rectangle filled with the sentinel color. The
// returned rectangle is in global screen coordinates (img is assumed to have
// been captured at nominal). The boolean is false when no sentinel-colored
// region exists, in which case callers fall back to the nominal rectangle.
func EffectiveRect(img *image.RGBA, sentinel color.RGBA, nominal image.Rectangle) (image.Rectangle, bool) {
	if img == nil {
		return nominal, false
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nominal, false
	}

	// Longest sentinel run per row, as half-open [start, end).
	type run struct{ start, end int }
	runs := make([]run, h)
	any := false
	for y := 0; y < h; y++ {
		best := run{}
		cur := run{start: -1}
		for x := 0; x < w; x++ {
			if isSentinel(img, b.Min.X+x, b.Min.Y+y, sentinel) {
				if cur.start < 0 {
					cur.start = x
				}
				cur.end = x + 1
			} else if cur.start >= 0 {
				if cur.end-cur.start > best.end-best.start {
					best = cur
				}
				cur = run{start: -1}
			}
		}
		if cur.start >= 0 && cur.end-cur.start > best.end-best.start {
			best = cur
		}
		runs[y] = best
		if best.end > best.start {
			any = true
		}
	}
	if !any {
		return nominal, false
	}

	// Grow a rectangle down from every top row, narrowing the column span to
	// the intersection of the rows' runs, and keep the largest area seen.
	bestArea := 0
	var bestRect image.Rectangle
	for top := 0; top < h; top++ {
		if runs[top].end <= runs[top].start {
			continue
		}
		lo, hi := runs[top].start, runs[top].end
		for bottom := top; bottom < h; bottom++ {
			r := runs[bottom]
			if r.end <= r.start {
				break
			}
			if r.start > lo {
				lo = r.start
			}
			if r.end < hi {
				hi = r.end
			}
			if hi <= lo {
				break
			}
			area := (hi - lo) * (bottom - top + 1)
			if area > bestArea {
				bestArea = area
				bestRect = image.Rect(lo, top, hi, bottom+1)
			}
		}
	}
	if bestArea == 0 {
		return nominal, false
	}
	return bestRect.Add(nominal.Min), true
}

func isSentinel(img *image.RGBA, x, y int, sentinel color.RGBA) bool {
	c := img.RGBAAt(x, y)
	return c.R == sentinel.R && c.G == sentinel.G && c.B == sentinel.B
}
