// Package blob computes connected-component bounding boxes over the
// foreground pixels of an image region. Components feed the marker overlay,
// which labels each box for voice-driven pointer placement.
package blob

import (
	"image"

	"github.com/soocke/voice-target-go/domain/geometry"
)

// Options configures foreground classification.
type Options struct {
	// Threshold is the minimum absolute luminance delta from the background
	// for a pixel to count as foreground. Zero means the default of 40.
	Threshold uint8
}

func (o Options) threshold() int {
	if o.Threshold == 0 {
		return 40
	}
	return int(o.Threshold)
}

// Segment finds all maximal 4-connected foreground components in img and
// returns one bounding rect per component, relative to the image origin, in
// raster discovery order (the order the scan first touches each component).
// Pixel membership is not retained. The background luminance is estimated
// from the image border; a pixel is foreground when its luminance differs
// from that estimate by at least the threshold.
func Segment(img *image.RGBA, opts Options) []geometry.Rect {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	lum := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			lum[y*w+x] = int((299*(r>>8) + 587*(g>>8) + 114*(bl>>8)) / 1000)
		}
	}

	bg := borderLuminance(lum, w, h)
	thr := opts.threshold()
	fg := func(i int) bool { return abs(lum[i]-bg) >= thr }

	visited := make([]bool, w*h)
	var rects []geometry.Rect
	queue := make([]int, 0, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			start := y*w + x
			if visited[start] || !fg(start) {
				continue
			}
			// Flood fill the component, tracking its extents only.
			minX, minY, maxX, maxY := x, y, x, y
			visited[start] = true
			queue = append(queue[:0], start)
			for len(queue) > 0 {
				cur := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				cx, cy := cur%w, cur/w
				if cx < minX {
					minX = cx
				}
				if cx > maxX {
					maxX = cx
				}
				if cy < minY {
					minY = cy
				}
				if cy > maxY {
					maxY = cy
				}
				for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
					nx, ny := cx+d[0], cy+d[1]
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					ni := ny*w + nx
					if visited[ni] || !fg(ni) {
						continue
					}
					visited[ni] = true
					queue = append(queue, ni)
				}
			}
			rects = append(rects, geometry.Rect{
				X:      minX,
				Y:      minY,
				Width:  maxX - minX + 1,
				Height: maxY - minY + 1,
			})
		}
	}
	return rects
}

// borderLuminance estimates the background as the median luminance of the
// outermost pixel ring. The median tolerates foreground shapes touching the
// border better than a mean would.
func borderLuminance(lum []int, w, h int) int {
	var border []int
	for x := 0; x < w; x++ {
		border = append(border, lum[x], lum[(h-1)*w+x])
	}
	for y := 1; y < h-1; y++ {
		border = append(border, lum[y*w], lum[y*w+w-1])
	}
	if len(border) == 0 {
		return 0
	}
	// Counting-based median; luminance values fit in [0, 255].
	var hist [256]int
	for _, v := range border {
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		hist[v]++
	}
	mid := len(border) / 2
	for v, seen := 0, 0; v < 256; v++ {
		seen += hist[v]
		if seen > mid {
			return v
		}
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
