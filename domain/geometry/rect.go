package geometry

import "image"

// Rect is an integer rectangle in global screen coordinates. Width and
// Height may be negative while a drag is in progress; call Normalize before
// using a Rect as an area.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FromImage converts an image.Rectangle to a Rect.
func FromImage(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Image converts the normalized form of r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	n := r.Normalize()
	return image.Rect(n.X, n.Y, n.X+n.Width, n.Y+n.Height)
}

// Normalize flips the origin along any axis with a negative extent so that
// Width and Height are non-negative. Normalizing an already-normalized Rect
// returns it unchanged.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Empty reports whether the normalized rect has zero area.
func (r Rect) Empty() bool {
	n := r.Normalize()
	return n.Width == 0 || n.Height == 0
}

// Center returns the midpoint of the normalized rect, truncated to ints.
func (r Rect) Center() (int, int) {
	n := r.Normalize()
	return n.X + n.Width/2, n.Y + n.Height/2
}

// Contains reports whether the point (x, y) lies inside the normalized rect.
func (r Rect) Contains(x, y int) bool {
	n := r.Normalize()
	return x >= n.X && x < n.X+n.Width && y >= n.Y && y < n.Y+n.Height
}

// ClampTo constrains the normalized rect to lie fully inside bounds. The
// size is reduced only when it exceeds the bounds entirely.
func (r Rect) ClampTo(bounds Rect) Rect {
	n := r.Normalize()
	b := bounds.Normalize()
	if n.Width > b.Width {
		n.Width = b.Width
	}
	if n.Height > b.Height {
		n.Height = b.Height
	}
	if n.X < b.X {
		n.X = b.X
	}
	if n.Y < b.Y {
		n.Y = b.Y
	}
	if n.X+n.Width > b.X+b.Width {
		n.X = b.X + b.Width - n.Width
	}
	if n.Y+n.Height > b.Y+b.Height {
		n.Y = b.Y + b.Height - n.Height
	}
	return n
}

// ReadingOrderLess orders rects by their top-left corner, top to bottom then
// left to right. Equal corners compare as not-less, so a stable sort keeps
// the original relative order of ties.
func ReadingOrderLess(a, b Rect) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
