package blob

import (
	"image"
	"testing"

	"github.com/soocke/voice-target-go/domain/geometry"
)

func uniformRGBA(w, h int, v byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = v
		img.Pix[i+1] = v
		img.Pix[i+2] = v
		img.Pix[i+3] = 255
	}
	return img
}

func paint(img *image.RGBA, r geometry.Rect, v byte) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = v
			img.Pix[i+1] = v
			img.Pix[i+2] = v
		}
	}
}

func TestSegmentTwoComponents(t *testing.T) {
	img := uniformRGBA(40, 25, 20)
	a := geometry.Rect{X: 3, Y: 4, Width: 6, Height: 5}
	b := geometry.Rect{X: 20, Y: 12, Width: 5, Height: 4}
	paint(img, a, 220)
	paint(img, b, 220)

	rects := Segment(img, Options{})
	if len(rects) != 2 {
		t.Fatalf("got %d components, want 2: %+v", len(rects), rects)
	}
	if rects[0] != a {
		t.Errorf("first component %+v, want %+v", rects[0], a)
	}
	if rects[1] != b {
		t.Errorf("second component %+v, want %+v", rects[1], b)
	}
}

func TestSegmentDarkOnLight(t *testing.T) {
	// Foreground is anything far from the border luminance, in either
	// direction.
	img := uniformRGBA(30, 20, 230)
	a := geometry.Rect{X: 5, Y: 5, Width: 8, Height: 6}
	paint(img, a, 30)
	rects := Segment(img, Options{})
	if len(rects) != 1 || rects[0] != a {
		t.Fatalf("got %+v, want [%+v]", rects, a)
	}
}

func TestSegmentLShapeIsOneComponent(t *testing.T) {
	img := uniformRGBA(30, 30, 10)
	paint(img, geometry.Rect{X: 5, Y: 5, Width: 3, Height: 12}, 200)
	paint(img, geometry.Rect{X: 5, Y: 14, Width: 10, Height: 3}, 200)
	rects := Segment(img, Options{})
	if len(rects) != 1 {
		t.Fatalf("L shape split into %d components: %+v", len(rects), rects)
	}
	want := geometry.Rect{X: 5, Y: 5, Width: 10, Height: 12}
	if rects[0] != want {
		t.Errorf("bounding box %+v, want %+v", rects[0], want)
	}
}

func TestSegmentDiagonalTouchIsTwoComponents(t *testing.T) {
	// Corner-touching pixels are not 4-connected.
	img := uniformRGBA(10, 10, 10)
	paint(img, geometry.Rect{X: 2, Y: 2, Width: 2, Height: 2}, 200)
	paint(img, geometry.Rect{X: 4, Y: 4, Width: 2, Height: 2}, 200)
	rects := Segment(img, Options{})
	if len(rects) != 2 {
		t.Fatalf("diagonal blobs merged: %+v", rects)
	}
}

func TestSegmentThreshold(t *testing.T) {
	img := uniformRGBA(20, 20, 100)
	paint(img, geometry.Rect{X: 5, Y: 5, Width: 4, Height: 4}, 120)
	if rects := Segment(img, Options{Threshold: 40}); len(rects) != 0 {
		t.Errorf("delta 20 must be background at threshold 40, got %+v", rects)
	}
	if rects := Segment(img, Options{Threshold: 15}); len(rects) != 1 {
		t.Errorf("delta 20 must be foreground at threshold 15, got %+v", rects)
	}
}

func TestSegmentDegenerateInputs(t *testing.T) {
	if rects := Segment(nil, Options{}); rects != nil {
		t.Error("nil image must yield nil")
	}
	if rects := Segment(image.NewRGBA(image.Rect(0, 0, 0, 0)), Options{}); rects != nil {
		t.Error("empty image must yield nil")
	}
	if rects := Segment(uniformRGBA(10, 10, 50), Options{}); len(rects) != 0 {
		t.Errorf("uniform image must have no components, got %+v", rects)
	}
}
