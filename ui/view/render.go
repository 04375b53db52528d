package view

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/soocke/voice-target-go/domain/geometry"
	"github.com/soocke/voice-target-go/ui/images"
)

// Overlay palette. The scrim matches the original semi-opaque black; match
// highlights are red, the offset marker magenta-on-frame like a crosshair.
var (
	scrimColor      = color.RGBA{A: 0xAA}
	selectionStroke = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	matchStroke     = color.RGBA{R: 0xFF, A: 0xAA}
	offsetStroke    = color.RGBA{R: 0xFF, B: 0xFF, A: 0xFF}
	panelBg         = color.RGBA{A: 0xFF}
	panelFg         = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	markerFill      = color.RGBA{R: 0xFF, G: 0xD7, A: 0xE0}
	markerText      = color.RGBA{A: 0xFF}
)

const helpWrapWidth = 300 // pixels before help text wraps

// Scene composites one overlay redraw cycle into an RGBA buffer: the frozen
// frame under a scrim, plus whatever widgets the overlay variant draws. All
// rectangle arguments are in global screen coordinates; origin anchors the
// scene on screen.
type Scene struct {
	img    *image.RGBA
	frame  *image.RGBA
	origin image.Point
}

// NewScene copies the frozen frame and dims it with the scrim.
func NewScene(frame *image.RGBA, origin image.Point) *Scene {
	b := frame.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), frame, b.Min, draw.Src)
	draw.Draw(img, img.Bounds(), image.NewUniform(scrimColor), image.Point{}, draw.Over)
	return &Scene{img: img, frame: frame, origin: origin}
}

// NewColorScene creates a scene filled with a solid color, used by the
// marker window whose background is keyed out as transparent.
func NewColorScene(size image.Point, bg color.Color, origin image.Point) *Scene {
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Scene{img: img, origin: origin}
}

func (s *Scene) local(r geometry.Rect) image.Rectangle {
	return r.Image().Sub(s.origin).Intersect(s.img.Bounds())
}

// Reveal re-draws the frame without the scrim inside r, making the current
// selection appear lit against the dimmed screen.
func (s *Scene) Reveal(r geometry.Rect) {
	if s.frame == nil {
		return
	}
	dst := s.local(r)
	if dst.Empty() {
		return
	}
	draw.Draw(s.img, dst, s.frame, dst.Min.Add(s.frame.Bounds().Min), draw.Src)
}

// Stroke draws a 1px rectangle outline.
func (s *Scene) Stroke(r geometry.Rect, c color.Color) {
	dst := s.local(r)
	if dst.Empty() {
		return
	}
	for x := dst.Min.X; x < dst.Max.X; x++ {
		s.img.Set(x, dst.Min.Y, c)
		s.img.Set(x, dst.Max.Y-1, c)
	}
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		s.img.Set(dst.Min.X, y, c)
		s.img.Set(dst.Max.X-1, y, c)
	}
}

// Fill paints a solid rectangle.
func (s *Scene) Fill(r geometry.Rect, c color.Color) {
	dst := s.local(r)
	if dst.Empty() {
		return
	}
	draw.Draw(s.img, dst, image.NewUniform(c), image.Point{}, draw.Over)
}

// Dot draws a small filled square centered on the global point, used for the
// offset marker.
func (s *Scene) Dot(x, y, radius int, c color.Color) {
	s.Fill(geometry.Rect{X: x - radius, Y: y - radius, Width: 2*radius + 1, Height: 2*radius + 1}, c)
}

// Line draws a thin line between two global points.
func (s *Scene) Line(x1, y1, x2, y2 int, c color.Color) {
	p1 := image.Point{X: x1, Y: y1}.Sub(s.origin)
	p2 := image.Point{X: x2, Y: y2}.Sub(s.origin)
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		s.img.Set(p1.X, p1.Y, c)
		return
	}
	for i := 0; i <= steps; i++ {
		x := p1.X + dx*i/steps
		y := p1.Y + dy*i/steps
		s.img.Set(x, y, c)
	}
}

// Text draws a single line of text with its top-left at the global point.
func (s *Scene) Text(x, y int, text string, c color.Color) {
	p := image.Point{X: x, Y: y}.Sub(s.origin)
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(p.X, p.Y+basicfont.Face7x13.Ascent),
	}
	d.DrawString(text)
}

// TextPanel renders a wrapped, horizontally centered text block on the top
// or bottom edge of the scene over a solid panel, returning the panel's
// global rect so clicks on it can be recognized.
func (s *Scene) TextPanel(text string, atTop bool) geometry.Rect {
	if text == "" {
		return geometry.Rect{}
	}
	face := basicfont.Face7x13
	lines := wrapText(text, face, helpWrapWidth)
	lineH := face.Ascent + face.Descent + 2
	width := 0
	for _, l := range lines {
		if w := font.MeasureString(face, l).Ceil(); w > width {
			width = w
		}
	}
	const pad = 10
	panelW := width + 2*pad
	panelH := len(lines)*lineH + 2*pad

	b := s.img.Bounds()
	x := s.origin.X + (b.Dx()-panelW)/2
	y := s.origin.Y + pad
	if !atTop {
		y = s.origin.Y + b.Dy() - panelH - pad
	}
	panel := geometry.Rect{X: x, Y: y, Width: panelW, Height: panelH}
	s.Fill(panel, panelBg)
	for i, l := range lines {
		s.Text(x+pad, y+pad+i*lineH, l, panelFg)
	}
	return panel
}

// HighlightMatch reveals a matched rectangle through the scrim and outlines
// it in the match color.
func (s *Scene) HighlightMatch(r geometry.Rect) {
	s.Reveal(r)
	s.Stroke(r, matchStroke)
}

// OffsetMarker draws the pointer-offset indicator for a selection: a dot at
// the region center, plus a line to the chosen offset point when one is set.
func (s *Scene) OffsetMarker(cx, cy int, offset *image.Point) {
	s.Dot(cx, cy, 2, offsetStroke)
	if offset != nil {
		s.Line(cx, cy, offset.X, offset.Y, offsetStroke)
		s.Dot(offset.X, offset.Y, 2, offsetStroke)
	}
}

// MarkerBox outlines a segmented blob and draws its label chip in the top
// left corner.
func (s *Scene) MarkerBox(r geometry.Rect, label string) {
	n := r.Normalize()
	s.Stroke(n, markerText)
	s.Fill(geometry.Rect{X: n.X, Y: n.Y, Width: 13, Height: 15}, markerFill)
	s.Text(n.X+3, n.Y+1, label, markerText)
}

// PNG encodes the composited scene.
func (s *Scene) PNG() []byte { return images.EncodePNG(s.img) }

// wrapText greedily wraps words so each line fits maxWidth pixels. Explicit
// newlines are preserved.
func wrapText(text string, face font.Face, maxWidth int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			cand := line + " " + w
			if font.MeasureString(face, cand).Ceil() > maxWidth {
				out = append(out, line)
				line = w
				continue
			}
			line = cand
		}
		out = append(out, line)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
