package view

import (
	"image"
	"image/color"
	"log/slog"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/voice-target-go/domain/geometry"
	"github.com/soocke/voice-target-go/ui/model"
)

// Key color painted behind the markers and declared transparent to the
// window manager, so only the labeled boxes are visible and the desktop
// underneath stays clickable-looking.
const markerKeyColor = "#008080"

const markerPad = 4

// MarkerWindow renders a set of labeled rectangles in a topmost transparent
// toplevel. At most one is shown at a time; the session destroys the prior
// instance before showing a new one.
type MarkerWindow struct {
	logger *slog.Logger
	win    *ToplevelWidget
	photo  *Img
	set    *model.MarkerSet
}

// ShowMarkers opens a marker window covering the bounding box of the set.
func ShowMarkers(set *model.MarkerSet, logger *slog.Logger) *MarkerWindow {
	w := &MarkerWindow{logger: logger, set: set}
	markers := set.Markers()
	if len(markers) == 0 {
		return w
	}

	bounds := markers[0].Rect.Normalize()
	for _, m := range markers[1:] {
		bounds = union(bounds, m.Rect.Normalize())
	}
	bounds.X -= markerPad
	bounds.Y -= markerPad
	bounds.Width += 2 * markerPad
	bounds.Height += 2 * markerPad

	win := App.Toplevel(Background(markerKeyColor), Borderwidth(0))
	win.WmTitle("")
	w.win = win
	WmGeometry(win.Window, geometryString(bounds.Image()))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-toolwindow", true)
	WmAttributes(win.Window, "-transparentcolor", markerKeyColor)

	origin := image.Point{X: bounds.X, Y: bounds.Y}
	scene := NewColorScene(image.Point{X: bounds.Width, Y: bounds.Height}, keyRGBA(), origin)
	for _, m := range markers {
		scene.MarkerBox(m.Rect, m.Label)
	}
	w.photo = NewPhoto(Data(scene.PNG()))
	label := win.Label(Image(w.photo), Borderwidth(0), Background(markerKeyColor))
	Grid(label, Row(0), Column(0))
	return w
}

// FindRect resolves a marker label to its rectangle.
func (w *MarkerWindow) FindRect(label string) (geometry.Rect, bool) {
	if w == nil {
		return geometry.Rect{}, false
	}
	return w.set.FindRect(label)
}

// Destroy closes the marker window. Safe to call repeatedly.
func (w *MarkerWindow) Destroy() {
	if w == nil {
		return
	}
	if w.photo != nil {
		w.photo.Delete()
		w.photo = nil
	}
	if w.win != nil {
		Destroy(w.win)
		w.win = nil
	}
}

func union(a, b geometry.Rect) geometry.Rect {
	return geometry.FromImage(a.Image().Union(b.Image()))
}

// keyRGBA is markerKeyColor as pixel data.
func keyRGBA() color.RGBA {
	return color.RGBA{G: 0x80, B: 0x80, A: 0xFF}
}
