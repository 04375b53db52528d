package view

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/voice-target-go/capture"
	"github.com/soocke/voice-target-go/config"
	"github.com/soocke/voice-target-go/domain/geometry"
	"github.com/soocke/voice-target-go/ui/model"
)

const (
	calibrationSettleDelay = 80 * time.Millisecond
	renderCoalesceDelay    = 16 * time.Millisecond
)

// OverlayWindow is the Tk face of a screenshot overlay: a topmost toplevel
// frozen over the screen. It owns the frame, routes input events into the
// overlay and region models, and re-renders the composited scene when asked.
// Variant behavior (image selector, blob markers) is injected through hooks.
type OverlayWindow struct {
	cfg    *config.Config
	logger *slog.Logger

	win    *ToplevelWidget
	label  *LabelWidget
	photo  *Img
	closed bool

	nominal image.Rectangle
	bounds  geometry.Rect // effective rect after calibration
	frame   *image.RGBA   // frozen frame cropped to bounds, zero-based
	full    *image.RGBA   // pre-calibration capture of the nominal rect

	overlay *model.OverlayModel
	region  *model.RegionModel

	renderPending bool

	// OnActivated fires once calibration is done and the frozen frame is
	// final. Variants build their presenters here.
	OnActivated func(frame *image.RGBA, origin image.Point)
	// DrawWidgets adds variant-specific widgets to each redraw cycle.
	DrawWidgets func(s *Scene)
	// OnSecondary receives secondary-button clicks in global coordinates.
	OnSecondary func(x, y int)
}

// NewOverlayWindow captures the active monitor, opens the overlay toplevel
// painted in the sentinel color, and schedules calibration. The result
// callback fires exactly once when the overlay closes.
func NewOverlayWindow(cfg *config.Config, helpText string, onResult func(any), logger *slog.Logger) (*OverlayWindow, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	nominal, err := capture.ScreenRect()
	if err != nil {
		return nil, err
	}
	// Freeze the screen before the overlay covers it.
	full, err := capture.GrabRect(nominal)
	if err != nil {
		return nil, err
	}

	v := &OverlayWindow{cfg: cfg, logger: logger, nominal: nominal, full: full}

	v.overlay = model.NewOverlayModel(
		helpText,
		time.Duration(cfg.FocusGraceMS)*time.Millisecond,
		time.Duration(cfg.FlashDelayMS)*time.Millisecond,
		tkSchedule,
		logger,
	)
	v.overlay.OnResult = onResult
	v.overlay.OnChanged = v.Redraw
	v.overlay.OnClosed = v.teardown

	sentinel := fmt.Sprintf("#%02x%02x%02x", capture.Sentinel.R, capture.Sentinel.G, capture.Sentinel.B)
	win := App.Toplevel(Background(sentinel), Borderwidth(0))
	win.WmTitle("")
	v.win = win
	WmGeometry(win.Window, geometryString(nominal))
	WmAttributes(win.Window, "-topmost", 1)
	Focus(win)

	if cfg.SkipCalibration {
		TclAfter(calibrationSettleDelay, func() { v.activate(nominal) })
	} else {
		TclAfter(calibrationSettleDelay, v.calibrate)
	}
	return v, nil
}

// calibrate captures the nominal rect while the toplevel still shows only
// the sentinel paint, measures the client area, and resizes onto it.
func (v *OverlayWindow) calibrate() {
	if v.closed {
		return
	}
	eff := v.nominal
	if probe, err := capture.GrabRect(v.nominal); err != nil {
		if v.logger != nil {
			v.logger.Error("calibration capture failed", "error", err)
		}
	} else if r, ok := capture.EffectiveRect(probe, capture.Sentinel, v.nominal); ok {
		eff = r
	} else if v.logger != nil {
		v.logger.Debug("calibration found no sentinel region, using nominal rect")
	}
	v.activate(eff)
}

func (v *OverlayWindow) activate(eff image.Rectangle) {
	if v.closed {
		return
	}
	v.bounds = geometry.FromImage(eff)
	v.frame = cropRGBA(v.full, eff.Sub(v.nominal.Min))
	v.full = nil
	WmGeometry(v.win.Window, geometryString(eff))

	v.region = model.NewRegionModel(
		v.bounds,
		v.cfg.NudgeStep,
		v.cfg.NudgeStepLarge,
		time.Duration(v.cfg.SettleDelayMS)*time.Millisecond,
		tkSchedule,
	)
	v.region.OnChanged = v.Redraw

	if v.OnActivated != nil {
		v.OnActivated(v.frame, eff.Min)
	}
	v.overlay.Activate()
	v.buildLabel()
	v.bindEvents()
	v.Redraw()
}

// Overlay exposes the state machine for variant wiring.
func (v *OverlayWindow) Overlay() *model.OverlayModel { return v.overlay }

// Region exposes the selection model for variant wiring. Nil until the
// overlay is activated.
func (v *OverlayWindow) Region() *model.RegionModel { return v.region }

// Flash shows a transient message on the overlay.
func (v *OverlayWindow) Flash(msg string) { v.overlay.Flash(msg) }

// Close tears the overlay down with an absent result.
func (v *OverlayWindow) Close() { v.overlay.Close() }

// Redraw coalesces render requests onto the next Tk tick.
func (v *OverlayWindow) Redraw() {
	if v.closed || v.renderPending || v.frame == nil {
		return
	}
	v.renderPending = true
	TclAfter(renderCoalesceDelay, func() {
		v.renderPending = false
		v.render()
	})
}

func (v *OverlayWindow) render() {
	if v.closed || v.frame == nil {
		return
	}
	origin := image.Point{X: v.bounds.X, Y: v.bounds.Y}
	scene := NewScene(v.frame, origin)

	if raw, ok := v.region.Raw(); ok && !raw.Empty() {
		sel := raw.Normalize()
		scene.Reveal(sel)
		scene.Stroke(sel, selectionStroke)
	}
	if v.DrawWidgets != nil {
		v.DrawWidgets(scene)
	}
	if msg := v.overlay.FlashMessage(); msg != "" {
		// The flash hijacks the help panel's opposite edge so both stay
		// readable.
		scene.TextPanel(msg, !v.overlay.HelpAtTop())
	}
	v.overlay.SetHelpRect(scene.TextPanel(v.overlay.HelpText(), v.overlay.HelpAtTop()))

	png := scene.PNG()
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(png))
	v.label.Configure(Image(v.photo))
}

func (v *OverlayWindow) buildLabel() {
	origin := image.Point{X: v.bounds.X, Y: v.bounds.Y}
	scene := NewScene(v.frame, origin)
	v.photo = NewPhoto(Data(scene.PNG()))
	v.label = v.win.Label(Image(v.photo), Borderwidth(0))
	Grid(v.label, Row(0), Column(0))
}

func (v *OverlayWindow) bindEvents() {
	global := func(e *Event) (int, int) {
		return v.bounds.X + e.X, v.bounds.Y + e.Y
	}

	Bind(v.win, "<ButtonPress-1>", Command(func(e *Event) {
		x, y := global(e)
		if v.overlay.HelpClick(x, y) {
			return
		}
		v.region.MouseDown(x, y)
	}))
	Bind(v.win, "<B1-Motion>", Command(func(e *Event) {
		x, y := global(e)
		v.region.MouseMove(x, y)
	}))
	Bind(v.win, "<ButtonRelease-1>", Command(func() { v.region.MouseUp() }))
	Bind(v.win, "<ButtonRelease-3>", Command(func(e *Event) {
		if v.OnSecondary != nil {
			x, y := global(e)
			v.OnSecondary(x, y)
		}
	}))

	Bind(v.win, "<KeyRelease-Escape>", Command(func() { v.overlay.KeyEscape() }))
	Bind(v.win, "<KeyRelease-Return>", Command(func() { v.overlay.KeyReturn() }))
	Bind(v.win, "<FocusOut>", Command(func() { v.overlay.FocusLost() }))

	type arrow struct {
		key    string
		dx, dy int
	}
	arrows := []arrow{
		{"Left", -1, 0},
		{"Right", 1, 0},
		{"Up", 0, -1},
		{"Down", 0, 1},
	}
	for _, a := range arrows {
		a := a
		Bind(v.win, fmt.Sprintf("<KeyRelease-%s>", a.key), Command(func() {
			v.region.Nudge(a.dx, a.dy, false, false)
		}))
		Bind(v.win, fmt.Sprintf("<Shift-KeyRelease-%s>", a.key), Command(func() {
			v.region.Nudge(a.dx, a.dy, true, false)
		}))
		Bind(v.win, fmt.Sprintf("<Control-KeyRelease-%s>", a.key), Command(func() {
			v.region.Nudge(a.dx, a.dy, false, true)
		}))
		Bind(v.win, fmt.Sprintf("<Control-Shift-KeyRelease-%s>", a.key), Command(func() {
			v.region.Nudge(a.dx, a.dy, true, true)
		}))
	}
}

// teardown destroys the Tk window and cancels region timers. Invoked by the
// overlay model exactly once on close.
func (v *OverlayWindow) teardown() {
	if v.closed {
		return
	}
	v.closed = true
	if v.region != nil {
		v.region.Close()
	}
	if v.photo != nil {
		v.photo.Delete()
		v.photo = nil
	}
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
	v.frame = nil
	v.full = nil
}

// tkSchedule adapts Tk's after mechanism to the model.Scheduler contract.
func tkSchedule(d time.Duration, fn func()) func() {
	id := TclAfter(d, fn)
	return func() { TclAfterCancel(id) }
}

func geometryString(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}

// cropRGBA copies rect out of img into a fresh zero-based RGBA. rect is in
// img's coordinate space.
func cropRGBA(img *image.RGBA, rect image.Rectangle) *image.RGBA {
	rect = rect.Add(img.Bounds().Min).Intersect(img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)
	return out
}
