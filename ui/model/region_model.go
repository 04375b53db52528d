package model

import (
	"time"

	"github.com/soocke/voice-target-go/domain/geometry"
)

// SettleFunc receives settle notifications. finished=false means the region
// is still moving and dependents should clear stale state; finished=true
// means the user's edit is considered done.
type SettleFunc func(region geometry.Rect, finished bool)

// RegionModel tracks the rectangle the user is selecting over the frozen
// frame: mouse drags, keyboard nudges, and the settle debounce. All methods
// run on the UI thread.
type RegionModel struct {
	region    geometry.Rect // raw; width/height may be negative mid-drag
	hasRegion bool
	dragging  bool
	bounds    geometry.Rect // overlay's effective rectangle

	step        int
	largeStep   int
	settleDelay time.Duration

	schedule     Scheduler
	cancelSettle func()

	// OnSettle is invoked for every mutation (finished=false) and when the
	// edit settles (finished=true).
	OnSettle SettleFunc
	// OnChanged requests a redraw.
	OnChanged func()
	// OnDragStart fires when a new region is begun with the mouse.
	OnDragStart func()
}

// NewRegionModel constructs a selector constrained to bounds.
func NewRegionModel(bounds geometry.Rect, step, largeStep int, settleDelay time.Duration, schedule Scheduler) *RegionModel {
	return &RegionModel{
		bounds:      bounds,
		step:        step,
		largeStep:   largeStep,
		settleDelay: settleDelay,
		schedule:    schedule,
	}
}

// Region returns the current selection normalized to non-negative extents.
// The raw dragging state is never normalized in place.
func (m *RegionModel) Region() (geometry.Rect, bool) {
	if !m.hasRegion {
		return geometry.Rect{}, false
	}
	return m.region.Normalize(), true
}

// Raw returns the selection as dragged, including negative extents, for
// rendering the live rubber band.
func (m *RegionModel) Raw() (geometry.Rect, bool) { return m.region, m.hasRegion }

// Dragging reports whether a mouse drag is in progress.
func (m *RegionModel) Dragging() bool { return m.dragging }

// MouseDown starts a new zero-size region at the click point.
func (m *RegionModel) MouseDown(x, y int) {
	m.cancelPending()
	m.region = geometry.Rect{X: x, Y: y}
	m.hasRegion = true
	m.dragging = true
	if m.OnDragStart != nil {
		m.OnDragStart()
	}
	m.mutated()
}

// MouseMove stretches the region toward the cursor while dragging. The
// width/height sign tracks the drag direction.
func (m *RegionModel) MouseMove(x, y int) {
	if !m.dragging || !m.hasRegion {
		return
	}
	m.region.Width = x - m.region.X
	m.region.Height = y - m.region.Y
	m.mutated()
}

// MouseUp ends the drag and fires a finished settle notification.
func (m *RegionModel) MouseUp() {
	if !m.dragging {
		return
	}
	m.dragging = false
	m.cancelPending()
	m.settle(true)
	m.redraw()
}

// Nudge adjusts the region with the keyboard. dx/dy are -1, 0 or 1 per
// axis. large scales the magnitude from 1px to 25px (per config); resize
// grows/shrinks the extent instead of moving the origin, anchored at the
// origin with a minimum size of 1px. The result is clamped inside the
// overlay bounds and the settle countdown restarts.
func (m *RegionModel) Nudge(dx, dy int, large, resize bool) {
	if !m.hasRegion {
		return
	}
	mag := m.step
	if large {
		mag = m.largeStep
	}
	r := m.region.Normalize()
	if resize {
		r.Width += dx * mag
		r.Height += dy * mag
		if r.Width < 1 {
			r.Width = 1
		}
		if r.Height < 1 {
			r.Height = 1
		}
	} else {
		r.X += dx * mag
		r.Y += dy * mag
	}
	m.region = r.ClampTo(m.bounds)
	m.rearmSettle()
	m.mutated()
}

// Close cancels any pending settle timer. Called when the overlay closes.
func (m *RegionModel) Close() { m.cancelPending() }

func (m *RegionModel) rearmSettle() {
	m.cancelPending()
	if m.schedule == nil {
		return
	}
	m.cancelSettle = m.schedule(m.settleDelay, func() {
		m.cancelSettle = nil
		m.settle(true)
		m.redraw()
	})
}

func (m *RegionModel) cancelPending() {
	if m.cancelSettle != nil {
		m.cancelSettle()
		m.cancelSettle = nil
	}
}

func (m *RegionModel) mutated() {
	m.settle(false)
	m.redraw()
}

func (m *RegionModel) settle(finished bool) {
	if m.OnSettle == nil || !m.hasRegion {
		return
	}
	m.OnSettle(m.region.Normalize(), finished)
}

func (m *RegionModel) redraw() {
	if m.OnChanged != nil {
		m.OnChanged()
	}
}
