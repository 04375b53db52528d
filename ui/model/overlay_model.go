package model

import (
	"log/slog"
	"time"

	"github.com/soocke/voice-target-go/domain/geometry"
)

// OverlayState is the lifecycle phase of a screenshot overlay.
type OverlayState int

const (
	StateCalibrating OverlayState = iota
	StateActive
	StateClosed
)

func (s OverlayState) String() string {
	switch s {
	case StateCalibrating:
		return "calibrating"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Scheduler arms a single-shot timer on the UI thread and returns a cancel
// function. The view backs this with Tk's after mechanism; tests inject
// their own.
type Scheduler func(d time.Duration, fn func()) (cancel func())

// OverlayModel owns the state machine shared by all screenshot overlays:
// calibrate once, accept input while active, then close exactly once with
// exactly one result callback.
type OverlayModel struct {
	state     OverlayState
	openedAt  time.Time
	grace     time.Duration // unfocus events inside this window are ignored
	helpText  string
	helpAtTop bool
	helpRect  geometry.Rect // last laid-out help panel bounds; set by the view

	flashMsg    string
	flashDelay  time.Duration
	cancelFlash func()

	schedule   Scheduler
	logger     *slog.Logger
	now        func() time.Time
	resultSent bool

	// CalculateResult produces the overlay-specific result for an Enter
	// close; nil or a nil return means "no selection made".
	CalculateResult func() any
	// OnResult fires exactly once when the overlay reaches Closed.
	OnResult func(result any)
	// OnChanged requests a redraw.
	OnChanged func()
	// OnClosed lets the view tear down its window and timers.
	OnClosed func()
}

// NewOverlayModel constructs an overlay in the Calibrating state.
func NewOverlayModel(helpText string, grace, flashDelay time.Duration, schedule Scheduler, logger *slog.Logger) *OverlayModel {
	return &OverlayModel{
		state:      StateCalibrating,
		openedAt:   time.Now(),
		grace:      grace,
		helpText:   helpText,
		flashDelay: flashDelay,
		schedule:   schedule,
		logger:     logger,
		now:        time.Now,
	}
}

// State returns the current lifecycle phase.
func (m *OverlayModel) State() OverlayState { return m.state }

// HelpText returns the instruction text, empty when none was configured.
func (m *OverlayModel) HelpText() string { return m.helpText }

// HelpAtTop reports which screen edge the help panel sits on.
func (m *OverlayModel) HelpAtTop() bool { return m.helpAtTop }

// SetHelpRect records where the view laid out the help panel so clicks on it
// can be recognized.
func (m *OverlayModel) SetHelpRect(r geometry.Rect) { m.helpRect = r }

// FlashMessage returns the transient message, empty when none is showing.
func (m *OverlayModel) FlashMessage() string { return m.flashMsg }

// Activate moves Calibrating to Active once the effective rectangle is known.
func (m *OverlayModel) Activate() {
	if m.state != StateCalibrating {
		return
	}
	m.state = StateActive
	if m.logger != nil {
		m.logger.Debug("overlay state transition", "from", StateCalibrating.String(), "to", StateActive.String())
	}
	m.changed()
}

// Flash shows a transient message that clears itself after the flash delay.
// A newer flash supersedes a pending one.
func (m *OverlayModel) Flash(msg string) {
	if m.state != StateActive {
		return
	}
	if m.cancelFlash != nil {
		m.cancelFlash()
		m.cancelFlash = nil
	}
	m.flashMsg = msg
	if m.schedule != nil {
		m.cancelFlash = m.schedule(m.flashDelay, func() {
			m.flashMsg = ""
			m.cancelFlash = nil
			m.changed()
		})
	}
	m.changed()
}

// KeyEscape closes the overlay with an absent result.
func (m *OverlayModel) KeyEscape() { m.close(nil) }

// KeyReturn closes the overlay with the overlay-specific result.
func (m *OverlayModel) KeyReturn() {
	var result any
	if m.CalculateResult != nil {
		result = m.CalculateResult()
	}
	m.close(result)
}

// FocusLost closes the overlay with an absent result, except during the
// grace period right after construction, where spurious unfocus events from
// the window manager must not tear the overlay down.
func (m *OverlayModel) FocusLost() {
	if m.now().Sub(m.openedAt) < m.grace {
		return
	}
	m.close(nil)
}

// HelpClick toggles the help panel between the top and bottom edges when the
// click landed on it. Reports whether the click was consumed.
func (m *OverlayModel) HelpClick(x, y int) bool {
	if m.state != StateActive || m.helpText == "" || !m.helpRect.Contains(x, y) {
		return false
	}
	m.helpAtTop = !m.helpAtTop
	m.changed()
	return true
}

// Close tears the overlay down with an absent result, if still open.
func (m *OverlayModel) Close() { m.close(nil) }

func (m *OverlayModel) close(result any) {
	if m.state == StateClosed {
		return
	}
	prev := m.state
	m.state = StateClosed
	if m.cancelFlash != nil {
		m.cancelFlash()
		m.cancelFlash = nil
	}
	if m.logger != nil {
		m.logger.Debug("overlay state transition", "from", prev.String(), "to", StateClosed.String())
	}
	if m.OnClosed != nil {
		m.OnClosed()
	}
	if !m.resultSent {
		m.resultSent = true
		if m.OnResult != nil {
			m.OnResult(result)
		}
	}
}

func (m *OverlayModel) changed() {
	if m.OnChanged != nil && m.state != StateClosed {
		m.OnChanged()
	}
}
