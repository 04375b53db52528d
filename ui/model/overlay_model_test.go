package model

import (
	"testing"
	"time"

	"github.com/soocke/voice-target-go/domain/geometry"
)

func newTestOverlay(sched *fakeScheduler) *OverlayModel {
	return NewOverlayModel("help", 500*time.Millisecond, time.Second, sched.schedule, nil)
}

func TestOverlayLifecycle(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestOverlay(sched)
	if m.State() != StateCalibrating {
		t.Fatalf("initial state %v", m.State())
	}
	m.Activate()
	if m.State() != StateActive {
		t.Fatalf("state after Activate: %v", m.State())
	}
	// A second Activate is a no-op.
	m.Activate()
	if m.State() != StateActive {
		t.Fatalf("state after double Activate: %v", m.State())
	}
	m.KeyEscape()
	if m.State() != StateClosed {
		t.Fatalf("state after Escape: %v", m.State())
	}
}

func TestOverlayResultFiresExactlyOnce(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestOverlay(sched)
	m.Activate()

	var results []any
	m.OnResult = func(r any) { results = append(results, r) }
	m.CalculateResult = func() any { return "selection" }

	m.KeyReturn()
	m.KeyReturn()
	m.KeyEscape()
	m.Close()

	if len(results) != 1 {
		t.Fatalf("result fired %d times, want 1", len(results))
	}
	if results[0] != "selection" {
		t.Fatalf("result = %v", results[0])
	}
}

func TestOverlayEscapeYieldsNilResult(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestOverlay(sched)
	m.Activate()
	m.CalculateResult = func() any { return "selection" }

	var got any = "sentinel"
	m.OnResult = func(r any) { got = r }
	m.KeyEscape()
	if got != nil {
		t.Fatalf("Escape must produce a nil result, got %v", got)
	}
}

func TestOverlayFocusGrace(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestOverlay(sched)
	m.Activate()

	base := time.Now()
	m.openedAt = base
	m.now = func() time.Time { return base.Add(100 * time.Millisecond) }
	m.FocusLost()
	if m.State() != StateActive {
		t.Fatal("unfocus inside the grace period must be ignored")
	}

	m.now = func() time.Time { return base.Add(time.Second) }
	m.FocusLost()
	if m.State() != StateClosed {
		t.Fatal("unfocus after the grace period must close the overlay")
	}
}

func TestOverlayFlashClearsAfterDelay(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestOverlay(sched)
	m.Activate()

	m.Flash("too many matches")
	if m.FlashMessage() != "too many matches" {
		t.Fatalf("flash = %q", m.FlashMessage())
	}
	sched.fire()
	if m.FlashMessage() != "" {
		t.Fatalf("flash not cleared: %q", m.FlashMessage())
	}
}

func TestOverlayNewerFlashSupersedes(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestOverlay(sched)
	m.Activate()

	m.Flash("first")
	m.Flash("second")
	if sched.canceled != 1 {
		t.Fatalf("first flash timer not canceled (canceled=%d)", sched.canceled)
	}
	if m.FlashMessage() != "second" {
		t.Fatalf("flash = %q", m.FlashMessage())
	}
	sched.fire()
	if m.FlashMessage() != "" {
		t.Fatalf("flash not cleared: %q", m.FlashMessage())
	}
}

func TestOverlayFlashIgnoredBeforeActive(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestOverlay(sched)
	m.Flash("early")
	if m.FlashMessage() != "" {
		t.Fatal("flash must be ignored while calibrating")
	}
}

func TestOverlayHelpToggle(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestOverlay(sched)
	m.Activate()
	m.SetHelpRect(geometry.Rect{X: 100, Y: 900, Width: 300, Height: 60})

	if m.HelpClick(10, 10) {
		t.Fatal("click outside the help panel must not be consumed")
	}
	if !m.HelpClick(150, 920) {
		t.Fatal("click on the help panel must be consumed")
	}
	if !m.HelpAtTop() {
		t.Fatal("help panel must move to the top edge")
	}
	m.SetHelpRect(geometry.Rect{X: 100, Y: 0, Width: 300, Height: 60})
	if !m.HelpClick(150, 30) {
		t.Fatal("second click on the help panel must be consumed")
	}
	if m.HelpAtTop() {
		t.Fatal("help panel must move back to the bottom edge")
	}
}

func TestOverlayCloseCancelsFlashTimer(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestOverlay(sched)
	m.Activate()
	m.Flash("msg")
	m.Close()
	if sched.armed() != 0 {
		t.Fatal("flash timer must be canceled on close")
	}
}
