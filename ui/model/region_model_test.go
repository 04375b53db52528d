package model

import (
	"testing"
	"time"

	"github.com/soocke/voice-target-go/domain/geometry"
)

func newTestRegion(sched *fakeScheduler) *RegionModel {
	bounds := geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	return NewRegionModel(bounds, 1, 25, 2*time.Second, sched.schedule)
}

type settleRecorder struct {
	regions  []geometry.Rect
	finished []bool
}

func (r *settleRecorder) record(region geometry.Rect, finished bool) {
	r.regions = append(r.regions, region)
	r.finished = append(r.finished, finished)
}

func (r *settleRecorder) finishedCount() int {
	n := 0
	for _, f := range r.finished {
		if f {
			n++
		}
	}
	return n
}

func TestDragProducesNormalizedRegion(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestRegion(sched)
	rec := &settleRecorder{}
	m.OnSettle = rec.record

	m.MouseDown(100, 100)
	m.MouseMove(120, 130)
	m.MouseMove(140, 160)
	m.MouseUp()

	r, ok := m.Region()
	if !ok {
		t.Fatal("no region after drag")
	}
	want := geometry.Rect{X: 100, Y: 100, Width: 40, Height: 60}
	if r != want {
		t.Fatalf("region = %+v, want %+v", r, want)
	}
	if rec.finishedCount() != 1 {
		t.Fatalf("drag must settle exactly once, got %d", rec.finishedCount())
	}
	if !rec.finished[len(rec.finished)-1] {
		t.Fatal("last settle event must be the finished one")
	}
}

func TestDragUpwardLeftNormalizes(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestRegion(sched)

	m.MouseDown(200, 300)
	m.MouseMove(150, 250)
	m.MouseUp()

	r, _ := m.Region()
	want := geometry.Rect{X: 150, Y: 250, Width: 50, Height: 50}
	if r != want {
		t.Fatalf("region = %+v, want %+v", r, want)
	}
	// The raw rect keeps the drag direction for rubber-band rendering.
	raw, _ := m.Raw()
	if raw.Width >= 0 || raw.Height >= 0 {
		t.Fatalf("raw rect lost drag direction: %+v", raw)
	}
}

func TestNudgeDebounceFiresOnce(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestRegion(sched)
	rec := &settleRecorder{}
	m.OnSettle = rec.record

	m.MouseDown(100, 100)
	m.MouseMove(150, 150)
	m.MouseUp()

	// A burst of nudges keeps re-arming the countdown.
	for i := 0; i < 10; i++ {
		m.Nudge(1, 0, false, false)
	}
	if got := rec.finishedCount(); got != 1 {
		t.Fatalf("finished settles before debounce: %d, want 1 (from MouseUp)", got)
	}
	if sched.armed() != 1 {
		t.Fatalf("exactly one settle timer must be armed, got %d", sched.armed())
	}

	sched.fire()
	if got := rec.finishedCount(); got != 2 {
		t.Fatalf("debounce must settle exactly once, finished count = %d", got)
	}
	r, _ := m.Region()
	if r.X != 160 {
		t.Fatalf("ten 1px nudges moved x to %d, want 160", r.X)
	}
}

func TestNudgeLargeStep(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestRegion(sched)
	m.MouseDown(100, 100)
	m.MouseMove(150, 150)
	m.MouseUp()

	m.Nudge(0, 1, true, false)
	r, _ := m.Region()
	if r.Y != 125 {
		t.Fatalf("large nudge moved y to %d, want 125", r.Y)
	}
}

func TestNudgeResizeAnchorsOrigin(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestRegion(sched)
	m.MouseDown(100, 100)
	m.MouseMove(150, 150)
	m.MouseUp()

	m.Nudge(1, 0, true, true)
	r, _ := m.Region()
	if r.X != 100 || r.Width != 75 {
		t.Fatalf("resize moved origin or wrong width: %+v", r)
	}

	// Shrinking below one pixel clamps instead of inverting.
	for i := 0; i < 10; i++ {
		m.Nudge(-1, -1, true, true)
	}
	r, _ = m.Region()
	if r.Width < 1 || r.Height < 1 {
		t.Fatalf("resize inverted the region: %+v", r)
	}
}

func TestNudgeClampsToBounds(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestRegion(sched)
	m.MouseDown(0, 0)
	m.MouseMove(50, 50)
	m.MouseUp()

	for i := 0; i < 5; i++ {
		m.Nudge(-1, -1, true, false)
	}
	r, _ := m.Region()
	if r.X != 0 || r.Y != 0 {
		t.Fatalf("region escaped bounds: %+v", r)
	}
}

func TestMouseDownCancelsPendingSettle(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestRegion(sched)
	rec := &settleRecorder{}
	m.OnSettle = rec.record

	m.MouseDown(10, 10)
	m.MouseMove(60, 60)
	m.MouseUp()
	m.Nudge(1, 0, false, false)

	// Starting a new drag abandons the armed countdown.
	m.MouseDown(200, 200)
	if sched.armed() != 0 {
		t.Fatal("pending settle must be canceled by a new drag")
	}
	sched.fire()
	if rec.finishedCount() != 1 {
		t.Fatalf("canceled timer still settled: %d", rec.finishedCount())
	}
}

func TestNudgeWithoutRegionIsNoop(t *testing.T) {
	sched := &fakeScheduler{}
	m := newTestRegion(sched)
	m.Nudge(1, 1, false, false)
	if _, ok := m.Region(); ok {
		t.Fatal("nudge must not create a region")
	}
	if sched.armed() != 0 {
		t.Fatal("nudge without a region must not arm a timer")
	}
}
