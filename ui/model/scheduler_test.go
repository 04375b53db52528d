package model

import "time"

// fakeScheduler collects armed timers so tests fire them deterministically.
type fakeScheduler struct {
	pending  []func()
	canceled int
}

func (f *fakeScheduler) schedule(d time.Duration, fn func()) func() {
	i := len(f.pending)
	f.pending = append(f.pending, fn)
	return func() {
		if i < len(f.pending) && f.pending[i] != nil {
			f.pending[i] = nil
			f.canceled++
		}
	}
}

// fire runs every still-armed timer once.
func (f *fakeScheduler) fire() {
	due := f.pending
	f.pending = nil
	for _, fn := range due {
		if fn != nil {
			fn()
		}
	}
}

// armed counts timers that are pending and not canceled.
func (f *fakeScheduler) armed() int {
	n := 0
	for _, fn := range f.pending {
		if fn != nil {
			n++
		}
	}
	return n
}
