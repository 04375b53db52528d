package presenter

import "time"

// runWithTimeout executes fn on a fresh worker goroutine and waits at most
// timeout for its result. On timeout the worker is abandoned: it keeps
// running but writes only to its private buffered channel, so a late result
// is dropped without touching shared state. A subsequent call starts a new
// worker; abandoned work is never resumed.
func runWithTimeout[T any](timeout time.Duration, fn func() T) (T, bool) {
	ch := make(chan T, 1)
	go func() { ch <- fn() }()
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		var zero T
		return zero, false
	}
}
