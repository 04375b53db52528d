// Package action moves the OS pointer and queries window geometry. The
// voice layer drives pointer placement exclusively through these helpers.
package action

import "image"

// MoveCursor places the OS pointer at the global point.
func MoveCursor(x, y int) { moveCursor(x, y) }

// CursorPos returns the current global pointer position.
func CursorPos() (image.Point, error) { return cursorPos() }

// ActiveWindowRect returns the bounds of the foreground window.
func ActiveWindowRect() (image.Rectangle, error) { return activeWindowRect() }
