//go:build !windows

package action

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("action: pointer control not supported on this platform")

func moveCursor(x, y int) {}

func cursorPos() (image.Point, error) { return image.Point{}, errUnsupported }

func activeWindowRect() (image.Rectangle, error) { return image.Rectangle{}, errUnsupported }
