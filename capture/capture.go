// Package capture grabs screen pixels and measures the usable overlay
// rectangle via sentinel-color calibration.
package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}

// GrabRect captures the given screen rectangle (global coordinates).
func GrabRect(r image.Rectangle) (*image.RGBA, error) {
	if r.Empty() {
		return nil, fmt.Errorf("capture rect: empty rectangle %v", r)
	}
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("capture rect %v: %w", r, err)
	}
	return img, nil
}

// ScreenRect returns the bounds of the active monitor.
func ScreenRect() (image.Rectangle, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("screen rect: %w", err)
	}
	return r, nil
}
