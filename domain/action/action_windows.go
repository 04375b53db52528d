//go:build windows

package action

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                = windows.NewLazySystemDLL("user32.dll")
	procSetCursorPos      = user32.NewProc("SetCursorPos")
	procGetCursorPos      = user32.NewProc("GetCursorPos")
	procGetForegroundWnd  = user32.NewProc("GetForegroundWindow")
	procGetWindowRect     = user32.NewProc("GetWindowRect")
)

type point struct{ X, Y int32 }

type rect struct{ Left, Top, Right, Bottom int32 }

func moveCursor(x, y int) {
	_, _, _ = procSetCursorPos.Call(uintptr(x), uintptr(y))
}

func cursorPos() (image.Point, error) {
	var p point
	r1, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	if r1 == 0 {
		return image.Point{}, fmt.Errorf("GetCursorPos: %w", err)
	}
	return image.Point{X: int(p.X), Y: int(p.Y)}, nil
}

func activeWindowRect() (image.Rectangle, error) {
	hwnd, _, _ := procGetForegroundWnd.Call()
	if hwnd == 0 {
		return image.Rectangle{}, fmt.Errorf("no foreground window")
	}
	var r rect
	r1, _, err := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if r1 == 0 {
		return image.Rectangle{}, fmt.Errorf("GetWindowRect: %w", err)
	}
	return image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom)), nil
}
