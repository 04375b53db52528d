package app

import (
	"fmt"
	"image"

	"github.com/soocke/voice-target-go/capture"
	"github.com/soocke/voice-target-go/domain/action"
	"github.com/soocke/voice-target-go/domain/geometry"
	"github.com/soocke/voice-target-go/domain/locate"
)

// SearchArea selects where an image search looks. The zero value means the
// whole screen; Window restricts it to the active window; an explicit Rect
// overrides both.
type SearchArea struct {
	Window bool
	Rect   *geometry.Rect
}

func (s *Session) resolveArea(area SearchArea) (geometry.Rect, error) {
	switch {
	case area.Rect != nil:
		return area.Rect.Normalize(), nil
	case area.Window:
		r, err := action.ActiveWindowRect()
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("active window rect: %w", err)
		}
		return geometry.FromImage(r), nil
	default:
		r, err := capture.ScreenRect()
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("screen rect: %w", err)
		}
		return geometry.FromImage(r), nil
	}
}

// MoveImageRelative searches the area for the stored template and moves the
// pointer to the chosen occurrence, shifted by (xoff, yoff). No match, or a
// disambiguator that selects nothing, is a silent no-op. A pathological
// template that matches more times than the configured limit aborts with an
// error instead of acting on an arbitrary occurrence.
func (s *Session) MoveImageRelative(name string, d locate.Disambiguator, xoff, yoff int, area SearchArea) error {
	rect, err := s.resolveArea(area)
	if err != nil {
		return err
	}
	tmpl, err := s.store.Open(name)
	if err != nil {
		return fmt.Errorf("open template %q: %w", name, err)
	}
	frame, err := capture.GrabRect(rect.Image())
	if err != nil {
		return fmt.Errorf("capture search area: %w", err)
	}

	matches := locate.LocateInImage(frame, tmpl, locate.Options{
		Threshold:  s.cfg.MatchThreshold,
		MaxMatches: s.cfg.MatchLimit + 1,
	})
	if len(matches) == 0 {
		s.logger.Debug("image not found", "template", name)
		return nil
	}
	if len(matches) > s.cfg.MatchLimit {
		return fmt.Errorf("template %q matched more than %d times, refusing to act", name, s.cfg.MatchLimit)
	}

	cursor, err := action.CursorPos()
	if err != nil {
		return fmt.Errorf("cursor position: %w", err)
	}
	b := tmpl.Bounds()
	origin := image.Point{X: rect.X, Y: rect.Y}
	m, ok := locate.Choose(matches, d, locate.ChooseParams{
		Cursor:       cursor,
		Offset:       image.Point{X: xoff, Y: yoff},
		TemplateSize: image.Point{X: b.Dx(), Y: b.Dy()},
		SearchOrigin: origin,
	})
	if !ok {
		s.logger.Debug("no occurrence selected", "template", name, "matches", len(matches))
		return nil
	}

	target := locate.PointerTarget(origin, m, image.Point{X: xoff, Y: yoff})
	action.MoveCursor(target.X, target.Y)
	s.logger.Debug("pointer moved to image", "template", name, "x", target.X, "y", target.Y, "score", m.Score)
	return nil
}

// MoveRelative shifts the pointer by a pixel delta.
func (s *Session) MoveRelative(dx, dy int) error {
	p, err := action.CursorPos()
	if err != nil {
		return fmt.Errorf("cursor position: %w", err)
	}
	action.MoveCursor(p.X+dx, p.Y+dy)
	return nil
}

// MoveActiveWindowRelative positions the pointer inside the active window
// using one position modifier per axis (see calculateRelative).
func (s *Session) MoveActiveWindowRelative(xspec, yspec string) error {
	r, err := action.ActiveWindowRect()
	if err != nil {
		return fmt.Errorf("active window rect: %w", err)
	}
	x, err := calculateRelative(xspec, r.Min.X, r.Max.X)
	if err != nil {
		return err
	}
	y, err := calculateRelative(yspec, r.Min.Y, r.Max.Y)
	if err != nil {
		return err
	}
	action.MoveCursor(x, y)
	return nil
}
