package app

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/voice-target-go/config"
	"github.com/soocke/voice-target-go/domain/action"
	"github.com/soocke/voice-target-go/domain/geometry"
	"github.com/soocke/voice-target-go/template"
	"github.com/soocke/voice-target-go/ui/model"
	"github.com/soocke/voice-target-go/ui/view"
)

// Session owns the mutable state shared by the voice-action entry points:
// the single currently-open overlay, the single marker window, and the last
// saved pointer position. Everything here runs on the UI thread.
type Session struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *template.Store

	overlay    *view.OverlayWindow
	markers    *view.MarkerWindow
	savedPos   *image.Point
	lastRegion *geometry.Rect

	// Notify surfaces short user-facing status messages; the control window
	// points this at its status label.
	Notify func(msg string)
	// OnTemplateSaved receives each newly saved template crop, for preview.
	OnTemplateSaved func(img image.Image)
}

// NewSession builds a session around the configured template store.
func NewSession(cfg *config.Config, logger *slog.Logger) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Session{
		cfg:    cfg,
		logger: logger,
		store:  template.NewStore(cfg.TemplateDirectory(), logger),
	}
}

// Store exposes the template store.
func (s *Session) Store() *template.Store { return s.store }

// adoptOverlay registers a newly opened overlay, closing any prior one
// first so at most one overlay is active at a time.
func (s *Session) adoptOverlay(w *view.OverlayWindow) {
	if s.overlay != nil {
		s.overlay.Close()
	}
	s.overlay = w
}

// releaseOverlay drops the current overlay reference once it has closed.
func (s *Session) releaseOverlay(w *view.OverlayWindow) {
	if s.overlay == w {
		s.overlay = nil
	}
}

// RegionSelect opens the region selector and remembers the confirmed
// region for later scoped searches (see LastRegion).
func (s *Session) RegionSelect() error {
	return s.ShowRegionSelector(func(r *geometry.Rect) {
		if r == nil {
			return
		}
		s.lastRegion = r
		s.notify(fmt.Sprintf("region %dx%d at (%d,%d)", r.Width, r.Height, r.X, r.Y))
	})
}

// LastRegion returns the most recently confirmed region, nil when none.
func (s *Session) LastRegion() *geometry.Rect { return s.lastRegion }

// ShowMarkers replaces any visible marker window with one for the given
// rectangles, labeled from the configured alphabet.
func (s *Session) ShowMarkers(rects []geometry.Rect) {
	s.HideMarkers()
	if len(rects) == 0 {
		return
	}
	set := model.NewMarkerSet(rects, s.cfg.MarkerLabels)
	s.markers = view.ShowMarkers(set, s.logger)
	if s.logger != nil {
		s.logger.Debug("markers shown", "count", set.Len())
	}
}

// HideMarkers destroys the marker window, if any.
func (s *Session) HideMarkers() {
	if s.markers != nil {
		s.markers.Destroy()
		s.markers = nil
	}
}

// MarkerMove moves the pointer to the center of the marker with the given
// label. Unknown labels are a silent no-op.
func (s *Session) MarkerMove(label string) {
	r, ok := s.markers.FindRect(label)
	if !ok {
		return
	}
	cx, cy := r.Center()
	action.MoveCursor(cx, cy)
}

// PositionSave remembers the current pointer position.
func (s *Session) PositionSave() {
	p, err := action.CursorPos()
	if err != nil {
		if s.logger != nil {
			s.logger.Error("cursor position query failed", "error", err)
		}
		return
	}
	s.savedPos = &p
}

// PositionRestore moves the pointer back to the saved position, if any.
func (s *Session) PositionRestore() {
	if s.savedPos == nil {
		return
	}
	action.MoveCursor(s.savedPos.X, s.savedPos.Y)
}

// Close tears down everything the session owns.
func (s *Session) Close() {
	if s.overlay != nil {
		s.overlay.Close()
		s.overlay = nil
	}
	s.HideMarkers()
}

func (s *Session) notify(msg string) {
	if s.Notify != nil {
		s.Notify(msg)
	}
	if s.logger != nil {
		s.logger.Info(msg)
	}
}
