package app

import (
	"fmt"
	"image"
	"strings"

	"github.com/soocke/voice-target-go/domain/geometry"
	"github.com/soocke/voice-target-go/ui/presenter"
	"github.com/soocke/voice-target-go/ui/view"
)

const (
	regionHelp = "Draw a box to select a region.\n" +
		"Arrow keys nudge, Shift nudges faster, Control resizes.\n" +
		"Enter confirms, Escape cancels."

	selectorHelp = "Draw a box around the image to target.\n" +
		"Other places it matches light up red; right-click marks where the pointer should land.\n" +
		"Arrow keys nudge, Shift nudges faster, Control resizes.\n" +
		"Enter confirms, Escape cancels."

	blobHelp = "Draw a box around the items to mark.\n" +
		"Arrow keys nudge, Shift nudges faster, Control resizes.\n" +
		"Enter shows markers, Escape cancels."
)

// ShowRegionSelector opens a plain region-picking overlay. The callback
// receives the confirmed region, or nil when the overlay was dismissed.
func (s *Session) ShowRegionSelector(onResult func(region *geometry.Rect)) error {
	var w *view.OverlayWindow
	w, err := view.NewOverlayWindow(s.cfg, regionHelp, func(res any) {
		s.releaseOverlay(w)
		r, _ := res.(*geometry.Rect)
		if onResult != nil {
			onResult(r)
		}
	}, s.logger)
	if err != nil {
		return fmt.Errorf("open region selector: %w", err)
	}
	w.Overlay().CalculateResult = func() any {
		if w.Region() == nil {
			return nil
		}
		if r, ok := w.Region().Region(); ok {
			return &r
		}
		return nil
	}
	s.adoptOverlay(w)
	return nil
}

// ShowImageSelector opens the image selector overlay: region selection plus
// self-match highlighting and an optional pointer-offset click. The callback
// receives nil when the overlay was dismissed without a usable selection.
func (s *Session) ShowImageSelector(onResult func(res *presenter.SelectorResult)) error {
	var w *view.OverlayWindow
	var p *presenter.SelectorPresenter
	w, err := view.NewOverlayWindow(s.cfg, selectorHelp, func(res any) {
		s.releaseOverlay(w)
		r, _ := res.(*presenter.SelectorResult)
		if onResult != nil {
			onResult(r)
		}
	}, s.logger)
	if err != nil {
		return fmt.Errorf("open image selector: %w", err)
	}
	w.OnActivated = func(frame *image.RGBA, origin image.Point) {
		p = presenter.NewSelectorPresenter(s.cfg, frame, origin, w, s.logger)
		w.Region().OnDragStart = p.OnDragStart
		w.Region().OnSettle = p.OnSettle
	}
	w.OnSecondary = func(x, y int) {
		if p != nil {
			p.OnOffsetClick(x, y)
		}
	}
	w.DrawWidgets = func(scene *view.Scene) {
		if p == nil {
			return
		}
		for _, r := range p.Highlights() {
			scene.HighlightMatch(r)
		}
		if r, ok := w.Region().Region(); ok && !w.Region().Dragging() {
			cx, cy := r.Center()
			scene.OffsetMarker(cx, cy, p.OffsetPoint())
		}
	}
	w.Overlay().CalculateResult = func() any {
		if p == nil {
			return nil
		}
		if res := p.Result(); res != nil {
			return res
		}
		return nil
	}
	s.adoptOverlay(w)
	return nil
}

// ShowBlobOverlay opens the blob marker overlay: every settled region edit
// re-segments the selection and previews the labeled markers in place.
func (s *Session) ShowBlobOverlay(onResult func(rects []geometry.Rect)) error {
	var w *view.OverlayWindow
	var p *presenter.BlobPresenter
	w, err := view.NewOverlayWindow(s.cfg, blobHelp, func(res any) {
		s.releaseOverlay(w)
		rects, _ := res.([]geometry.Rect)
		if onResult != nil {
			onResult(rects)
		}
	}, s.logger)
	if err != nil {
		return fmt.Errorf("open blob overlay: %w", err)
	}
	w.OnActivated = func(frame *image.RGBA, origin image.Point) {
		p = presenter.NewBlobPresenter(s.cfg, frame, origin, w, s.logger)
		w.Region().OnSettle = p.OnSettle
	}
	w.DrawWidgets = func(scene *view.Scene) {
		if p == nil {
			return
		}
		for _, m := range p.Markers().Markers() {
			scene.MarkerBox(m.Rect, m.Label)
		}
	}
	w.Overlay().CalculateResult = func() any {
		if p == nil {
			return nil
		}
		if rects := p.Result(); len(rects) > 0 {
			return rects
		}
		return nil
	}
	s.adoptOverlay(w)
	return nil
}

// CommandWizardShow runs the image selector and, on confirmation, saves the
// cropped template and copies a ready-to-paste voice command for it to the
// clipboard.
func (s *Session) CommandWizardShow() error {
	return s.ShowImageSelector(func(res *presenter.SelectorResult) {
		if res == nil {
			return
		}
		name, err := s.store.Save(res.Image)
		if err != nil {
			s.logger.Error("template save failed", "error", err)
			s.notify("could not save template")
			return
		}
		view.SetClipboard(buildCommand(name, res))
		s.notify("command copied to clipboard")
		if s.OnTemplateSaved != nil {
			s.OnTemplateSaved(res.Image)
		}
	})
}

// BlobMarkersShow runs the blob overlay and shows the confirmed markers in
// their own click-through window.
func (s *Session) BlobMarkersShow() error {
	return s.ShowBlobOverlay(func(rects []geometry.Rect) {
		if len(rects) > 0 {
			s.ShowMarkers(rects)
		}
	})
}

// buildCommand renders the voice-command snippet for a saved template. The
// offset arguments are omitted when no landing point was chosen.
func buildCommand(name string, res *presenter.SelectorResult) string {
	args := fmt.Sprintf("%q, %d", name, res.Index)
	if res.Offset != nil {
		args += fmt.Sprintf(", %d, %d", res.Offset.X, res.Offset.Y)
	}
	var b strings.Builder
	b.WriteString(":\n")
	b.WriteString("    user.position_save()\n")
	b.WriteString("    user.move_image_relative(" + args + ")\n")
	b.WriteString("    sleep(0.05)\n")
	b.WriteString("    mouse_click(0)\n")
	b.WriteString("    sleep(0.05)\n")
	b.WriteString("    user.position_restore()\n")
	return b.String()
}
