package presenter

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/voice-target-go/config"
	"github.com/soocke/voice-target-go/domain/geometry"
	"github.com/soocke/voice-target-go/domain/locate"
	"github.com/soocke/voice-target-go/ui/images"
)

// SelectorResult is the outcome of a confirmed image selection: the cropped
// template, an optional click offset relative to the region center, and the
// index of the confirmed region among its self-match results.
type SelectorResult struct {
	Image  image.Image
	Offset *image.Point
	Index  int
}

// SelectorView is the UI surface the presenter drives.
type SelectorView interface {
	Flash(msg string)
	Redraw()
}

// SelectorPresenter runs self-match highlighting for the image selector
// overlay: after each settled region edit it crops the region from the
// frozen frame, searches the whole frame for other occurrences on a worker,
// and exposes the surviving matches for rendering and result assembly.
type SelectorPresenter struct {
	cfg    *config.Config
	logger *slog.Logger
	view   SelectorView

	frame  *image.RGBA // frozen overlay frame
	origin image.Point // global origin of frame

	region    geometry.Rect // last settled region, global, normalized
	hasRegion bool
	crop      image.Image
	matches   []locate.Match // frame-local
	offsetPt  *image.Point   // global; recorded by right click
}

// NewSelectorPresenter constructs a presenter over the frozen frame captured
// at the given global origin.
func NewSelectorPresenter(cfg *config.Config, frame *image.RGBA, origin image.Point, view SelectorView, logger *slog.Logger) *SelectorPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &SelectorPresenter{cfg: cfg, logger: logger, view: view, frame: frame, origin: origin}
}

// OnDragStart clears state tied to the previous region when a new box is
// begun.
func (p *SelectorPresenter) OnDragStart() {
	p.offsetPt = nil
	p.clearMatches()
}

// OnSettle reacts to region selector settle notifications. A finished=false
// event only invalidates stale highlights; finished=true triggers the
// self-match search.
func (p *SelectorPresenter) OnSettle(region geometry.Rect, finished bool) {
	if !finished {
		p.clearMatches()
		return
	}
	p.region = region
	p.hasRegion = true
	p.selfMatch()
}

func (p *SelectorPresenter) selfMatch() {
	local := p.region.Image().Sub(p.origin)
	crop, err := images.Crop(p.frame, local)
	if err != nil {
		// Zero-thickness regions are reachable via keyboard nudges; treat
		// as no result.
		p.crop = nil
		p.clearMatches()
		return
	}
	p.crop = crop

	timeout := time.Duration(p.cfg.SearchTimeoutMS) * time.Millisecond
	opts := locate.Options{Threshold: p.cfg.MatchThreshold, MaxMatches: p.cfg.MatchLimit + 1}
	frame := p.frame
	found, ok := runWithTimeout(timeout, func() []locate.Match {
		return locate.LocateInImage(frame, crop, opts)
	})
	if !ok {
		p.discard("image search timed out, region too large?")
		return
	}
	if len(found) > p.cfg.MatchLimit {
		p.discard("too many matches, region too generic")
		return
	}
	p.matches = found
	if p.logger != nil {
		p.logger.Debug("self-match complete", "matches", len(found))
	}
	if p.view != nil {
		p.view.Redraw()
	}
}

func (p *SelectorPresenter) discard(msg string) {
	p.crop = nil
	p.clearMatches()
	if p.logger != nil {
		p.logger.Debug("self-match discarded", "reason", msg)
	}
	if p.view != nil {
		p.view.Flash(msg)
	}
}

func (p *SelectorPresenter) clearMatches() {
	if p.matches != nil {
		p.matches = nil
		if p.view != nil {
			p.view.Redraw()
		}
	}
}

// OnOffsetClick records the secondary-button click point. The offset stored
// in the result is relative to the region center.
func (p *SelectorPresenter) OnOffsetClick(x, y int) {
	pt := image.Point{X: x, Y: y}
	p.offsetPt = &pt
	if p.view != nil {
		p.view.Redraw()
	}
}

// OffsetPoint returns the recorded offset click, if any (global coordinates).
func (p *SelectorPresenter) OffsetPoint() *image.Point { return p.offsetPt }

// Highlights returns the self-match rectangles to render, in global
// coordinates, excluding the one coincident with the current region.
func (p *SelectorPresenter) Highlights() []geometry.Rect {
	if !p.hasRegion {
		return nil
	}
	var out []geometry.Rect
	for _, m := range p.matches {
		g := geometry.Rect{
			X:      p.origin.X + m.Rect.X,
			Y:      p.origin.Y + m.Rect.Y,
			Width:  m.Rect.Width,
			Height: m.Rect.Height,
		}
		if g == p.region {
			continue
		}
		out = append(out, g)
	}
	return out
}

// Result assembles the final selection, or nil when no region was confirmed
// or its crop was unusable.
func (p *SelectorPresenter) Result() *SelectorResult {
	if !p.hasRegion || p.crop == nil {
		return nil
	}
	res := &SelectorResult{Image: p.crop}
	if p.offsetPt != nil {
		cx, cy := p.region.Center()
		res.Offset = &image.Point{X: p.offsetPt.X - cx, Y: p.offsetPt.Y - cy}
	}
	for i, m := range p.matches {
		if p.origin.X+m.Rect.X == p.region.X && p.origin.Y+m.Rect.Y == p.region.Y &&
			m.Rect.Width == p.region.Width && m.Rect.Height == p.region.Height {
			res.Index = i
			break
		}
	}
	return res
}
