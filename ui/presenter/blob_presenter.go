package presenter

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/voice-target-go/config"
	"github.com/soocke/voice-target-go/domain/blob"
	"github.com/soocke/voice-target-go/domain/geometry"
	"github.com/soocke/voice-target-go/ui/images"
	"github.com/soocke/voice-target-go/ui/model"
)

// BlobView is the UI surface the blob presenter drives.
type BlobView interface {
	Flash(msg string)
	Redraw()
}

// BlobPresenter segments the settled region into connected components and
// maintains the labeled marker set rendered atop the region selector.
type BlobPresenter struct {
	cfg    *config.Config
	logger *slog.Logger
	view   BlobView

	frame  *image.RGBA
	origin image.Point // global origin of frame

	set *model.MarkerSet
}

// NewBlobPresenter constructs a presenter over the frozen frame captured at
// the given global origin.
func NewBlobPresenter(cfg *config.Config, frame *image.RGBA, origin image.Point, view BlobView, logger *slog.Logger) *BlobPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &BlobPresenter{cfg: cfg, logger: logger, view: view, frame: frame, origin: origin}
}

// OnSettle recomputes markers when the region settles; mid-edit events clear
// stale markers.
func (p *BlobPresenter) OnSettle(region geometry.Rect, finished bool) {
	if !finished {
		p.clear()
		return
	}
	local := region.Image().Sub(p.origin)
	crop, err := images.Crop(p.frame, local)
	if err != nil {
		p.clear()
		return
	}
	roi := rgbaFrom(crop)

	timeout := time.Duration(p.cfg.SearchTimeoutMS) * time.Millisecond
	opts := blob.Options{Threshold: p.cfg.BlobThreshold}
	rects, ok := runWithTimeout(timeout, func() []geometry.Rect {
		return blob.Segment(roi, opts)
	})
	if !ok {
		p.clear()
		if p.view != nil {
			p.view.Flash("segmentation timed out, region too large?")
		}
		return
	}

	// Lift component rects from region-local into global coordinates.
	global := make([]geometry.Rect, len(rects))
	n := region.Normalize()
	for i, r := range rects {
		global[i] = geometry.Rect{X: n.X + r.X, Y: n.Y + r.Y, Width: r.Width, Height: r.Height}
	}
	p.set = model.NewMarkerSet(global, p.cfg.MarkerLabels)
	if p.logger != nil {
		p.logger.Debug("blob segmentation complete", "components", p.set.Len())
	}
	if p.view != nil {
		p.view.Redraw()
	}
}

// Markers returns the current marker set, nil when none is active.
func (p *BlobPresenter) Markers() *model.MarkerSet { return p.set }

// Result returns the marker rectangles for the overlay's final result, or
// nil when nothing was segmented.
func (p *BlobPresenter) Result() []geometry.Rect {
	if p.set == nil || p.set.Len() == 0 {
		return nil
	}
	out := make([]geometry.Rect, 0, p.set.Len())
	for _, m := range p.set.Markers() {
		out = append(out, m.Rect)
	}
	return out
}

func (p *BlobPresenter) clear() {
	if p.set != nil {
		p.set = nil
		if p.view != nil {
			p.view.Redraw()
		}
	}
}

// rgbaFrom converts any image to *image.RGBA without copying when possible.
func rgbaFrom(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}
