package locate

import (
	"image"
	"math"
)

// grayPrecomp stores per-frame grayscale values and their summed-area tables
// (integral images). The integrals allow O(1) window sum and variance queries.
type grayPrecomp struct {
	gray       []float64 // per pixel grayscale (length W*H)
	integral   []float64 // summed-area table of grayscale
	integralSq []float64 // summed-area table of grayscale squared
	W, H       int
}

// templatePrecomp caches grayscale pixels and summary statistics for a template.
type templatePrecomp struct {
	gray  []float64
	W, H  int
	meanT float64
	stdT  float64
}

// buildTemplatePrecomp converts a template to grayscale and computes its
// mean and standard deviation. Returns nil for a zero-area template.
func buildTemplatePrecomp(tmpl image.Image) *templatePrecomp {
	if tmpl == nil {
		return nil
	}
	b := tmpl.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	gray := make([]float64, w*h)
	var sumT, sumT2 float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bb, _ := tmpl.At(b.Min.X+x, b.Min.Y+y).RGBA()
			gval := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(bb)
			gray[y*w+x] = gval
			sumT += gval
			sumT2 += gval * gval
		}
	}
	n := float64(w * h)
	meanT := sumT / n
	varT := (sumT2 - sumT*sumT/n) / n
	stdT := 0.0
	if varT > 0 {
		stdT = math.Sqrt(varT)
	}
	return &templatePrecomp{gray: gray, W: w, H: h, meanT: meanT, stdT: stdT}
}

// buildGrayPrecomp computes per-pixel grayscale values and their summed-area
// tables for a frame.
func buildGrayPrecomp(frame *image.RGBA) *grayPrecomp {
	if frame == nil {
		return nil
	}
	b := frame.Bounds()
	W, H := b.Dx(), b.Dy()
	need := W * H
	p := &grayPrecomp{
		gray:       make([]float64, need),
		integral:   make([]float64, need),
		integralSq: make([]float64, need),
		W:          W,
		H:          H,
	}
	for y := 0; y < H; y++ {
		var rowSum, rowSum2 float64
		for x := 0; x < W; x++ {
			r, gg, bb, _ := frame.At(b.Min.X+x, b.Min.Y+y).RGBA()
			gray := 0.2126*float64(r) + 0.7152*float64(gg) + 0.0722*float64(bb)
			off := y*W + x
			p.gray[off] = gray
			rowSum += gray
			rowSum2 += gray * gray
			if y == 0 {
				p.integral[off] = rowSum
				p.integralSq[off] = rowSum2
			} else {
				p.integral[off] = p.integral[(y-1)*W+x] + rowSum
				p.integralSq[off] = p.integralSq[(y-1)*W+x] + rowSum2
			}
		}
	}
	return p
}

// integralSum returns the inclusive sum over rectangle [x0..x1] x [y0..y1]
// from an integral image stored in row-major order with width W.
func integralSum(I []float64, W int, x0, y0, x1, y1 int) float64 {
	if x0 > x1 || y0 > y1 {
		return 0
	}
	A := func(x, y int) float64 {
		if x < 0 || y < 0 {
			return 0
		}
		return I[y*W+x]
	}
	return A(x1, y1) - A(x0-1, y1) - A(x1, y0-1) + A(x0-1, y0-1)
}

// nccScoreAt computes the normalized cross-correlation of the template placed
// with its top-left at (x, y) in precomp coordinates. Returns -1 when the
// window has no variance.
func nccScoreAt(pre *grayPrecomp, pc *templatePrecomp, x, y int) float64 {
	w, h := pc.W, pc.H
	n := float64(w * h)
	sumF := integralSum(pre.integral, pre.W, x, y, x+w-1, y+h-1)
	sumF2 := integralSum(pre.integralSq, pre.W, x, y, x+w-1, y+h-1)
	meanF := sumF / n
	varF := (sumF2 - sumF*sumF/n) / n
	if varF <= 1e-9 {
		return -1
	}
	stdF := math.Sqrt(varF)
	var sumFT float64
	for i := 0; i < len(pc.gray); i++ {
		py := i / w
		px := i % w
		sumFT += pre.gray[(y+py)*pre.W+(x+px)] * pc.gray[i]
	}
	numer := sumFT - n*meanF*pc.meanT
	denom := n * stdF * pc.stdT
	if denom <= 0 {
		return -1
	}
	return numer / denom
}

// flatMatchAt reports whether every frame pixel under the template window
// equals the template's uniform value. Used when the template has no
// variance, where NCC is undefined.
func flatMatchAt(pre *grayPrecomp, pc *templatePrecomp, x, y int) bool {
	ref := pc.gray[0]
	w := pc.W
	for i := 0; i < len(pc.gray); i++ {
		py := i / w
		px := i % w
		if math.Abs(pre.gray[(y+py)*pre.W+(x+px)]-ref) > 1e-9 {
			return false
		}
	}
	return true
}
