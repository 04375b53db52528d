package images

import (
	"bytes"
	"errors"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// Crop extracts rect from frame as an independent image. The rect is given
// in the frame's coordinate space and clipped to its bounds; a zero-area
// result is an error since it cannot serve as a template.
func Crop(frame image.Image, rect image.Rectangle) (*image.NRGBA, error) {
	if frame == nil {
		return nil, errors.New("crop: nil frame")
	}
	clipped := rect.Intersect(frame.Bounds())
	if clipped.Empty() {
		return nil, errors.New("crop: empty region")
	}
	return imaging.Crop(frame, clipped), nil
}

// ScaleToFit shrinks src so it fits within maxW x maxH preserving aspect
// ratio. If the source already fits, the original is returned.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	return imaging.Fit(src, maxW, maxH, imaging.NearestNeighbor)
}
