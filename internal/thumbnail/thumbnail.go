// Package thumbnail derives fixed-size square previews from clipboard images.
package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// DefaultSize is the square edge length in pixels used for popup previews.
const DefaultSize = 32

// Make decodes pngData, scales it to fill a size×size square and center-crops
// the overflow (no letterboxing), and re-encodes the result as PNG.
func Make(pngData []byte, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	src, _, err := image.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("degenerate image %dx%d", b.Dx(), b.Dy())
	}

	// Scale so the shorter edge exactly fills the square, then crop the
	// longer edge symmetrically.
	scale := max(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	w := int(float64(b.Dx())*scale + 0.5)
	h := int(float64(b.Dy())*scale + 0.5)

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, b, draw.Src, nil)

	offX := (w - size) / 2
	offY := (h - size) / 2
	out := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(out, out.Bounds(), scaled, image.Pt(offX, offY), draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
