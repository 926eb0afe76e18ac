package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ErrEmptyRaster is returned when an svg document draws nothing visible.
var ErrEmptyRaster = errors.New("svg rasterized to an empty image")

// RasterizeSVG renders the svg document into a w x h transparent image. The
// drawing keeps its aspect ratio and is centered in the target box.
func RasterizeSVG(data []byte, w, h int) (img *image.NRGBA, err error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", w, h)
	}
	// oksvg panics on some malformed path data.
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("malformed svg: %v", r)
		}
	}()

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("could not parse svg: %w", err)
	}

	iw, ih := icon.ViewBox.W, icon.ViewBox.H
	if iw <= 0 || ih <= 0 {
		iw, ih = float64(w), float64(h)
	}
	scale := float64(w) / iw
	if s := float64(h) / ih; s < scale {
		scale = s
	}
	tw, th := iw*scale, ih*scale
	icon.SetTarget((float64(w)-tw)/2, (float64(h)-th)/2, tw, th)

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	out := imaging.Clone(rgba)
	if isTransparent(out) {
		return nil, ErrEmptyRaster
	}
	return out, nil
}

func isTransparent(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return false
		}
	}
	return true
}
