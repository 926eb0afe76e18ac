package render

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"
)

// BaseColor is the colour of the front panel of the plain folder. Every
// HSL mutation is relative to it.
var BaseColor = HSL{H: 210, S: 0.78, L: 0.62}

// Folder holds the geometry of the folder shape for a square canvas of
// Size pixels. The rectangles are expressed in canvas coordinates.
type Folder struct {
	Size int
	Tab  image.Rectangle
	Back image.Rectangle
	Body image.Rectangle
}

// NewFolder computes the folder geometry for a canvas of size pixels.
func NewFolder(size int) Folder {
	s := float64(size)
	at := func(x, y float64) image.Point {
		return image.Pt(int(x*s+0.5), int(y*s+0.5))
	}
	return Folder{
		Size: size,
		Tab:  image.Rectangle{Min: at(0.06, 0.14), Max: at(0.42, 0.24)},
		Back: image.Rectangle{Min: at(0.06, 0.19), Max: at(0.94, 0.80)},
		Body: image.Rectangle{Min: at(0.06, 0.27), Max: at(0.94, 0.86)},
	}
}

// Draw renders the plain folder with the front panel painted in front and
// the back panel and tab in a darker shade of it.
func (f Folder) Draw(front HSL) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Size, f.Size))
	radius := float32(f.Size) * 0.035

	back := front
	back.L -= 0.12
	highlight := front
	highlight.L += 0.08

	fill(img, back.NRGBA(0xff), radius, f.Tab, f.Back)
	fill(img, front.NRGBA(0xff), radius, f.Body)

	// Thin lighter stripe along the top edge of the front panel.
	stripe := f.Body
	stripe.Max.Y = stripe.Min.Y + f.Size/64 + 1
	stripe.Min.X += int(radius)
	stripe.Max.X -= int(radius)
	fill(img, highlight.NRGBA(0xff), 0, stripe)

	return img
}

// fill paints the union of the rounded rectangles with c.
func fill(dst *image.NRGBA, c color.NRGBA, radius float32, rects ...image.Rectangle) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, r := range rects {
		roundedRect(z, r, radius)
	}
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func roundedRect(z *vector.Rasterizer, r image.Rectangle, radius float32) {
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)
	if lim := (x1 - x0) / 2; radius > lim {
		radius = lim
	}
	if lim := (y1 - y0) / 2; radius > lim {
		radius = lim
	}

	z.MoveTo(x0+radius, y0)
	z.LineTo(x1-radius, y0)
	z.QuadTo(x1, y0, x1, y0+radius)
	z.LineTo(x1, y1-radius)
	z.QuadTo(x1, y1, x1-radius, y1)
	z.LineTo(x0+radius, y1)
	z.QuadTo(x0, y1, x0, y1-radius)
	z.LineTo(x0, y0+radius)
	z.QuadTo(x0, y0, x0+radius, y0)
	z.ClosePath()
}
