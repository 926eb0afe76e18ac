// Package render implements the default folco.Renderer: it draws the folder
// shape, applies the colour mutation and layers the decal and the overlay
// over it.
package render

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/esimov/folco"
	"github.com/esimov/folco/imop"
	"github.com/esimov/folco/utils"
	"go.uber.org/zap"
)

const (
	// DefaultSize is the edge of the rendered icon in pixels.
	DefaultSize = 256

	minSize = 16
	maxSize = 1024

	// decalDarkening is subtracted from the front panel lightness to get
	// the decal tint.
	decalDarkening = 0.22
	// shadowOpacity is the opacity of the blurred shadow under the overlay.
	shadowOpacity = 0.35
)

// Renderer is the default folco.Renderer.
type Renderer struct {
	size   int
	emoji  EmojiSource
	logger *zap.Logger
}

var _ folco.Renderer = (*Renderer)(nil)

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the icon edge in pixels, clamped to [16, 1024].
func WithSize(px int) Option {
	return func(r *Renderer) {
		if px > 0 {
			r.size = utils.Clamp(px, minSize, maxSize)
		}
	}
}

// WithEmojiSource sets the provider of emoji artwork.
func WithEmojiSource(src EmojiSource) Option {
	return func(r *Renderer) {
		r.emoji = src
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a Renderer. Without options it renders 256 pixel icons and
// fetches emoji from the public twemoji server without caching.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		size:   DefaultSize,
		emoji:  &Twemoji{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Size returns the edge of the rendered icons.
func (r *Renderer) Size() int {
	return r.size
}

// Render implements folco.Renderer.
func (r *Renderer) Render(ctx context.Context, p folco.Profile) (*folco.Composite, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	shape := NewFolder(r.size)

	front := BaseColor
	img := shape.Draw(front)
	if m, ok := p.HSLMutation(); ok {
		img = Mutate(img, m)
		front = front.Shift(m)
	}

	if d, ok := p.ActiveDecal(); ok {
		if err := r.drawDecal(ctx, img, shape, front, d); err != nil {
			return nil, fmt.Errorf("decal: %w", err)
		}
	}
	if o, ok := p.ActiveOverlay(); ok {
		if err := r.drawOverlay(ctx, img, shape, o); err != nil {
			return nil, fmt.Errorf("overlay: %w", err)
		}
	}
	r.logger.Debug("rendered icon", zap.Int("size", r.size), zap.Bool("noop", p.IsNoop()))
	return &folco.Composite{Image: img}, nil
}

// drawDecal tints the decal with a darker shade of the front panel and
// centers it on the folder body. The decal never spills outside the folder.
func (r *Renderer) drawDecal(ctx context.Context, dst *image.NRGBA, f Folder, front HSL, d folco.DecalSettings) error {
	w := int(float64(f.Body.Dx()) * d.Scale)
	h := int(float64(f.Body.Dy()) * d.Scale)
	art, err := r.rasterize(ctx, d.Source, w, h)
	if err != nil {
		return err
	}

	tint := front
	tint.L = utils.Clamp(tint.L-decalDarkening, 0, 1)
	tinted := image.NewNRGBA(art.Bounds())
	for i := 0; i < len(tinted.Pix); i += 4 {
		c := tint.NRGBA(0xff)
		tinted.Pix[i], tinted.Pix[i+1], tinted.Pix[i+2], tinted.Pix[i+3] = c.R, c.G, c.B, c.A
	}

	op := imop.InitOp()
	// Keep the tint only where the decal is drawn.
	_ = op.Set(imop.SrcIn)
	op.Draw(&imop.Bitmap{Img: tinted}, tinted, art, nil)

	// Paint it on the folder only, multiplied so the panel shading shows through.
	_ = op.Set(imop.SrcAtop)
	blend := imop.NewBlend()
	_ = blend.Set(imop.Multiply)
	center := image.Pt(f.Body.Min.X+f.Body.Dx()/2, f.Body.Min.Y+f.Body.Dy()/2)
	at := center.Sub(image.Pt(art.Bounds().Dx()/2, art.Bounds().Dy()/2))
	op.DrawAt(dst, tinted, at, blend)
	return nil
}

// drawOverlay places the overlay at its anchor, above a soft shadow. A
// scale of 1 makes the overlay half as large as the icon.
func (r *Renderer) drawOverlay(ctx context.Context, dst *image.NRGBA, f Folder, o folco.OverlaySettings) error {
	edge := int(float64(f.Size) / 2 * o.Scale)
	art, err := r.rasterize(ctx, o.Source, edge, edge)
	if err != nil {
		return err
	}
	at := anchor(f, art.Bounds().Size(), o.Position)

	shadow := image.NewNRGBA(art.Bounds())
	op := imop.InitOp()
	_ = op.Set(imop.SrcIn)
	op.Draw(&imop.Bitmap{Img: shadow}, solid(art.Bounds(), 0, 0, 0), art, nil)
	blurred := imaging.Blur(shadow, float64(f.Size)/128)
	offset := image.Pt(0, utils.Max(1, f.Size/96))

	out := imaging.Overlay(dst, blurred, at.Add(offset), shadowOpacity)
	out = imaging.Overlay(out, art, at, 1.0)
	copy(dst.Pix, out.Pix)
	return nil
}

// rasterize turns a source into pixels, resolving emoji through the emoji
// source.
func (r *Renderer) rasterize(ctx context.Context, src folco.SvgSource, w, h int) (*image.NRGBA, error) {
	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case folco.SourceSvg:
		data = []byte(src.Value())
	case folco.SourceEmoji:
		data, err = r.emojiSVG(ctx, src.Value())
	case folco.SourceEmojiName:
		glyph, ok := LookupEmoji(src.Value())
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEmoji, src.Value())
		}
		data, err = r.emojiSVG(ctx, glyph)
	default:
		return nil, folco.ErrUnknownSourceKind
	}
	if err != nil {
		return nil, err
	}
	return RasterizeSVG(data, utils.Max(w, 1), utils.Max(h, 1))
}

func (r *Renderer) emojiSVG(ctx context.Context, glyph string) ([]byte, error) {
	if r.emoji == nil {
		return nil, fmt.Errorf("no emoji source configured")
	}
	return r.emoji.SVG(ctx, glyph)
}

// anchor returns the top-left corner of a box of the given size placed at
// pos, inset from the canvas edges by a small margin.
func anchor(f Folder, size image.Point, pos folco.Position) image.Point {
	margin := f.Size / 32
	left, top := margin, margin
	right := f.Size - margin - size.X
	bottom := f.Size - margin - size.Y

	switch pos {
	case folco.BottomLeft:
		return image.Pt(left, bottom)
	case folco.TopLeft:
		return image.Pt(left, top)
	case folco.TopRight:
		return image.Pt(right, top)
	case folco.Center:
		return image.Pt((f.Size-size.X)/2, (f.Size-size.Y)/2)
	}
	return image.Pt(right, bottom)
}

func solid(r image.Rectangle, red, green, blue uint8) *image.NRGBA {
	img := image.NewNRGBA(r)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = red, green, blue, 0xff
	}
	return img
}
