package imop

import (
	"fmt"
	"image"
	"image/color"

	"github.com/esimov/folco/utils"
)

// The supported Porter-Duff composition operations.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// factors returns the Porter-Duff fractions Fa and Fb of the source and
// backdrop contributions for the alpha values as and ab.
type factors func(as, ab float64) (fa, fb float64)

var compOps = map[string]factors{
	Clear:   func(as, ab float64) (float64, float64) { return 0, 0 },
	Copy:    func(as, ab float64) (float64, float64) { return 1, 0 },
	Dst:     func(as, ab float64) (float64, float64) { return 0, 1 },
	SrcOver: func(as, ab float64) (float64, float64) { return 1, 1 - as },
	DstOver: func(as, ab float64) (float64, float64) { return 1 - ab, 1 },
	SrcIn:   func(as, ab float64) (float64, float64) { return ab, 0 },
	DstIn:   func(as, ab float64) (float64, float64) { return 0, as },
	SrcOut:  func(as, ab float64) (float64, float64) { return 1 - ab, 0 },
	DstOut:  func(as, ab float64) (float64, float64) { return 0, 1 - as },
	SrcAtop: func(as, ab float64) (float64, float64) { return ab, 1 - as },
	DstAtop: func(as, ab float64) (float64, float64) { return 1 - ab, as },
	Xor:     func(as, ab float64) (float64, float64) { return 1 - ab, 1 - as },
}

// Bitmap holds the result of a composition.
type Bitmap struct {
	Img *image.NRGBA
}

// Composite holds the currently active composition operation.
type Composite struct {
	current string
}

// NewBitmap allocates a transparent bitmap.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// InitOp returns a Composite using source-over, the operation image/draw
// calls draw.Over.
func InitOp() *Composite {
	return &Composite{current: SrcOver}
}

// Ops returns the names of the supported operations.
func Ops() []string {
	return []string{Clear, Copy, Dst, SrcOver, DstOver, SrcIn, DstIn, SrcOut, DstOut, SrcAtop, DstAtop, Xor}
}

// Set activates one of the supported operations.
func (op *Composite) Set(cop string) error {
	if !utils.Contains(Ops(), cop) {
		return fmt.Errorf("unsupported composition operation: %v", cop)
	}
	op.current = cop
	return nil
}

// Get returns the active operation.
func (op *Composite) Get() string {
	return op.current
}

// Draw composes src over dst pixel by pixel and stores the outcome into
// bitmap. The three images are expected to share the same bounds.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA, blend *Blend) {
	if bitmap == nil {
		bitmap = NewBitmap(src.Bounds())
	}
	r := src.Bounds().Intersect(dst.Bounds()).Intersect(bitmap.Img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			bitmap.Img.SetNRGBA(x, y, op.compose(src.NRGBAAt(x, y), dst.NRGBAAt(x, y), blend))
		}
	}
}

// DrawAt composes src into dst in place, with the top-left corner of src
// placed at pt. Pixels of dst outside the area covered by src are left
// untouched.
func (op *Composite) DrawAt(dst, src *image.NRGBA, pt image.Point, blend *Blend) {
	sb := src.Bounds()
	area := sb.Sub(sb.Min).Add(pt).Intersect(dst.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			s := src.NRGBAAt(x-pt.X+sb.Min.X, y-pt.Y+sb.Min.Y)
			dst.SetNRGBA(x, y, op.compose(s, dst.NRGBAAt(x, y), blend))
		}
	}
}

// compose applies the blend mode, if any, and then the composition
// operation on a single pair of pixels.
func (op *Composite) compose(s, b color.NRGBA, blend *Blend) color.NRGBA {
	rs, gs, bs, as := norm(s)
	rb, gb, bb, ab := norm(b)

	// The blended colour replaces the source colour where the backdrop is opaque.
	if blend != nil && blend.Get() != "" {
		rs = (1-ab)*rs + ab*blend.apply(rs, rb)
		gs = (1-ab)*gs + ab*blend.apply(gs, gb)
		bs = (1-ab)*bs + ab*blend.apply(bs, bb)
	}

	fn, ok := compOps[op.current]
	if !ok {
		fn = compOps[SrcOver]
	}
	fa, fb := fn(as, ab)

	ao := fa*as + fb*ab
	if ao <= 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: denorm((fa*as*rs + fb*ab*rb) / ao),
		G: denorm((fa*as*gs + fb*ab*gb) / ao),
		B: denorm((fa*as*bs + fb*ab*bb) / ao),
		A: denorm(ao),
	}
}

func norm(c color.NRGBA) (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

func denorm(v float64) uint8 {
	return uint8(utils.Clamp(v, 0, 1)*255 + 0.5)
}
