package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComp_Basic(t *testing.T) {
	assert := assert.New(t)

	op := InitOp()
	assert.Equal(SrcOver, op.Get())

	err := op.Set("unsupported_composite_operation")
	assert.Error(err)
	assert.Equal(SrcOver, op.Get())

	assert.NoError(op.Set(Dst))
	assert.Equal(Dst, op.Get())
}

func TestComp_Ops(t *testing.T) {
	assert := assert.New(t)
	op := InitOp()

	transparent := color.NRGBA{R: 0, G: 0, B: 0, A: 0}
	cyan := color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	magenta := color.NRGBA{R: 233, G: 30, B: 99, A: 255}

	rect := image.Rect(0, 0, 10, 10)
	bmp := NewBitmap(rect)
	source := image.NewNRGBA(rect)
	backdrop := image.NewNRGBA(rect)

	draw.Draw(source, image.Rect(0, 4, 6, 10), &image.Uniform{cyan}, image.Point{}, draw.Src)
	draw.Draw(backdrop, image.Rect(4, 0, 10, 6), &image.Uniform{magenta}, image.Point{}, draw.Src)

	// Pick three representative pixels: backdrop only, source only and the overlap.
	// Depending on the applied operation each of them should be the source
	// color, the backdrop color or transparent.
	cases := []struct {
		op                          string
		topRight, bottomLeft, center color.NRGBA
	}{
		{SrcOver, magenta, cyan, cyan},
		{DstOver, magenta, cyan, magenta},
		{Clear, transparent, transparent, transparent},
		{Copy, transparent, cyan, cyan},
		{Dst, magenta, transparent, magenta},
		{SrcIn, transparent, transparent, cyan},
		{DstIn, transparent, transparent, magenta},
		{SrcOut, transparent, cyan, transparent},
		{DstOut, magenta, transparent, transparent},
		{SrcAtop, magenta, transparent, cyan},
		{DstAtop, transparent, cyan, magenta},
		{Xor, magenta, cyan, transparent},
	}
	for _, tc := range cases {
		assert.NoError(op.Set(tc.op))
		op.Draw(bmp, source, backdrop, nil)

		assert.Equal(tc.topRight, bmp.Img.NRGBAAt(9, 0), tc.op)
		assert.Equal(tc.bottomLeft, bmp.Img.NRGBAAt(0, 9), tc.op)
		assert.Equal(tc.center, bmp.Img.NRGBAAt(5, 5), tc.op)
	}
}

func TestComp_DrawAtOffset(t *testing.T) {
	assert := assert.New(t)

	red := color.NRGBA{R: 255, A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	dst := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{white}, image.Point{}, draw.Src)

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(src, src.Bounds(), &image.Uniform{red}, image.Point{}, draw.Src)

	op := InitOp()
	op.DrawAt(dst, src, image.Pt(7, 7), nil)

	assert.Equal(red, dst.NRGBAAt(7, 7))
	assert.Equal(white, dst.NRGBAAt(6, 6))
	assert.Equal(white, dst.NRGBAAt(0, 0))
}
