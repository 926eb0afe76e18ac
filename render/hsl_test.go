package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/esimov/folco"
	"github.com/stretchr/testify/assert"
)

func TestHSL_ToHSL(t *testing.T) {
	assert := assert.New(t)

	red := ToHSL(color.NRGBA{R: 255, A: 255})
	assert.InDelta(0, red.H, 1e-9)
	assert.InDelta(1, red.S, 1e-9)
	assert.InDelta(0.5, red.L, 1e-9)

	blue := ToHSL(color.NRGBA{B: 255, A: 255})
	assert.InDelta(240, blue.H, 1e-9)

	gray := ToHSL(color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	assert.Zero(gray.S)
	assert.InDelta(128.0/255, gray.L, 1e-9)
}

func TestHSL_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	colors := []color.NRGBA{
		{R: 33, G: 150, B: 243, A: 255},
		{R: 233, G: 30, B: 99, A: 255},
		{R: 255, G: 235, B: 59, A: 255},
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	for _, c := range colors {
		got := ToHSL(c).NRGBA(c.A)
		assert.InDelta(c.R, got.R, 1, "%v", c)
		assert.InDelta(c.G, got.G, 1, "%v", c)
		assert.InDelta(c.B, got.B, 1, "%v", c)
		assert.Equal(c.A, got.A)
	}
}

func TestHSL_Shift(t *testing.T) {
	assert := assert.New(t)

	c := HSL{H: 350, S: 0.5, L: 0.5}

	got := c.Shift(folco.HSLMutation{HueShift: 20})
	assert.InDelta(10, got.H, 1e-9)

	got = c.Shift(folco.HSLMutation{HueShift: -360 - 10})
	assert.InDelta(340, got.H, 1e-9)

	got = c.Shift(folco.HSLMutation{SaturationShift: 0.9, LightnessShift: -0.9})
	assert.Equal(1.0, got.S)
	assert.Equal(0.0, got.L)
}

func TestHSL_Mutate(t *testing.T) {
	assert := assert.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, BaseColor.NRGBA(0xff))

	same := Mutate(img, folco.HSLMutation{HueShift: 360})
	assert.Equal(img.Pix, same.Pix)

	gray := Mutate(img, folco.HSLMutation{SaturationShift: -1})
	px := gray.NRGBAAt(0, 0)
	assert.Equal(px.R, px.G)
	assert.Equal(px.G, px.B)
	assert.Equal(uint8(0xff), px.A)

	// Transparent pixels are left alone.
	assert.Equal(color.NRGBA{}, gray.NRGBAAt(1, 0))
}
