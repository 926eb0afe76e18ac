package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/folco"
	"github.com/esimov/folco/utils"
)

// HSL is a colour in the hue, saturation, lightness space. H is expressed
// in degrees in [0, 360), S and L in [0, 1].
type HSL struct {
	H, S, L float64
}

// ToHSL converts an RGB colour to HSL.
func ToHSL(c color.NRGBA) HSL {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	hi := utils.Max(r, utils.Max(g, b))
	lo := utils.Min(r, utils.Min(g, b))
	l := (hi + lo) / 2

	if hi == lo {
		return HSL{H: 0, S: 0, L: l}
	}

	d := hi - lo
	var s float64
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}

	var h float64
	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return HSL{H: h * 60, S: s, L: l}
}

// NRGBA converts the colour back to RGB with the given alpha.
func (c HSL) NRGBA(alpha uint8) color.NRGBA {
	if c.S == 0 {
		v := channel(c.L)
		return color.NRGBA{R: v, G: v, B: v, A: alpha}
	}
	var q float64
	if c.L < 0.5 {
		q = c.L * (1 + c.S)
	} else {
		q = c.L + c.S - c.L*c.S
	}
	p := 2*c.L - q
	h := c.H / 360
	return color.NRGBA{
		R: channel(hueToRGB(p, q, h+1.0/3)),
		G: channel(hueToRGB(p, q, h)),
		B: channel(hueToRGB(p, q, h-1.0/3)),
		A: alpha,
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func channel(v float64) uint8 {
	return uint8(math.Round(utils.Clamp(v, 0, 1) * 255))
}

// Shift applies a mutation to the colour. The hue wraps around, saturation
// and lightness saturate at the [0, 1] bounds.
func (c HSL) Shift(m folco.HSLMutation) HSL {
	h := math.Mod(c.H+m.HueShift, 360)
	if h < 0 {
		h += 360
	}
	return HSL{
		H: h,
		S: utils.Clamp(c.S+m.SaturationShift, 0, 1),
		L: utils.Clamp(c.L+m.LightnessShift, 0, 1),
	}
}

// MutateColor applies m to a single colour, keeping its alpha.
func MutateColor(c color.NRGBA, m folco.HSLMutation) color.NRGBA {
	if c.A == 0 {
		return c
	}
	return ToHSL(c).Shift(m).NRGBA(c.A)
}

// Mutate applies m to every pixel of img.
func Mutate(img image.Image, m folco.HSLMutation) *image.NRGBA {
	if m.IsIdentity() {
		return imaging.Clone(img)
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return MutateColor(c, m)
	})
}
