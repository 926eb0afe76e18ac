package folco

import (
	"fmt"
	"strings"
)

// FolderColor is a named preset of the folder colour.
type FolderColor int

// The folder colour palette.
const (
	Red FolderColor = iota + 1
	Orange
	Yellow
	Green
	Mint
	Teal
	Cyan
	Blue
	Indigo
	Purple
	Pink
	Brown
	Gray
	Black
)

type paletteEntry struct {
	color    FolderColor
	name     string
	mutation HSLMutation
}

// palette maps each preset to a fixed mutation of the base folder colour
// (a saturated blue at hue 210).
var palette = []paletteEntry{
	{Red, "red", HSLMutation{HueShift: 150, SaturationShift: 0.05, LightnessShift: -0.02}},
	{Orange, "orange", HSLMutation{HueShift: 180, SaturationShift: 0.1, LightnessShift: 0.02}},
	{Yellow, "yellow", HSLMutation{HueShift: -160, SaturationShift: 0.1, LightnessShift: 0.08}},
	{Green, "green", HSLMutation{HueShift: -85, SaturationShift: -0.1, LightnessShift: -0.04}},
	{Mint, "mint", HSLMutation{HueShift: -50, SaturationShift: -0.05, LightnessShift: 0.06}},
	{Teal, "teal", HSLMutation{HueShift: -30, SaturationShift: -0.15, LightnessShift: -0.05}},
	{Cyan, "cyan", HSLMutation{HueShift: -20, SaturationShift: 0.05, LightnessShift: 0.05}},
	{Blue, "blue", HSLMutation{}},
	{Indigo, "indigo", HSLMutation{HueShift: 30, SaturationShift: -0.1, LightnessShift: -0.06}},
	{Purple, "purple", HSLMutation{HueShift: 65, SaturationShift: -0.1, LightnessShift: -0.02}},
	{Pink, "pink", HSLMutation{HueShift: 125, SaturationShift: 0, LightnessShift: 0.04}},
	{Brown, "brown", HSLMutation{HueShift: 180, SaturationShift: -0.45, LightnessShift: -0.18}},
	{Gray, "gray", HSLMutation{HueShift: 0, SaturationShift: -1, LightnessShift: -0.05}},
	{Black, "black", HSLMutation{HueShift: 0, SaturationShift: -1, LightnessShift: -0.45}},
}

// FolderColors returns every colour of the palette, in palette order.
func FolderColors() []FolderColor {
	out := make([]FolderColor, len(palette))
	for i, e := range palette {
		out[i] = e.color
	}
	return out
}

// ParseFolderColor looks a colour up by name, case-insensitively.
// "grey" is accepted as an alias of "gray".
func ParseFolderColor(name string) (FolderColor, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "grey" {
		n = "gray"
	}
	for _, e := range palette {
		if e.name == n {
			return e.color, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

// HSLMutation returns the mutation associated with the colour. Unknown
// colours map to the identity mutation.
func (c FolderColor) HSLMutation() HSLMutation {
	if e, ok := c.entry(); ok {
		return e.mutation
	}
	return HSLMutation{}
}

func (c FolderColor) String() string {
	if e, ok := c.entry(); ok {
		return e.name
	}
	return fmt.Sprintf("FolderColor(%d)", int(c))
}

func (c FolderColor) entry() (paletteEntry, bool) {
	for _, e := range palette {
		if e.color == c {
			return e, true
		}
	}
	return paletteEntry{}, false
}
