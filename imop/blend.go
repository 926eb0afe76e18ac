// Package imop implements the Porter-Duff composition operations and the
// separable blend modes used to layer the decal and the overlay over the
// folder shape. The image/draw core package implements only the
// source-over-destination and source operations; this package covers the
// rest of them.
package imop

import (
	"fmt"

	"github.com/esimov/folco/utils"
)

// The supported blend modes.
const (
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) error {
	bModes := []string{Darken, Lighten, Multiply, Screen, Overlay}

	if !utils.Contains(bModes, opType) {
		return fmt.Errorf("unsupported blend mode: %v", opType)
	}
	o.OpType = opType
	return nil
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// apply blends a normalized source channel cs with the backdrop channel cb.
func (o *Blend) apply(cs, cb float64) float64 {
	switch o.OpType {
	case Darken:
		return utils.Min(cs, cb)
	case Lighten:
		return utils.Max(cs, cb)
	case Multiply:
		return cs * cb
	case Screen:
		return cs + cb - cs*cb
	case Overlay:
		// Overlay is hard-light with the layers swapped.
		if cb <= 0.5 {
			return 2 * cs * cb
		}
		return 1 - 2*(1-cs)*(1-cb)
	}
	return cs
}
