// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// The image/draw core package implements only the source-over-destination
// and source operators; this package covers the remaining ones.
//
// It is used to restrict the secondary image to the polygon area
// (the polygon mask is the backdrop of a source-in composition)
// and to optionally blend the secondary image with the canvas below it.
package imop

import (
	"fmt"

	"github.com/esimov/doodle/utils"
)

// Separable blend modes.
const (
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

// BlendModes lists the supported blend modes.
var BlendModes = []string{Darken, Lighten, Multiply, Screen, Overlay}

// Color is a color with normalized (0..1), non-premultiplied components.
type Color struct {
	R, G, B, A float64
}

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
	if !utils.Contains(BlendModes, opType) {
		return fmt.Errorf("unsupported blend mode: %q", opType)
	}
	o.OpType = opType
	return nil
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// Apply mixes the source color s with the backdrop b. The alpha of the result is s.A.
func (o *Blend) Apply(s, b Color) Color {
	fn := func(cs, cb float64) float64 { return cs }

	switch o.OpType {
	case Darken:
		fn = func(cs, cb float64) float64 { return utils.Min(cs, cb) }
	case Lighten:
		fn = func(cs, cb float64) float64 { return utils.Max(cs, cb) }
	case Multiply:
		fn = func(cs, cb float64) float64 { return cs * cb }
	case Screen:
		fn = func(cs, cb float64) float64 { return 1 - (1-cs)*(1-cb) }
	case Overlay:
		fn = func(cs, cb float64) float64 {
			if cb <= 0.5 {
				return 2 * cs * cb
			}
			return 1 - 2*(1-cs)*(1-cb)
		}
	}
	return Color{
		R: fn(s.R, b.R),
		G: fn(s.G, b.G),
		B: fn(s.B, b.B),
		A: s.A,
	}
}
