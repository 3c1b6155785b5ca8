package doodle

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/esimov/doodle/utils"
)

// ErrInvalidColor is returned when a color command can't be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Slot identifies one of the two canvas images.
type Slot int

const (
	// Primary is the background image painted at its fixed placement.
	Primary Slot = iota
	// Secondary is the image visible only inside the polygon.
	Secondary
)

func (s Slot) String() string {
	if s == Primary {
		return "primary"
	}
	return "secondary"
}

// Engine owns the whole drawing state: the tool controller, the pointer
// pipeline, the polygon builder, the shape store, the shared stroke color
// and the two canvas images. Every command runs to completion under a single
// lock, so an engine can be driven from the UI loop and fed by image loader
// goroutines at the same time.
type Engine struct {
	mu sync.Mutex

	cfg      *Config
	tools    ToolState
	store    Store
	pipeline *Pipeline
	polygon  *PolygonBuilder
	color    color.NRGBA

	primary   image.Image
	secondary image.Image
}

// NewEngine creates an engine with the given configuration. A nil
// configuration falls back to DefaultConfig.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{cfg: cfg}
	e.pipeline = NewPipeline(&e.tools, &e.store)
	e.polygon = NewPolygonBuilder(&e.tools)
	e.color = cfg.strokeColor()

	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// SelectTool activates t. It returns false if the command was refused
// because a drag is in progress.
func (e *Engine) SelectTool(t Tool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ok := e.tools.Select(t)
	if !ok {
		Logger().Debug("tool change refused", "tool", t, "active", e.tools.Active())
	}
	return ok
}

// TogglePan flips the pan mode. It returns false if the command was refused.
func (e *Engine) TogglePan() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.tools.TogglePan()
}

// Tool returns the active tool.
func (e *Engine) Tool() Tool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.tools.Active()
}

// PanMode reports whether the pan mode is on.
func (e *Engine) PanMode() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.tools.PanMode()
}

// SetColor changes the shared stroke color. Every shape, finalized or not,
// is painted with the new color from the next frame on.
func (e *Engine) SetColor(c color.Color) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.color = color.NRGBAModel.Convert(c).(color.NRGBA)
}

// SetColorHex parses a hex color and sets it as the stroke color.
func (e *Engine) SetColorHex(hex string) error {
	c, err := utils.HexToRGBA(hex)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidColor, err)
	}
	e.SetColor(c)
	return nil
}

// Color returns the shared stroke color.
func (e *Engine) Color() color.NRGBA {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.color
}

// PointerDown starts a draft shape at (x, y).
func (e *Engine) PointerDown(x, y float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pipeline.Down(Pt(x, y))
}

// PointerMove updates the draft shape with the pointer position.
func (e *Engine) PointerMove(x, y float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pipeline.Move(Pt(x, y))
}

// PointerUp finalizes the draft shape.
func (e *Engine) PointerUp() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	sh, ok := e.pipeline.Up()
	if ok {
		Logger().Debug("shape finalized", "kind", sh.Kind(), "tool", e.tools.Active())
	}
	return ok
}

// Click feeds a click to the polygon builder.
func (e *Engine) Click(x, y float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ok := e.polygon.Click(Pt(x, y))
	if ok {
		pg := e.polygon.Polygon()
		Logger().Debug("polygon changed", "vertices", pg.Len(), "closed", pg.Closed)
	}
	return ok
}

// SetImage swaps one of the canvas images. A nil image removes it.
func (e *Engine) SetImage(slot Slot, img image.Image) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch slot {
	case Primary:
		e.primary = img
	case Secondary:
		e.secondary = img
	}
	if img != nil {
		Logger().Info("image ready", "slot", slot, "bounds", img.Bounds())
	}
}

// Reset wipes the shapes, the polygon, the draft shape and the tool state
// in a single step. The loaded images and the stroke color are kept.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.Clear()
	e.polygon.Reset()
	e.pipeline.Reset()
	e.tools.Reset()
}

// Shapes returns the finalized shapes in paint order.
func (e *Engine) Shapes() []Shape {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.Shapes()
}

// Draft returns a copy of the shape under construction, if any.
func (e *Engine) Draft() (Shape, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pipeline.Draft()
}

// Polygon returns a copy of the polygon.
func (e *Engine) Polygon() Polygon {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.polygon.Polygon()
}

// Scene takes a snapshot of the state to be painted.
func (e *Engine) Scene() Scene {
	e.mu.Lock()
	defer e.mu.Unlock()

	draft, _ := e.pipeline.Draft()
	p := e.cfg.Primary

	return Scene{
		Width:         e.cfg.Canvas.Width,
		Height:        e.cfg.Canvas.Height,
		Background:    e.cfg.background(),
		Primary:       e.primary,
		PrimaryRect:   Rect{Min: Pt(p.X, p.Y), Max: Pt(p.X+p.Width, p.Y+p.Height)},
		Secondary:     e.secondary,
		SecondaryMode: e.cfg.Secondary.Blend,
		Polygon:       e.polygon.Polygon(),
		ShowBorder:    e.tools.ShowBorder(),
		BorderColor:   e.cfg.borderColor(),
		BorderWidth:   e.cfg.Polygon.BorderWidth,
		MarkerRadius:  e.cfg.Polygon.MarkerRadius,
		Shapes:        e.store.Shapes(),
		Draft:         draft,
		StrokeColor:   e.color,
		StrokeWidth:   e.cfg.Stroke.Width,
	}
}

// PaintList composes the paint list of the current state.
func (e *Engine) PaintList() PaintList {
	return Compose(e.Scene())
}
