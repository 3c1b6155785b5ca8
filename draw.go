package doodle

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// layout lays out the toolbar above the canvas area.
func (g *Gui) layout(gtx C) D {
	for _, b := range g.toolbar {
		for b.click.Clicked(gtx) {
			g.dispatch(b.action)
		}
	}
	paint.Fill(gtx.Ops, g.cfg.background)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(g.layoutToolbar),
		layout.Flexed(1, g.layoutCanvas),
	)
}

func (g *Gui) layoutToolbar(gtx C) D {
	children := make([]layout.FlexChild, 0, len(g.toolbar)+1)
	for _, b := range g.toolbar {
		children = append(children, layout.Rigid(func(gtx C) D {
			return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx C) D {
				btn := material.Button(g.theme, &b.click, g.label(b))
				btn.Background = g.buttonBackground(b.action)
				if b.action == actColor {
					btn.Background = g.engine.Color()
					btn.Color = contrastColor(btn.Background)
				}
				return btn.Layout(gtx)
			})
		}))
	}
	children = append(children, layout.Rigid(func(gtx C) D {
		return layout.UniformInset(unit.Dp(12)).Layout(gtx, material.Body2(g.theme, g.status).Layout)
	}))

	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
}

// label decorates the button of the active tool.
func (g *Gui) label(b *button) string {
	if g.isActive(b.action) {
		return "● " + b.label
	}
	return b.label
}

func (g *Gui) isActive(act action) bool {
	switch t := g.engine.Tool(); act {
	case actPan:
		return t == ToolPan
	case actRectangle:
		return t == ToolRectangle
	case actCircle:
		return t == ToolCircle
	case actArrow:
		return t == ToolArrow
	case actPen:
		return t == ToolPen
	case actPolygon:
		return t == ToolPolygon
	}
	return false
}

func (g *Gui) buttonBackground(act action) color.NRGBA {
	if g.isActive(act) {
		return color.NRGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}
	}
	return color.NRGBA{R: 0x3f, G: 0x3f, B: 0x46, A: 0xff}
}

// layoutCanvas paints the rendered scene and routes the pointer events to the engine.
func (g *Gui) layoutCanvas(gtx C) D {
	size := gtx.Constraints.Max
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()

	g.handleCanvasInput(gtx)

	if img := g.frame(); img != nil {
		tr := f32.Affine2D{}.
			Scale(f32.Point{}, f32.Pt(g.cfg.scale, g.cfg.scale)).
			Offset(g.pan)
		defer op.Affine(tr).Push(gtx.Ops).Pop()

		src := paint.NewImageOp(img)
		src.Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
	}
	return D{Size: size}
}

// handleCanvasInput translates the pointer events to engine commands.
// While the pan mode is on, dragging moves the view instead.
func (g *Gui) handleCanvasInput(gtx C) {
	event.Op(gtx.Ops, g)

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: g,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		x, y := g.canvasPoint(e.Position)

		switch e.Kind {
		case pointer.Press:
			if e.Buttons != pointer.ButtonPrimary {
				continue
			}
			if g.engine.PanMode() {
				g.panning = true
				g.panStart = e.Position.Sub(g.pan)
				continue
			}
			// The polygon builder and the draft pipeline are gated on
			// mutually exclusive tools, so at most one of them reacts.
			g.engine.Click(x, y)
			g.engine.PointerDown(x, y)
		case pointer.Drag:
			if g.panning {
				g.pan = e.Position.Sub(g.panStart)
				continue
			}
			g.engine.PointerMove(x, y)
		case pointer.Release, pointer.Cancel:
			if g.panning {
				g.panning = false
				continue
			}
			g.engine.PointerUp()
		}
	}
}

// canvasPoint maps a position of the canvas area to canvas coordinates.
func (g *Gui) canvasPoint(p f32.Point) (float64, float64) {
	p = p.Sub(g.pan)
	return float64(p.X / g.cfg.scale), float64(p.Y / g.cfg.scale)
}

// contrastColor returns black or white, whichever reads better on c.
func contrastColor(c color.NRGBA) color.NRGBA {
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if lum > 140 || c.A < 0x80 {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}
