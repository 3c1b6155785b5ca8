package doodle

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/esimov/doodle/utils"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	maxScreenX = 1366
	maxScreenY = 768

	toolbarHeight = 48
)

var defaultBkgColor = color.NRGBA{R: 0xf4, G: 0xf4, B: 0xf5, A: 0xff}

// palette is cycled by the color command of the toolbar.
var palette = []string{"#000000", "#e53935", "#1e88e5", "#43a047", "#fdd835", "#8e24aa", "#ffffff"}

// action is a toolbar or keyboard command.
type action int

const (
	actPan action = iota
	actRectangle
	actCircle
	actArrow
	actPen
	actPolygon
	actColor
	actReset
	actExport
)

type button struct {
	label  string
	action action
	click  widget.Clickable
}

// shortcut binds a key to a toolbar action.
type shortcut struct {
	filter key.Filter
	action action
}

var shortcuts = []shortcut{
	{key.Filter{Name: "H"}, actPan},
	{key.Filter{Name: "R"}, actRectangle},
	{key.Filter{Name: "C"}, actCircle},
	{key.Filter{Name: "A"}, actArrow},
	{key.Filter{Name: "P"}, actPen},
	{key.Filter{Name: "G"}, actPolygon},
	{key.Filter{Name: "K"}, actColor},
	{key.Filter{Name: "N", Required: key.ModShortcut}, actReset},
	{key.Filter{Name: "S", Required: key.ModShortcut}, actExport},
}

// Gui is the interactive drawing board. It forwards the pointer events of
// the canvas area to the engine and paints the rendered scene on every frame.
type Gui struct {
	cfg struct {
		window struct {
			w, h  float64
			title string
		}
		scale      float32
		background color.NRGBA
	}
	engine   *Engine
	loader   *ImageLoader
	renderer *Renderer
	theme    *material.Theme
	toolbar  []*button

	pan      f32.Point
	panStart f32.Point
	panning  bool
	colorIdx int
	status   string
}

// NewGUI initializes the Gio interface of the engine. Images loaded
// through loader trigger a redraw once they are ready.
func NewGUI(e *Engine, loader *ImageLoader) *Gui {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	g := &Gui{
		engine:   e,
		loader:   loader,
		renderer: NewRenderer(),
		theme:    th,
	}
	for _, b := range []struct {
		label string
		act   action
	}{
		{"Pan", actPan},
		{"Rectangle", actRectangle},
		{"Circle", actCircle},
		{"Arrow", actArrow},
		{"Pen", actPen},
		{"Polygon", actPolygon},
		{"Color", actColor},
		{"Reset", actReset},
		{"Export", actExport},
	} {
		g.toolbar = append(g.toolbar, &button{label: b.label, action: b.act})
	}

	cfg := e.Config()
	g.initWindow(float64(cfg.Canvas.Width), float64(cfg.Canvas.Height))

	return g
}

// initWindow computes the window size and the canvas scale.
func (g *Gui) initWindow(w, h float64) {
	r := getRatio(w, h)
	g.cfg.scale = float32(r)
	g.cfg.window.w = w * r
	g.cfg.window.h = h*r + toolbarHeight
	g.cfg.window.title = "Doodle"
	g.cfg.background = defaultBkgColor
}

// Run opens the window and processes its events until it gets closed.
// It must be called from a goroutine other than the one running app.Main.
func (g *Gui) Run(ctx context.Context) error {
	w := new(app.Window)
	w.Option(
		app.Title(g.cfg.window.title),
		app.Size(unit.Dp(g.cfg.window.w), unit.Dp(g.cfg.window.h)),
	)

	if g.loader != nil {
		g.loader.OnLoad(func(Slot) { w.Invalidate() })
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case err := <-g.loader.Errors():
					log.Println(utils.DecorateText(err.Error(), utils.ErrorMessage))
				}
			}
		}()
	}

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			for _, s := range shortcuts {
				for {
					ev, ok := gtx.Event(s.filter)
					if !ok {
						break
					}
					if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
						g.dispatch(s.action)
					}
				}
			}
			for {
				ev, ok := gtx.Event(key.Filter{Name: key.NameEscape})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					w.Perform(system.ActionClose)
				}
			}
			g.layout(gtx)
			e.Frame(gtx.Ops)
		case app.DestroyEvent:
			return e.Err
		}
	}
}

// dispatch runs a toolbar command.
func (g *Gui) dispatch(act action) {
	switch act {
	case actPan:
		g.engine.TogglePan()
	case actRectangle:
		g.engine.SelectTool(ToolRectangle)
	case actCircle:
		g.engine.SelectTool(ToolCircle)
	case actArrow:
		g.engine.SelectTool(ToolArrow)
	case actPen:
		g.engine.SelectTool(ToolPen)
	case actPolygon:
		g.engine.SelectTool(ToolPolygon)
	case actColor:
		g.colorIdx = (g.colorIdx + 1) % len(palette)
		if err := g.engine.SetColorHex(palette[g.colorIdx]); err != nil {
			g.status = err.Error()
		}
	case actReset:
		g.engine.Reset()
		g.pan = f32.Point{}
		g.status = ""
	case actExport:
		g.status = g.export()
	}
}

// export writes the canvas to the configured export file.
func (g *Gui) export() string {
	cfg := g.engine.Config()

	dc, err := g.renderer.RenderScene(g.engine.Scene())
	if err != nil {
		return fmt.Sprintf("export failed: %v", err)
	}
	defer dc.Close()

	if err := ExportFile(cfg.Export.Name, dc, cfg.Export.Quality); err != nil {
		return fmt.Sprintf("export failed: %v", err)
	}
	return "saved " + cfg.Export.Name
}

// frame renders the current scene into an image ready to be uploaded.
func (g *Gui) frame() image.Image {
	dc, err := g.renderer.RenderScene(g.engine.Scene())
	if err != nil {
		g.status = err.Error()
		return nil
	}
	defer dc.Close()

	return dc.Image()
}

// getRatio returns the scale needed to fit the canvas on the screen.
func getRatio(w, h float64) float64 {
	r := 1.0
	if w > maxScreenX || h > maxScreenY-toolbarHeight {
		wr := maxScreenX / w
		hr := (maxScreenY - toolbarHeight) / h
		r = utils.Min(utils.Min(wr, hr), 1)
	}
	return r
}
