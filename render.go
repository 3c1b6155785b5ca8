package doodle

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/esimov/doodle/imop"
	"github.com/gogpu/gg"
)

// Arrow head size.
const (
	arrowPointerLength = 10.0
	arrowPointerWidth  = 10.0
)

// maxScaledImages bounds the number of cached scaled images.
const maxScaledImages = 4

type scaleKey struct {
	img  image.Image
	w, h int
}

// Renderer paints a paint list on a gg drawing context.
// Scaled images are cached between frames, so rendering the same
// scene on every frame only scales its images once.
type Renderer struct {
	mu     sync.Mutex
	scaled map[scaleKey]*image.NRGBA
	order  []scaleKey
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{scaled: make(map[scaleKey]*image.NRGBA)}
}

// NewCanvas allocates a drawing context of the scene size, cleared with the scene background.
func NewCanvas(sc Scene) *gg.Context {
	dc := gg.NewContext(sc.Width, sc.Height)
	dc.ClearWithColor(gg.FromColor(sc.Background))
	return dc
}

// RenderScene composes the scene and paints it on a new canvas.
func (r *Renderer) RenderScene(sc Scene) (*gg.Context, error) {
	dc := NewCanvas(sc)
	if err := r.Render(dc, Compose(sc)); err != nil {
		dc.Close()
		return nil, err
	}
	return dc, nil
}

// Render paints every operation of the list on dc, in order.
func (r *Renderer) Render(dc *gg.Context, list PaintList) error {
	for _, op := range list {
		var err error
		switch op := op.(type) {
		case DrawImage:
			err = r.drawImage(dc, op)
		case DrawClippedImage:
			err = r.drawClippedImage(dc, op)
		case DrawPath:
			err = drawPath(dc, op)
		case DrawMarker:
			err = drawMarker(dc, op)
		case DrawShape:
			err = drawShape(dc, op)
		default:
			err = fmt.Errorf("unsupported paint operation %T", op)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// scale returns img resized to w×h.
func (r *Renderer) scale(img image.Image, w, h int) *image.NRGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := scaleKey{img: img, w: w, h: h}
	if res, ok := r.scaled[key]; ok {
		return res
	}
	res := imaging.Resize(img, w, h, imaging.Linear)

	if len(r.order) >= maxScaledImages {
		delete(r.scaled, r.order[0])
		r.order = r.order[1:]
	}
	r.scaled[key] = res
	r.order = append(r.order, key)

	return res
}

func pixelRect(dst Rect) (image.Rectangle, bool) {
	rect := image.Rect(
		int(math.Round(dst.Min.X)), int(math.Round(dst.Min.Y)),
		int(math.Round(dst.Max.X)), int(math.Round(dst.Max.Y)),
	)
	return rect, !rect.Empty()
}

func (r *Renderer) drawImage(dc *gg.Context, op DrawImage) error {
	rect, ok := pixelRect(op.Dst)
	if !ok {
		return nil
	}
	scaled := r.scale(op.Image, rect.Dx(), rect.Dy())
	dc.DrawImage(gg.ImageBufFromImage(scaled), float64(rect.Min.X), float64(rect.Min.Y))

	return nil
}

// drawClippedImage restricts the scaled image to the polygon by composing it
// (source-in) with a mask obtained by filling the polygon path.
func (r *Renderer) drawClippedImage(dc *gg.Context, op DrawClippedImage) error {
	rect, ok := pixelRect(op.Dst)
	if !ok || len(op.Clip) < 2 {
		return nil
	}
	canvas := image.Rect(0, 0, dc.Width(), dc.Height())

	mask := gg.NewContext(canvas.Dx(), canvas.Dy())
	defer mask.Close()

	mask.SetColor(color.White)
	tracePath(mask, op.Clip, true)
	if err := mask.Fill(); err != nil {
		return fmt.Errorf("fill clip path: %w", err)
	}

	layer := image.NewNRGBA(canvas)
	scaled := r.scale(op.Image, rect.Dx(), rect.Dy())
	draw.Draw(layer, rect, scaled, image.Point{}, draw.Src)

	comp := imop.InitOp()
	comp.Set(imop.SrcIn)
	clipped := comp.Draw(nil, layer, imaging.Clone(mask.Image()), nil)

	if op.Blend != "" {
		blend := imop.NewBlend()
		if err := blend.Set(op.Blend); err != nil {
			return err
		}
		// Copy keeps the blended source alone; the backdrop only feeds the blend.
		comp.Set(imop.Copy)
		clipped = comp.Draw(nil, clipped.Img, imaging.Clone(dc.Image()), blend)
	}
	dc.DrawImage(gg.ImageBufFromImage(clipped.Img), 0, 0)

	return nil
}

func tracePath(dc *gg.Context, pts []Point, closed bool) {
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	if closed {
		dc.ClosePath()
	}
}

func drawPath(dc *gg.Context, op DrawPath) error {
	if len(op.Points) < 2 {
		return nil
	}
	dc.SetColor(op.Color)
	dc.SetLineWidth(op.Width)
	dc.SetLineCap(gg.LineCapButt)
	dc.SetLineJoin(gg.LineJoinMiter)
	tracePath(dc, op.Points, op.Closed)

	return dc.Stroke()
}

func drawMarker(dc *gg.Context, op DrawMarker) error {
	if op.Radius <= 0 {
		return nil
	}
	dc.SetColor(op.Color)
	dc.DrawCircle(op.Center.X, op.Center.Y, op.Radius)

	return dc.Fill()
}

// lineStyle returns the cap and join of a shape outline. Pen strokes are
// rounded, the other shapes keep sharp corners.
func lineStyle(sh Shape) (gg.LineCap, gg.LineJoin) {
	if sh.Kind() == KindStroke {
		return gg.LineCapRound, gg.LineJoinRound
	}
	return gg.LineCapButt, gg.LineJoinMiter
}

func drawShape(dc *gg.Context, op DrawShape) error {
	dc.SetLineWidth(op.Width)
	lineCap, lineJoin := lineStyle(op.Shape)
	dc.SetLineCap(lineCap)
	dc.SetLineJoin(lineJoin)

	switch sh := op.Shape.(type) {
	case Rectangle:
		if sh.Width == 0 && sh.Height == 0 {
			return nil
		}
		dc.DrawRectangle(sh.X, sh.Y, sh.Width, sh.Height)
		return fillStroke(dc, op)
	case Circle:
		if sh.Radius == 0 {
			return nil
		}
		dc.DrawCircle(sh.X, sh.Y, sh.Radius)
		return fillStroke(dc, op)
	case Arrow:
		tail, tip := sh.Start(), sh.End()
		l, r, ok := arrowHead(tail, tip, arrowPointerLength, arrowPointerWidth)
		if !ok {
			return nil
		}
		dc.SetColor(op.Stroke)
		dc.DrawLine(tail.X, tail.Y, tip.X, tip.Y)
		if err := dc.Stroke(); err != nil {
			return err
		}
		tracePath(dc, []Point{tip, l, r}, true)
		return dc.Fill()
	case Stroke:
		pts := Points(sh.Points)
		if len(pts) < 2 {
			return nil
		}
		dc.SetColor(op.Stroke)
		tracePath(dc, pts, false)
		return dc.Stroke()
	}
	return fmt.Errorf("unsupported shape %T", op.Shape)
}

// fillStroke fills the current path with the fill color, if any, then strokes it.
func fillStroke(dc *gg.Context, op DrawShape) error {
	if op.Fill.A > 0 {
		dc.SetColor(op.Fill)
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}
	dc.SetColor(op.Stroke)
	return dc.Stroke()
}
