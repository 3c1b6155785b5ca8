package doodle

import (
	"image"
	"image/color"
)

// finalizedFillAlpha is the opacity of the fill of finalized rectangles and circles.
const finalizedFillAlpha = 0x55

// Scene is an immutable snapshot of everything that is painted in one frame.
type Scene struct {
	Width, Height int
	Background    color.NRGBA

	Primary       image.Image
	PrimaryRect   Rect
	Secondary     image.Image
	SecondaryMode string

	Polygon      Polygon
	ShowBorder   bool
	BorderColor  color.NRGBA
	BorderWidth  float64
	MarkerRadius float64

	Shapes      []Shape
	Draft       Shape
	StrokeColor color.NRGBA
	StrokeWidth float64
}

// PaintOp is a single drawing operation of a paint list.
type PaintOp interface {
	paintOp()
}

// DrawImage paints an image scaled to Dst.
type DrawImage struct {
	Image image.Image
	Dst   Rect
}

// DrawClippedImage paints an image scaled to Dst, visible only inside the
// closed path through Clip. Blend is an optional imop blend mode.
type DrawClippedImage struct {
	Image image.Image
	Dst   Rect
	Clip  []Point
	Blend string
}

// DrawPath strokes the path through Points.
type DrawPath struct {
	Points []Point
	Closed bool
	Color  color.NRGBA
	Width  float64
}

// DrawMarker fills a small disc, used for the polygon vertices.
type DrawMarker struct {
	Center Point
	Radius float64
	Color  color.NRGBA
}

// DrawShape paints a shape outline with Stroke, filled with Fill unless Fill is transparent.
type DrawShape struct {
	Shape  Shape
	Stroke color.NRGBA
	Fill   color.NRGBA
	Width  float64
}

func (DrawImage) paintOp()        {}
func (DrawClippedImage) paintOp() {}
func (DrawPath) paintOp()         {}
func (DrawMarker) paintOp()       {}
func (DrawShape) paintOp()        {}

// PaintList is the ordered list of drawing operations of one frame.
type PaintList []PaintOp

// Compose assembles the paint list of a scene. The result only depends
// on the scene, so composing the same scene twice gives equal lists.
//
// Paint order: primary image, polygon clipped secondary image,
// polygon border and markers, finalized shapes, draft shape.
func Compose(sc Scene) PaintList {
	var list PaintList

	if sc.Primary != nil {
		list = append(list, DrawImage{Image: sc.Primary, Dst: sc.PrimaryRect})
	}

	pts := sc.Polygon.Points()
	if sc.Secondary != nil && len(pts) > 1 {
		if bounds, ok := Bounds(sc.Polygon.Vertices); ok {
			list = append(list, DrawClippedImage{
				Image: sc.Secondary,
				Dst:   bounds,
				Clip:  pts,
				Blend: sc.SecondaryMode,
			})
		}
	}

	if sc.ShowBorder && len(pts) > 0 {
		list = append(list, DrawPath{
			Points: pts,
			Closed: true,
			Color:  sc.BorderColor,
			Width:  sc.BorderWidth,
		})
		for _, p := range pts {
			list = append(list, DrawMarker{Center: p, Radius: sc.MarkerRadius, Color: sc.BorderColor})
		}
	}

	// Finalized shapes use the stroke color at paint time, not at creation time.
	fill := sc.StrokeColor
	fill.A = uint8(uint16(fill.A) * finalizedFillAlpha / 0xff)

	for _, sh := range sc.Shapes {
		op := DrawShape{Shape: sh, Stroke: sc.StrokeColor, Width: sc.StrokeWidth}
		switch sh.Kind() {
		case KindRectangle, KindCircle:
			op.Fill = fill
		}
		list = append(list, op)
	}

	if sc.Draft != nil {
		list = append(list, DrawShape{Shape: sc.Draft, Stroke: sc.StrokeColor, Width: sc.StrokeWidth})
	}
	return list
}
