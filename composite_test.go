package doodle

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_EmptyScene(t *testing.T) {
	assert.Empty(t, Compose(NewEngine(nil).Scene()))
}

func TestCompose_IsIdempotent(t *testing.T) {
	e := NewEngine(nil)
	e.SetImage(Primary, image.NewNRGBA(image.Rect(0, 0, 4, 4)))
	e.SetImage(Secondary, image.NewNRGBA(image.Rect(0, 0, 4, 4)))

	drag(e, ToolRectangle, Pt(10, 10), Pt(50, 80))
	drag(e, ToolPen, Pt(0, 0), Pt(1, 1), Pt(2, 2))
	e.SelectTool(ToolPolygon)
	e.Click(0, 0)
	e.Click(100, 0)
	e.Click(50, 80)

	sc := e.Scene()
	assert.Equal(t, Compose(sc), Compose(sc))
	assert.Equal(t, e.PaintList(), e.PaintList())
}

func TestCompose_PaintOrder(t *testing.T) {
	primary := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	secondary := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	stroke := color.NRGBA{R: 0xff, A: 0xff}
	border := color.NRGBA{B: 0xff, A: 0xff}

	sc := Scene{
		Primary:      primary,
		PrimaryRect:  Rect{Min: Pt(50, 50), Max: Pt(550, 550)},
		Secondary:    secondary,
		Polygon:      Polygon{Vertices: []float64{10, 20, 60, 5, 30, 90}},
		ShowBorder:   true,
		BorderColor:  border,
		BorderWidth:  2,
		MarkerRadius: 4,
		Shapes: []Shape{
			Rectangle{X: 1, Y: 1, Width: 5, Height: 5},
			Circle{X: 3, Y: 3, Radius: 2},
			Arrow{Points: [4]float64{0, 0, 9, 9}},
			Stroke{Points: []float64{0, 0, 1, 1}},
		},
		Draft:       Circle{X: 7, Y: 7, Radius: 1},
		StrokeColor: stroke,
		StrokeWidth: 2,
	}

	list := Compose(sc)
	require.Len(t, list, 1+1+1+3+4+1)

	assert.Equal(t, DrawImage{Image: primary, Dst: sc.PrimaryRect}, list[0])

	clipped, ok := list[1].(DrawClippedImage)
	require.True(t, ok)
	assert.Equal(t, Rect{Min: Pt(10, 5), Max: Pt(60, 90)}, clipped.Dst)
	assert.Equal(t, []Point{Pt(10, 20), Pt(60, 5), Pt(30, 90)}, clipped.Clip)

	path, ok := list[2].(DrawPath)
	require.True(t, ok)
	assert.True(t, path.Closed)
	assert.Equal(t, border, path.Color)

	for i, p := range sc.Polygon.Points() {
		assert.Equal(t, DrawMarker{Center: p, Radius: 4, Color: border}, list[3+i])
	}

	fill := color.NRGBA{R: 0xff, A: finalizedFillAlpha}
	assert.Equal(t, DrawShape{Shape: sc.Shapes[0], Stroke: stroke, Fill: fill, Width: 2}, list[6])
	assert.Equal(t, DrawShape{Shape: sc.Shapes[1], Stroke: stroke, Fill: fill, Width: 2}, list[7])
	assert.Equal(t, DrawShape{Shape: sc.Shapes[2], Stroke: stroke, Width: 2}, list[8])
	assert.Equal(t, DrawShape{Shape: sc.Shapes[3], Stroke: stroke, Width: 2}, list[9])

	// The draft shape is the topmost one and is never filled.
	assert.Equal(t, DrawShape{Shape: sc.Draft, Stroke: stroke, Width: 2}, list[10])
}

func TestCompose_ClipNeedsTwoVertices(t *testing.T) {
	sc := Scene{
		Secondary: image.NewNRGBA(image.Rect(0, 0, 4, 4)),
		Polygon:   Polygon{Vertices: []float64{10, 10}},
	}
	assert.Empty(t, Compose(sc))

	sc.Polygon.Vertices = append(sc.Polygon.Vertices, 40, 30)
	list := Compose(sc)
	require.Len(t, list, 1)
	assert.IsType(t, DrawClippedImage{}, list[0])
}

func TestCompose_ClipIgnoresClosedFlag(t *testing.T) {
	sc := Scene{
		Secondary: image.NewNRGBA(image.Rect(0, 0, 4, 4)),
		Polygon:   Polygon{Vertices: []float64{0, 0, 10, 0, 10, 10}},
	}
	open := Compose(sc)
	sc.Polygon.Closed = true

	assert.Equal(t, open, Compose(sc))
}

func TestCompose_BorderOnlyWhenShown(t *testing.T) {
	sc := Scene{Polygon: Polygon{Vertices: []float64{0, 0, 10, 0}}}
	assert.Empty(t, Compose(sc))

	sc.ShowBorder = true
	assert.Len(t, Compose(sc), 3)
}

func TestCompose_UsesCurrentStrokeColor(t *testing.T) {
	e := NewEngine(nil)
	drag(e, ToolArrow, Pt(0, 0), Pt(10, 10))

	red := color.NRGBA{R: 0xff, A: 0xff}
	e.SetColor(red)

	list := e.PaintList()
	require.Len(t, list, 1)
	assert.Equal(t, red, list[0].(DrawShape).Stroke)
}
