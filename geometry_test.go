package doodle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometry_Valid(t *testing.T) {
	assert.True(t, Pt(0, -3).Valid())
	assert.False(t, Pt(math.NaN(), 0).Valid())
	assert.False(t, Pt(0, math.Inf(-1)).Valid())
}

func TestGeometry_Bounds(t *testing.T) {
	r, ok := Bounds([]float64{30, 5, -10, 40, 20, 15})
	require.True(t, ok)
	assert.Equal(t, Rect{Min: Pt(-10, 5), Max: Pt(30, 40)}, r)
	assert.Equal(t, 40.0, r.Dx())
	assert.Equal(t, 35.0, r.Dy())
	assert.False(t, r.Empty())

	_, ok = Bounds([]float64{1})
	assert.False(t, ok)

	r, ok = Bounds([]float64{4, 4})
	require.True(t, ok)
	assert.True(t, r.Empty())
}

func TestGeometry_Points(t *testing.T) {
	assert.Equal(t, []Point{Pt(1, 2), Pt(3, 4)}, Points([]float64{1, 2, 3, 4, 5}))
	assert.Empty(t, Points(nil))
}

func TestGeometry_ArrowHead(t *testing.T) {
	l, r, ok := arrowHead(Pt(0, 0), Pt(20, 0), 10, 10)
	require.True(t, ok)
	assert.InDelta(t, 10, l.X, 1e-9)
	assert.InDelta(t, 5, l.Y, 1e-9)
	assert.InDelta(t, 10, r.X, 1e-9)
	assert.InDelta(t, -5, r.Y, 1e-9)

	_, _, ok = arrowHead(Pt(3, 3), Pt(3, 3), 10, 10)
	assert.False(t, ok)
}

func TestShape_StoreCopiesStrokes(t *testing.T) {
	var s Store
	pts := []float64{0, 0, 1, 1}

	s.Append(Stroke{Points: pts})
	pts[0] = 42
	assert.Equal(t, 0.0, s.Strokes.At(0).Points[0])

	shapes := s.Shapes()
	shapes[0].(Stroke).Points[1] = 42
	assert.Equal(t, 0.0, s.Strokes.At(0).Points[1])
}

func TestShape_LayerIteration(t *testing.T) {
	var l Layer[Circle]
	l.Append(Circle{Radius: 1})
	l.Append(Circle{Radius: 2})

	var radii []float64
	for c := range l.All() {
		radii = append(radii, c.Radius)
	}
	assert.Equal(t, []float64{1, 2}, radii)

	l.Clear()
	assert.Zero(t, l.Len())
}

func TestShape_KindString(t *testing.T) {
	assert.Equal(t, "rectangle", KindRectangle.String())
	assert.Equal(t, "stroke", KindStroke.String())
}
