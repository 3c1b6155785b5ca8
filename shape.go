package doodle

import (
	"iter"
	"slices"
)

// Kind identifies the shape variant. The kind order is also the paint order
// of the finalized shapes.
type Kind int

const (
	KindRectangle Kind = iota
	KindCircle
	KindArrow
	KindStroke
)

func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "rectangle"
	case KindCircle:
		return "circle"
	case KindArrow:
		return "arrow"
	case KindStroke:
		return "stroke"
	}
	return "unknown"
}

// Shape is one of Rectangle, Circle, Arrow or Stroke. The variants carry
// only the geometry needed to redraw them; the style is shared by the session.
type Shape interface {
	Kind() Kind
	clone() Shape
}

// Rectangle is anchored at the corner where the drag began.
// Width and Height are signed: a drag toward the origin yields negative values.
type Rectangle struct {
	X, Y          float64
	Width, Height float64
}

// Circle is centered on the drag start.
type Circle struct {
	X, Y   float64
	Radius float64
}

// Arrow holds the fixed start and the moving end as [x1, y1, x2, y2].
type Arrow struct {
	Points [4]float64
}

// Stroke is a freehand polyline as [x1, y1, x2, y2, ...].
type Stroke struct {
	Points []float64
}

func (Rectangle) Kind() Kind { return KindRectangle }
func (Circle) Kind() Kind    { return KindCircle }
func (Arrow) Kind() Kind     { return KindArrow }
func (Stroke) Kind() Kind    { return KindStroke }

func (r Rectangle) clone() Shape { return r }
func (c Circle) clone() Shape    { return c }
func (a Arrow) clone() Shape     { return a }
func (s Stroke) clone() Shape    { return Stroke{Points: slices.Clone(s.Points)} }

// Start returns the fixed end of the arrow.
func (a Arrow) Start() Point { return Pt(a.Points[0], a.Points[1]) }

// End returns the end of the arrow carrying the head.
func (a Arrow) End() Point { return Pt(a.Points[2], a.Points[3]) }

// Layer is an append-only, insertion ordered sequence of one shape variant.
type Layer[S Shape] struct {
	items []S
}

// Append adds s on top of the layer.
func (l *Layer[S]) Append(s S) {
	l.items = append(l.items, s)
}

// Len returns the number of shapes in the layer.
func (l *Layer[S]) Len() int {
	return len(l.items)
}

// At returns the i-th shape of the layer.
func (l *Layer[S]) At(i int) S {
	return l.items[i]
}

// All iterates over the layer in insertion order.
func (l *Layer[S]) All() iter.Seq[S] {
	return slices.Values(l.items)
}

// Clear empties the layer.
func (l *Layer[S]) Clear() {
	l.items = nil
}

// Store holds the finalized shapes, one layer per variant.
// Shapes are never modified or reordered once stored.
type Store struct {
	Rectangles Layer[Rectangle]
	Circles    Layer[Circle]
	Arrows     Layer[Arrow]
	Strokes    Layer[Stroke]
}

// Append stores s in the layer of its variant. Stroke points are copied,
// so the caller may keep using its slice.
func (s *Store) Append(sh Shape) {
	switch v := sh.clone().(type) {
	case Rectangle:
		s.Rectangles.Append(v)
	case Circle:
		s.Circles.Append(v)
	case Arrow:
		s.Arrows.Append(v)
	case Stroke:
		s.Strokes.Append(v)
	}
}

// Len returns the number of stored shapes over all the layers.
func (s *Store) Len() int {
	return s.Rectangles.Len() + s.Circles.Len() + s.Arrows.Len() + s.Strokes.Len()
}

// Shapes returns copies of the stored shapes in paint order: rectangles,
// circles, arrows, then strokes, each layer in insertion order.
func (s *Store) Shapes() []Shape {
	shapes := make([]Shape, 0, s.Len())
	shapes = appendLayer(shapes, &s.Rectangles)
	shapes = appendLayer(shapes, &s.Circles)
	shapes = appendLayer(shapes, &s.Arrows)
	shapes = appendLayer(shapes, &s.Strokes)
	return shapes
}

func appendLayer[S Shape](dst []Shape, l *Layer[S]) []Shape {
	for sh := range l.All() {
		dst = append(dst, sh.clone())
	}
	return dst
}

// Clear empties every layer.
func (s *Store) Clear() {
	s.Rectangles.Clear()
	s.Circles.Clear()
	s.Arrows.Clear()
	s.Strokes.Clear()
}
