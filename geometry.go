package doodle

import (
	"math"

	"github.com/esimov/doodle/utils"
)

// Point is a position in canvas-local coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Valid reports whether both coordinates are finite numbers.
// Collaborators mapping device positions to the canvas report a
// missing position with NaN coordinates.
func (p Point) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) &&
		!math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Rect is an axis-aligned rectangle with Min as its top-left corner.
type Rect struct {
	Min, Max Point
}

// Dx returns the rectangle width.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the rectangle height.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Dx() <= 0 || r.Dy() <= 0
}

// Bounds returns the bounding box of a flat coordinate list [x1, y1, x2, y2, ...].
// The horizontal extent is taken over the even indices and the vertical
// extent over the odd ones. It returns false for a list without a full point.
func Bounds(coords []float64) (Rect, bool) {
	if len(coords) < 2 {
		return Rect{}, false
	}
	xs := make([]float64, 0, len(coords)/2)
	ys := make([]float64, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		xs = append(xs, coords[i])
		ys = append(ys, coords[i+1])
	}
	minX, maxX := utils.MinMax(xs...)
	minY, maxY := utils.MinMax(ys...)

	return Rect{Min: Pt(minX, minY), Max: Pt(maxX, maxY)}, true
}

// Points converts a flat coordinate list to points. A trailing odd coordinate is dropped.
func Points(coords []float64) []Point {
	pts := make([]Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, Pt(coords[i], coords[i+1]))
	}
	return pts
}

// RectangleBetween derives a rectangle from the drag start and the current position.
// Width and height are signed deltas: the start corner stays fixed.
func RectangleBetween(start, end Point) Rectangle {
	return Rectangle{
		X:      start.X,
		Y:      start.Y,
		Width:  end.X - start.X,
		Height: end.Y - start.Y,
	}
}

// CircleAround derives a circle centered on the drag start passing through edge.
func CircleAround(center, edge Point) Circle {
	return Circle{
		X:      center.X,
		Y:      center.Y,
		Radius: Distance(center, edge),
	}
}

// ArrowBetween derives an arrow pointing from start to end.
func ArrowBetween(start, end Point) Arrow {
	return Arrow{Points: [4]float64{start.X, start.Y, end.X, end.Y}}
}

// arrowHead returns the two barb points of an arrow head placed at tip,
// for an arrow coming from tail.
func arrowHead(tail, tip Point, length, width float64) (Point, Point, bool) {
	d := Distance(tail, tip)
	if d == 0 {
		return Point{}, Point{}, false
	}
	ux, uy := (tip.X-tail.X)/d, (tip.Y-tail.Y)/d
	bx, by := tip.X-ux*length, tip.Y-uy*length
	nx, ny := -uy*width/2, ux*width/2

	return Pt(bx+nx, by+ny), Pt(bx-nx, by-ny), true
}
