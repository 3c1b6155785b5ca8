package doodle

import "slices"

// CloseThreshold is the distance from the first vertex under which a click
// closes the polygon instead of adding a new vertex.
const CloseThreshold = 10.0

// Polygon is the clip region of the secondary image. It is a polyline until
// Closed is set; no closing segment is ever added to the vertex list.
type Polygon struct {
	Vertices []float64
	Closed   bool
}

// Len returns the number of vertices.
func (pg Polygon) Len() int {
	return len(pg.Vertices) / 2
}

// Points returns the vertices as points.
func (pg Polygon) Points() []Point {
	return Points(pg.Vertices)
}

func (pg Polygon) clone() Polygon {
	return Polygon{Vertices: slices.Clone(pg.Vertices), Closed: pg.Closed}
}

// PolygonBuilder accumulates clicks into the polygon while the polygon tool
// is active and the polygon is still open.
type PolygonBuilder struct {
	tools *ToolState
	poly  Polygon
}

// NewPolygonBuilder creates a builder gated by tools.
func NewPolygonBuilder(tools *ToolState) *PolygonBuilder {
	return &PolygonBuilder{tools: tools}
}

// Click appends pos as a new vertex, or closes the polygon when it has at
// least two vertices and pos lands near the first one. It reports whether
// the polygon changed.
func (b *PolygonBuilder) Click(pos Point) bool {
	if b.poly.Closed || b.tools.Active() != ToolPolygon || !pos.Valid() {
		return false
	}

	v := b.poly.Vertices
	if len(v) >= 4 && Distance(pos, Pt(v[0], v[1])) < CloseThreshold {
		b.poly.Closed = true
		return true
	}
	b.poly.Vertices = append(b.poly.Vertices, pos.X, pos.Y)

	return true
}

// Polygon returns a copy of the current polygon.
func (b *PolygonBuilder) Polygon() Polygon {
	return b.poly.clone()
}

// Reset empties and reopens the polygon.
func (b *PolygonBuilder) Reset() {
	b.poly = Polygon{}
}
