package doodle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(tool Tool) (*Pipeline, *ToolState, *Store) {
	ts := &ToolState{}
	store := &Store{}
	ts.Select(tool)

	return NewPipeline(ts, store), ts, store
}

func TestPipeline_RectangleDrag(t *testing.T) {
	p, ts, store := newTestPipeline(ToolRectangle)

	require.True(t, p.Down(Pt(10, 10)))
	assert.True(t, ts.Locked())
	p.Move(Pt(30, 40))
	p.Move(Pt(50, 80))

	sh, ok := p.Up()
	require.True(t, ok)
	assert.Equal(t, Rectangle{X: 10, Y: 10, Width: 40, Height: 70}, sh)
	require.Equal(t, 1, store.Rectangles.Len())
	assert.Equal(t, Rectangle{X: 10, Y: 10, Width: 40, Height: 70}, store.Rectangles.At(0))
	assert.Equal(t, ToolNone, ts.Active())
	assert.False(t, ts.Locked())
}

func TestPipeline_RectangleKeepsSignedSize(t *testing.T) {
	p, _, store := newTestPipeline(ToolRectangle)

	p.Down(Pt(100, 100))
	p.Move(Pt(60, 20))
	p.Up()

	assert.Equal(t, Rectangle{X: 100, Y: 100, Width: -40, Height: -80}, store.Rectangles.At(0))
}

func TestPipeline_CircleRadius(t *testing.T) {
	p, _, store := newTestPipeline(ToolCircle)

	p.Down(Pt(0, 0))
	p.Move(Pt(3, 4))
	p.Up()

	require.Equal(t, 1, store.Circles.Len())
	assert.Equal(t, Circle{X: 0, Y: 0, Radius: 5}, store.Circles.At(0))
}

func TestPipeline_ArrowKeepsStart(t *testing.T) {
	p, _, store := newTestPipeline(ToolArrow)

	p.Down(Pt(1, 2))
	p.Move(Pt(5, 5))
	p.Move(Pt(7, 9))
	p.Up()

	arrow := store.Arrows.At(0)
	assert.Equal(t, [4]float64{1, 2, 7, 9}, arrow.Points)
	assert.Equal(t, Pt(1, 2), arrow.Start())
	assert.Equal(t, Pt(7, 9), arrow.End())
}

func TestPipeline_PenStrokeGrowsMonotonically(t *testing.T) {
	p, ts, store := newTestPipeline(ToolPen)

	p.Down(Pt(0, 0))
	prev := 0
	for _, pos := range []Point{Pt(1, 1), Pt(2, 2)} {
		p.Move(pos)
		draft, ok := p.Draft()
		require.True(t, ok)
		n := len(draft.(Stroke).Points)
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}
	p.Up()

	require.Equal(t, 1, store.Strokes.Len())
	assert.Equal(t, []float64{0, 0, 1, 1, 2, 2}, store.Strokes.At(0).Points)
	assert.Equal(t, ToolPen, ts.Active())

	// The pen stays selected for the next stroke.
	assert.True(t, p.Down(Pt(5, 5)))
}

func TestPipeline_ZeroSizedShapesAreKept(t *testing.T) {
	p, ts, store := newTestPipeline(ToolRectangle)

	p.Down(Pt(20, 20))
	p.Up()
	assert.Equal(t, Rectangle{X: 20, Y: 20}, store.Rectangles.At(0))

	ts.Select(ToolCircle)
	p.Down(Pt(20, 20))
	p.Up()
	assert.Equal(t, Circle{X: 20, Y: 20}, store.Circles.At(0))
}

func TestPipeline_NoDraftInPanMode(t *testing.T) {
	p, ts, store := newTestPipeline(ToolRectangle)

	ts.TogglePan()
	assert.False(t, p.Down(Pt(1, 1)))
	_, ok := p.Draft()
	assert.False(t, ok)

	_, ok = p.Up()
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestPipeline_NoDraftWithoutDrawingTool(t *testing.T) {
	for _, tool := range []Tool{ToolNone, ToolPolygon} {
		p, _, _ := newTestPipeline(tool)
		assert.False(t, p.Down(Pt(1, 1)), tool.String())
	}
}

func TestPipeline_DuplicateDownKeepsDraft(t *testing.T) {
	p, _, _ := newTestPipeline(ToolRectangle)

	p.Down(Pt(10, 10))
	p.Move(Pt(20, 20))
	assert.False(t, p.Down(Pt(90, 90)))

	draft, ok := p.Draft()
	require.True(t, ok)
	assert.Equal(t, Rectangle{X: 10, Y: 10, Width: 10, Height: 10}, draft)
}

func TestPipeline_InvalidPositionsAreIgnored(t *testing.T) {
	p, _, _ := newTestPipeline(ToolPen)

	assert.False(t, p.Down(Pt(math.NaN(), 1)))
	p.Down(Pt(0, 0))
	assert.False(t, p.Move(Pt(math.Inf(1), 0)))
	assert.False(t, p.Move(Pt(math.NaN(), math.NaN())))

	draft, _ := p.Draft()
	assert.Equal(t, []float64{0, 0}, draft.(Stroke).Points)
}

func TestPipeline_MoveWithoutDraftIsNoop(t *testing.T) {
	p, _, _ := newTestPipeline(ToolRectangle)
	assert.False(t, p.Move(Pt(3, 3)))
}

func TestPipeline_DraftIsACopy(t *testing.T) {
	p, _, _ := newTestPipeline(ToolPen)

	p.Down(Pt(0, 0))
	draft, _ := p.Draft()
	draft.(Stroke).Points[0] = 99

	again, _ := p.Draft()
	assert.Equal(t, 0.0, again.(Stroke).Points[0])
}

func TestPipeline_ToolChangeDuringDragIsRefused(t *testing.T) {
	p, ts, store := newTestPipeline(ToolRectangle)

	p.Down(Pt(0, 0))
	assert.False(t, ts.Select(ToolCircle))
	p.Move(Pt(4, 4))
	p.Up()

	assert.Equal(t, 1, store.Rectangles.Len())
	assert.Zero(t, store.Circles.Len())
}
