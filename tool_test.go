package doodle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTool_ParseTool(t *testing.T) {
	testCases := []struct {
		name string
		want Tool
	}{
		{"", ToolNone},
		{"none", ToolNone},
		{"pan", ToolPan},
		{"Hand", ToolPan},
		{"rectangle", ToolRectangle},
		{"RECT", ToolRectangle},
		{"circle", ToolCircle},
		{"arrow", ToolArrow},
		{"pen", ToolPen},
		{"polygonEdit", ToolPolygon},
		{" polygon ", ToolPolygon},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tool, err := ParseTool(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, tool)
		})
	}

	_, err := ParseTool("eraser")
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestTool_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("polygon", ToolPolygon.String())
	assert.Equal("none", ToolNone.String())
	assert.Equal("Tool(42)", Tool(42).String())
}

func TestTool_InitialState(t *testing.T) {
	var ts ToolState

	assert.Equal(t, ToolNone, ts.Active())
	assert.False(t, ts.PanMode())
	assert.False(t, ts.Locked())
	assert.False(t, ts.ShowBorder())
}

func TestTool_PanAndDrawingAreMutuallyExclusive(t *testing.T) {
	assert := assert.New(t)
	var ts ToolState

	assert.True(ts.Select(ToolRectangle))
	assert.True(ts.TogglePan())
	assert.True(ts.PanMode())
	assert.Equal(ToolPan, ts.Active())

	assert.True(ts.Select(ToolCircle))
	assert.False(ts.PanMode())
	assert.Equal(ToolCircle, ts.Active())

	assert.True(ts.TogglePan())
	assert.True(ts.TogglePan())
	assert.False(ts.PanMode())
	assert.Equal(ToolNone, ts.Active())
}

func TestTool_SelectIsRefusedWhileLocked(t *testing.T) {
	assert := assert.New(t)
	var ts ToolState

	ts.Select(ToolArrow)
	ts.lock()

	assert.False(ts.Select(ToolCircle))
	assert.False(ts.TogglePan())
	assert.Equal(ToolArrow, ts.Active())

	ts.release()
	assert.False(ts.Locked())
	assert.Equal(ToolNone, ts.Active())
	assert.True(ts.Select(ToolCircle))
}

func TestTool_PenStaysSelectedAfterRelease(t *testing.T) {
	var ts ToolState

	ts.Select(ToolPen)
	ts.lock()
	ts.release()

	assert.Equal(t, ToolPen, ts.Active())
}

func TestTool_UnknownToolIsRefused(t *testing.T) {
	var ts ToolState

	ts.Select(ToolPen)
	assert.False(t, ts.Select(Tool(99)))
	assert.Equal(t, ToolPen, ts.Active())
}

func TestTool_ShowBorderIsStickyUntilReset(t *testing.T) {
	assert := assert.New(t)
	var ts ToolState

	ts.Select(ToolPolygon)
	assert.True(ts.ShowBorder())

	ts.Select(ToolRectangle)
	assert.True(ts.ShowBorder())

	ts.Reset()
	assert.False(ts.ShowBorder())
	assert.Equal(ToolNone, ts.Active())
}
