package doodle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTool is returned when a tool name can't be resolved.
var ErrUnknownTool = errors.New("unknown tool")

// Tool is the interaction mode of the canvas. Exactly one tool is active at
// any time. Panning is one of the variants, so activating a drawing tool
// clears the pan mode and enabling the pan mode clears the drawing tool.
type Tool int

const (
	ToolNone Tool = iota
	ToolPan
	ToolRectangle
	ToolCircle
	ToolArrow
	ToolPen
	ToolPolygon
)

var toolNames = map[Tool]string{
	ToolNone:      "none",
	ToolPan:       "pan",
	ToolRectangle: "rectangle",
	ToolCircle:    "circle",
	ToolArrow:     "arrow",
	ToolPen:       "pen",
	ToolPolygon:   "polygon",
}

// String returns the tool name.
func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Drawing reports whether the tool produces a draft shape on pointer drag.
func (t Tool) Drawing() bool {
	switch t {
	case ToolRectangle, ToolCircle, ToolArrow, ToolPen:
		return true
	}
	return false
}

// ParseTool resolves a tool by name. Matching is case insensitive and
// accepts a few common aliases (rect, polygonEdit, drag...).
func ParseTool(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return ToolNone, nil
	case "pan", "drag", "hand":
		return ToolPan, nil
	case "rectangle", "rect":
		return ToolRectangle, nil
	case "circle":
		return ToolCircle, nil
	case "arrow":
		return ToolArrow, nil
	case "pen", "pencil", "freehand":
		return ToolPen, nil
	case "polygon", "polygonedit", "polygon_edit", "poly":
		return ToolPolygon, nil
	}
	return ToolNone, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// ToolState is the tool controller. It is the only place where the active
// tool changes; the pointer pipeline locks it for the duration of a drag.
type ToolState struct {
	active     Tool
	locked     bool
	showBorder bool
}

// Active returns the active tool.
func (ts *ToolState) Active() Tool {
	return ts.active
}

// PanMode reports whether the pan mode is on.
func (ts *ToolState) PanMode() bool {
	return ts.active == ToolPan
}

// Locked reports whether a drag is in progress.
func (ts *ToolState) Locked() bool {
	return ts.locked
}

// ShowBorder reports whether the polygon tool was selected at least once since the last reset.
func (ts *ToolState) ShowBorder() bool {
	return ts.showBorder
}

// Select activates t. It is refused while a drag is in progress.
func (ts *ToolState) Select(t Tool) bool {
	if ts.locked {
		return false
	}
	if _, ok := toolNames[t]; !ok {
		return false
	}
	ts.active = t
	if t == ToolPolygon {
		ts.showBorder = true
	}
	return true
}

// TogglePan flips the pan mode. Enabling it clears the drawing tool,
// disabling it leaves no tool selected. It is refused while a drag is in progress.
func (ts *ToolState) TogglePan() bool {
	if ts.PanMode() {
		return ts.Select(ToolNone)
	}
	return ts.Select(ToolPan)
}

// Reset restores the initial state.
func (ts *ToolState) Reset() {
	*ts = ToolState{}
}

func (ts *ToolState) lock() {
	ts.locked = true
}

// release ends a drag. The rectangle, circle and arrow tools fall back to
// no tool once their shape is finalized; the pen stays selected for the next stroke.
func (ts *ToolState) release() {
	ts.locked = false
	if ts.active != ToolPen {
		ts.active = ToolNone
	}
}
