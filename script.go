package doodle

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Script is a recorded drawing session replayed by the headless runner.
//
//	primary: photo.jpg
//	secondary: texture.png
//	color: "#e53935"
//	events:
//	  - {op: tool, tool: rectangle}
//	  - {op: down, x: 10, y: 10}
//	  - {op: move, x: 50, y: 80}
//	  - {op: up}
type Script struct {
	Primary   string  `yaml:"primary,omitempty"`
	Secondary string  `yaml:"secondary,omitempty"`
	Color     string  `yaml:"color,omitempty"`
	Events    []Event `yaml:"events"`
}

// Event is a single engine command of a script. X and Y are nil when the
// event carries no pointer position.
type Event struct {
	Op    string   `yaml:"op"`
	X     *float64 `yaml:"x,omitempty"`
	Y     *float64 `yaml:"y,omitempty"`
	Tool  string   `yaml:"tool,omitempty"`
	Color string   `yaml:"color,omitempty"`
}

// Script operations.
const (
	OpTool  = "tool"
	OpPan   = "pan"
	OpColor = "color"
	OpDown  = "down"
	OpMove  = "move"
	OpUp    = "up"
	OpClick = "click"
	OpReset = "reset"
)

// ParseScript decodes a YAML event script. Unknown fields are rejected.
func ParseScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, ev := range s.Events {
		if err := ev.validate(); err != nil {
			return nil, fmt.Errorf("parse script: event %d: %w", i, err)
		}
	}
	return &s, nil
}

// LoadScript reads the event script at path.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	return ParseScript(f)
}

func (ev Event) validate() error {
	switch ev.Op {
	case OpTool:
		_, err := ParseTool(ev.Tool)
		return err
	case OpPan, OpDown, OpMove, OpUp, OpClick, OpReset:
		return nil
	case OpColor:
		if ev.Color == "" {
			return fmt.Errorf("%w: empty color", ErrInvalidColor)
		}
		return nil
	}
	return fmt.Errorf("unknown operation %q", ev.Op)
}

// Replay applies the script events to e in order. Refused commands are not
// errors; they leave the engine untouched exactly like in an interactive session.
// The context is checked between events.
func (s *Script) Replay(ctx context.Context, e *Engine) error {
	if s.Color != "" {
		if err := e.SetColorHex(s.Color); err != nil {
			return err
		}
	}
	for i, ev := range s.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := ev.apply(e); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, ev.Op, err)
		}
	}
	return nil
}

// pos returns the pointer position of the event. A missing coordinate is
// NaN, which the engine ignores like any other invalid position.
func (ev Event) pos() (float64, float64) {
	coord := func(v *float64) float64 {
		if v == nil {
			return math.NaN()
		}
		return *v
	}
	return coord(ev.X), coord(ev.Y)
}

func (ev Event) apply(e *Engine) error {
	switch ev.Op {
	case OpTool:
		t, err := ParseTool(ev.Tool)
		if err != nil {
			return err
		}
		e.SelectTool(t)
	case OpPan:
		e.TogglePan()
	case OpColor:
		return e.SetColorHex(ev.Color)
	case OpDown:
		e.PointerDown(ev.pos())
	case OpMove:
		e.PointerMove(ev.pos())
	case OpUp:
		e.PointerUp()
	case OpClick:
		e.Click(ev.pos())
	case OpReset:
		e.Reset()
	default:
		return fmt.Errorf("unknown operation %q", ev.Op)
	}
	return nil
}
