package doodle

// Pipeline turns pointer events into shape geometry. It keeps at most one
// draft shape alive between a pointer down and the matching pointer up
// and hands it to the store on release.
type Pipeline struct {
	tools *ToolState
	store *Store
	draft Shape
}

// NewPipeline creates a pipeline gated by tools and feeding store.
func NewPipeline(tools *ToolState, store *Store) *Pipeline {
	return &Pipeline{tools: tools, store: store}
}

// Down starts a draft shape whose variant is given by the active tool.
// It's a no-op in pan mode, without a drawing tool, for an invalid position
// or when a draft is already alive.
func (p *Pipeline) Down(pos Point) bool {
	if p.draft != nil || !pos.Valid() {
		return false
	}

	switch p.tools.Active() {
	case ToolRectangle:
		p.draft = RectangleBetween(pos, pos)
	case ToolCircle:
		p.draft = CircleAround(pos, pos)
	case ToolArrow:
		p.draft = ArrowBetween(pos, pos)
	case ToolPen:
		p.draft = Stroke{Points: []float64{pos.X, pos.Y}}
	default:
		return false
	}
	p.tools.lock()

	return true
}

// Move updates the draft shape in place.
func (p *Pipeline) Move(pos Point) bool {
	if p.draft == nil || !pos.Valid() {
		return false
	}

	switch d := p.draft.(type) {
	case Rectangle:
		p.draft = RectangleBetween(Pt(d.X, d.Y), pos)
	case Circle:
		p.draft = CircleAround(Pt(d.X, d.Y), pos)
	case Arrow:
		p.draft = ArrowBetween(d.Start(), pos)
	case Stroke:
		// No decimation: every reported position becomes a vertex.
		d.Points = append(d.Points, pos.X, pos.Y)
		p.draft = d
	}
	return true
}

// Up finalizes the draft shape, stores it verbatim (zero sized shapes included)
// and returns it. It returns false when there was no draft to finalize.
func (p *Pipeline) Up() (Shape, bool) {
	if p.draft == nil {
		return nil, false
	}
	sh := p.draft
	p.draft = nil

	p.store.Append(sh)
	p.tools.release()

	return sh, true
}

// Draft returns a copy of the shape under construction, if any.
func (p *Pipeline) Draft() (Shape, bool) {
	if p.draft == nil {
		return nil, false
	}
	return p.draft.clone(), true
}

// Reset drops the draft shape without storing it.
func (p *Pipeline) Reset() {
	p.draft = nil
}
