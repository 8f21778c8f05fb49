package object

import "github.com/san-kum/worldsim/internal/geom"

// Line is a segment obstacle. Its position is the start point; End moves with
// it. While Finalized is false the end point still tracks the pointer.
type Line struct {
	Body
	End       geom.Vec
	Width     float64
	Finalized bool
}

// NewLine returns an immovable segment.
func NewLine(id ID, start, end geom.Vec, width float64) *Line {
	return &Line{Body: NewBody(id, Infinite, start, geom.Vec{}), End: end, Width: width}
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) Start() geom.Vec { return l.position }

// SetPosition translates the whole segment.
func (l *Line) SetPosition(p geom.Vec) {
	delta := geom.Sub(p, l.position)
	l.position = p
	l.End = geom.Add(l.End, delta)
}

func (l *Line) TouchableRegion() geom.Rect {
	r := geom.Inflate(geom.RectFromPoints(l.position, l.End), l.Width/2, l.Width/2)
	return geom.EnsureMinSize(r, MinTouchSize, MinTouchSize)
}

func (l *Line) Clone() Object {
	cp := *l
	return &cp
}

func (l *Line) State() State {
	s := l.state(KindLine)
	s.End = l.End
	s.Width = l.Width
	s.Finalized = l.Finalized
	return s
}
