package world

import (
	"math"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
)

// Snapshot is a read-only copy of a world for rendering or recording.
type Snapshot struct {
	Scenario   string
	Tick       uint64
	Objects    []object.State
	CanvasSize geom.Size
	Offset     geom.Vec
	Drag       DragState

	ShowsVelocityArrows bool
	ShowsForceArrows    bool
	VelocityArrowScale  float64
	ForceArrowScale     float64
}

type ArrowKind int

const (
	ArrowVelocity ArrowKind = iota
	ArrowForce
)

// Arrow is a debug vector anchored at an object, in canvas coordinates.
type Arrow struct {
	ObjectID object.ID
	Kind     ArrowKind
	From, To geom.Vec
}

// Arrows returns the enabled velocity and force arrows, scaled by the
// configured factors. Static objects have none.
func (s Snapshot) Arrows() []Arrow {
	if !s.ShowsVelocityArrows && !s.ShowsForceArrows {
		return nil
	}
	var out []Arrow
	for _, o := range s.Objects {
		if o.Kind == object.KindLine || math.IsInf(o.Mass, 1) {
			continue
		}
		from := geom.Add(s.Offset, o.Position)
		if s.ShowsVelocityArrows {
			out = append(out, Arrow{
				ObjectID: o.ID,
				Kind:     ArrowVelocity,
				From:     from,
				To:       geom.Add(from, geom.Scale(s.VelocityArrowScale, o.Velocity)),
			})
		}
		if s.ShowsForceArrows {
			out = append(out, Arrow{
				ObjectID: o.ID,
				Kind:     ArrowForce,
				From:     from,
				To:       geom.Add(from, geom.Scale(s.ForceArrowScale, o.Force)),
			})
		}
	}
	return out
}

// Engine is the type-erased boundary a UI shell or runner drives.
type Engine interface {
	Name() string
	Tick(dt float64)
	Tap(point geom.Vec)
	DragMove(point geom.Vec)
	DragEnd()
	Resize(size geom.Size)
	ResetCanvas()
	SetDeltaTime(dt float64) error
	DeltaTime() float64
	SetArrows(velocity, force bool)
	Params() map[string]float64
	SetParam(name string, value float64) error
	Config() dynamo.Config
	TickCount() uint64
	Len() int
	View() []object.Object
	Snapshot() Snapshot
	AddObserver(obs dynamo.Observer)
}

var _ Engine = (*World[object.Object])(nil)
