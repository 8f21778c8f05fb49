package world

import (
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
)

// Env is what a force law sees of the world during a tick.
type Env struct {
	Canvas geom.Size
	Dt     float64
	Tick   uint64
	IDs    *object.IDGen
}

// Layout is a scenario's reaction to a canvas size.
type Layout struct {
	// Offset is the render origin; object positions are relative to it.
	Offset geom.Vec
	// Regenerate rebuilds the collection (and the reset snapshot) from
	// InitialObjects for the new size.
	Regenerate bool
}

// Scenario is a force law plus its interaction rules. Points handed to the
// pointer callbacks are already relative to the layout offset.
type Scenario[O object.Object] interface {
	Name() string
	InitialObjects(ids *object.IDGen, canvas geom.Size) []O
	Layout(canvas geom.Size) Layout

	// StepForces mutates forces (and occasionally positions or velocities)
	// and returns the collection, possibly with objects appended.
	StepForces(objects []O, env Env) []O

	MakeObjectOnTap(ids *object.IDGen, point geom.Vec) (O, bool)
	OnDragObject(obj O, point geom.Vec, objects []O)
	OnDragEmptyArea(ids *object.IDGen, objects []O, point geom.Vec) []O
	OnDragEndEmptyArea(objects []O) []O
}

// Interactions supplies the common interaction defaults: taps do nothing,
// dragged objects snap to the pointer and stop, empty-area drags are ignored
// and the layout has no offset. Scenarios embed it and override what they need.
type Interactions[O object.Object] struct{}

func (Interactions[O]) Layout(geom.Size) Layout { return Layout{} }

func (Interactions[O]) MakeObjectOnTap(*object.IDGen, geom.Vec) (O, bool) {
	var zero O
	return zero, false
}

func (Interactions[O]) OnDragObject(obj O, point geom.Vec, _ []O) {
	obj.SetPosition(point)
	obj.SetVelocity(geom.Vec{})
}

func (Interactions[O]) OnDragEmptyArea(_ *object.IDGen, objects []O, _ geom.Vec) []O {
	return objects
}

func (Interactions[O]) OnDragEndEmptyArea(objects []O) []O {
	return objects
}
