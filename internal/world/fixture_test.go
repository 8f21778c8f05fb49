package world_test

import (
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/world"
)

// probe is a scenario that records what the world hands it.
type probe struct {
	world.Interactions[object.Object]

	initial      []geom.Vec
	gravity      float64
	spawnPerTick int
	offset       geom.Vec
	regenerate   bool

	forcesAtEntry []geom.Vec
	steps         int
	emptyDrags    int
	emptyEnds     int
}

func (p *probe) Name() string { return "probe" }

func (p *probe) InitialObjects(ids *object.IDGen, canvas geom.Size) []object.Object {
	objs := make([]object.Object, 0, len(p.initial))
	for _, pos := range p.initial {
		objs = append(objs, object.NewCircle(ids.Next(), 1, 5, pos, geom.Vec{}))
	}
	if p.regenerate && !canvas.IsZero() {
		objs = append(objs, object.NewStaticCircle(ids.Next(), 5, geom.V(canvas.Width/2, canvas.Height/2)))
	}
	return objs
}

func (p *probe) Layout(canvas geom.Size) world.Layout {
	return world.Layout{Offset: p.offset, Regenerate: p.regenerate}
}

func (p *probe) StepForces(objects []object.Object, env world.Env) []object.Object {
	p.steps++
	p.forcesAtEntry = p.forcesAtEntry[:0]
	for _, o := range objects {
		p.forcesAtEntry = append(p.forcesAtEntry, o.Force())
		o.AddForce(geom.V(0, o.Mass()*p.gravity))
	}
	for i := 0; i < p.spawnPerTick; i++ {
		objects = append(objects, object.NewCircle(env.IDs.Next(), 1, 5, geom.V(10, 10), geom.Vec{}))
	}
	return objects
}

func (p *probe) MakeObjectOnTap(ids *object.IDGen, point geom.Vec) (object.Object, bool) {
	return object.NewCircle(ids.Next(), 1, 5, point, geom.Vec{}), true
}

func (p *probe) OnDragEmptyArea(ids *object.IDGen, objects []object.Object, point geom.Vec) []object.Object {
	p.emptyDrags++
	return append(objects, object.NewCircle(ids.Next(), 1, 2, point, geom.Vec{}))
}

func (p *probe) OnDragEndEmptyArea(objects []object.Object) []object.Object {
	p.emptyEnds++
	return objects
}

func ids(objs []object.Object) []object.ID {
	out := make([]object.ID, len(objs))
	for i, o := range objs {
		out[i] = o.ID()
	}
	return out
}
