package world

import (
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/integrators"
	"github.com/san-kum/worldsim/internal/logging"
	"github.com/san-kum/worldsim/internal/object"
)

type options struct {
	log       *logging.Logger
	integ     dynamo.Integrator
	observers []dynamo.Observer
}

type Option func(*options)

func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.log = l }
}

func WithIntegrator(i dynamo.Integrator) Option {
	return func(o *options) { o.integ = i }
}

func WithObserver(obs dynamo.Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// World is a single simulation board. It is not safe for concurrent use.
type World[O object.Object] struct {
	scenario  Scenario[O]
	cfg       dynamo.Config
	integ     dynamo.Integrator
	log       *logging.Logger
	observers []dynamo.Observer

	ids     *object.IDGen
	objects []O
	initial []O
	view    []object.Object

	offset geom.Vec
	canvas geom.Size
	drag   DragState
	ticks  uint64
}

func New[O object.Object](s Scenario[O], cfg dynamo.Config, opts ...Option) (*World[O], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("world %s: %w", s.Name(), err)
	}

	o := options{log: logging.Discard(), integ: integrators.NewEuler()}
	for _, opt := range opts {
		opt(&o)
	}

	w := &World[O]{
		scenario:  s,
		cfg:       cfg,
		integ:     o.integ,
		log:       o.log.ForWorld(s.Name()),
		observers: o.observers,
		ids:       object.NewIDGen(),
	}
	w.objects = s.InitialObjects(w.ids, geom.Size{})
	w.enforceCap()
	w.initial = cloneAll(w.objects)
	return w, nil
}

func (w *World[O]) Name() string          { return w.scenario.Name() }
func (w *World[O]) Config() dynamo.Config { return w.cfg }
func (w *World[O]) DeltaTime() float64    { return w.cfg.Dt }
func (w *World[O]) CanvasSize() geom.Size { return w.canvas }
func (w *World[O]) Offset() geom.Vec      { return w.offset }
func (w *World[O]) Drag() DragState       { return w.drag }
func (w *World[O]) TickCount() uint64     { return w.ticks }
func (w *World[O]) Len() int              { return len(w.objects) }
func (w *World[O]) IDs() *object.IDGen    { return w.ids }

func (w *World[O]) AddObserver(obs dynamo.Observer) {
	w.observers = append(w.observers, obs)
}

// Objects returns the live collection. Callers must not retain or mutate it.
func (w *World[O]) Objects() []O { return w.objects }

// View returns the live collection as plain objects, reusing one buffer.
func (w *World[O]) View() []object.Object {
	w.view = w.view[:0]
	for _, o := range w.objects {
		w.view = append(w.view, o)
	}
	return w.view
}

// SetDeltaTime changes the simulated seconds per tick.
func (w *World[O]) SetDeltaTime(dt float64) error {
	if err := dynamo.ValidateDt(dt); err != nil {
		return err
	}
	w.cfg.Dt = dt
	return nil
}

// Params returns the tunable constants of the scenario, or nil.
func (w *World[O]) Params() map[string]float64 {
	if c, ok := w.scenario.(dynamo.Configurable); ok {
		return c.GetParams()
	}
	return nil
}

func (w *World[O]) SetParam(name string, value float64) error {
	c, ok := w.scenario.(dynamo.Configurable)
	if !ok {
		return fmt.Errorf("%s has no parameters: %w", w.scenario.Name(), dynamo.ErrInvalidConfig)
	}
	return c.SetParam(name, value)
}

func (w *World[O]) SetArrows(velocity, force bool) {
	w.cfg.ShowsVelocityArrows = velocity
	w.cfg.ShowsForceArrows = force
}

// Tick advances the world by dt simulated seconds.
func (w *World[O]) Tick(dt float64) {
	w.enforceCap()

	for _, o := range w.objects {
		o.SetForce(geom.Vec{})
	}

	w.objects = w.scenario.StepForces(w.objects, Env{
		Canvas: w.canvas,
		Dt:     dt,
		Tick:   w.ticks,
		IDs:    w.ids,
	})

	for _, o := range w.objects {
		w.integ.Step(o, dt)
	}

	w.evictOutOfBounds()
	w.enforceCap()
	w.ticks++

	if len(w.observers) > 0 {
		view := w.View()
		for _, obs := range w.observers {
			obs.OnTick(view, w.ticks)
		}
	}
}

// Tap offers the scenario a chance to spawn an object at point.
func (w *World[O]) Tap(point geom.Vec) {
	o, ok := w.scenario.MakeObjectOnTap(w.ids, w.local(point))
	if !ok {
		return
	}
	w.objects = append(w.objects, o)
	w.enforceCap()
}

// DragMove routes a pointer move. The first move of a gesture decides
// between dragging an object and drawing on the empty area.
func (w *World[O]) DragMove(point geom.Vec) {
	p := w.local(point)

	switch w.drag.Kind {
	case DragIdle:
		if o, ok := w.hitTest(p); ok {
			w.drag = DragState{Kind: DragObject, ObjectID: o.ID()}
			w.scenario.OnDragObject(o, p, w.objects)
			return
		}
		w.drag = DragState{Kind: DragEmptyArea}
		w.dragEmpty(p)
	case DragObject:
		if o, ok := w.find(w.drag.ObjectID); ok {
			w.scenario.OnDragObject(o, p, w.objects)
		}
	case DragEmptyArea:
		w.dragEmpty(p)
	}
}

// DragEnd finishes the gesture. Empty-area gestures get their end callback.
func (w *World[O]) DragEnd() {
	wasEmpty := w.drag.Kind == DragEmptyArea
	w.drag = DragState{}
	if wasEmpty {
		w.objects = w.scenario.OnDragEndEmptyArea(w.objects)
		w.enforceCap()
	}
}

// Resize records new canvas bounds and applies the scenario layout.
func (w *World[O]) Resize(size geom.Size) {
	w.canvas = size
	layout := w.scenario.Layout(size)
	w.offset = layout.Offset
	if !layout.Regenerate {
		return
	}
	w.objects = w.scenario.InitialObjects(w.ids, size)
	w.enforceCap()
	w.initial = cloneAll(w.objects)
	w.drag = DragState{}
	w.log.Debug("layout regenerated", "width", size.Width, "height", size.Height, "objects", len(w.objects))
}

// ResetCanvas restores the objects captured at construction or at the last
// regenerating resize.
func (w *World[O]) ResetCanvas() {
	w.objects = cloneAll(w.initial)
	w.drag = DragState{}
	w.log.Debug("canvas reset", "objects", len(w.objects))
}

func (w *World[O]) Snapshot() Snapshot {
	return Snapshot{
		Scenario:            w.scenario.Name(),
		Tick:                w.ticks,
		Objects:             object.States(w.objects),
		CanvasSize:          w.canvas,
		Offset:              w.offset,
		Drag:                w.drag,
		ShowsVelocityArrows: w.cfg.ShowsVelocityArrows,
		ShowsForceArrows:    w.cfg.ShowsForceArrows,
		VelocityArrowScale:  w.cfg.VelocityArrowScale,
		ForceArrowScale:     w.cfg.ForceArrowScale,
	}
}

func (w *World[O]) local(p geom.Vec) geom.Vec { return geom.Sub(p, w.offset) }

func (w *World[O]) dragEmpty(p geom.Vec) {
	w.objects = w.scenario.OnDragEmptyArea(w.ids, w.objects, p)
	w.enforceCap()
}

func (w *World[O]) hitTest(p geom.Vec) (O, bool) {
	for _, o := range w.objects {
		if geom.Contains(o.TouchableRegion(), p) {
			return o, true
		}
	}
	var zero O
	return zero, false
}

func (w *World[O]) find(id object.ID) (O, bool) {
	for _, o := range w.objects {
		if o.ID() == id {
			return o, true
		}
	}
	var zero O
	return zero, false
}

// enforceCap drops the oldest objects beyond MaxObjectCount.
func (w *World[O]) enforceCap() {
	excess := len(w.objects) - w.cfg.MaxObjectCount
	if excess <= 0 {
		return
	}
	w.objects = slices.Delete(w.objects, 0, excess)
	w.log.Debug("object cap reached", "dropped", excess, "cap", w.cfg.MaxObjectCount)
}

// evictOutOfBounds removes objects whose rendered position left the padded
// canvas. Nothing is evicted before the first resize.
func (w *World[O]) evictOutOfBounds() {
	if w.canvas.IsZero() {
		return
	}
	pad := w.cfg.BoundsPadding * math.Max(w.canvas.Width, w.canvas.Height)
	bounds := geom.Inflate(w.canvas.Rect(), pad, pad)

	evicted := 0
	for i := len(w.objects) - 1; i >= 0; i-- {
		p := geom.Add(w.offset, w.objects[i].Position())
		if geom.Contains(bounds, p) && geom.IsFinite(p) {
			continue
		}
		w.objects = slices.Delete(w.objects, i, i+1)
		evicted++
	}
	if evicted > 0 {
		w.log.Debug("evicted out of bounds", "count", evicted, "tick", w.ticks)
	}
}

func cloneAll[O object.Object](objects []O) []O {
	out := make([]O, len(objects))
	for i, o := range objects {
		out[i] = o.Clone().(O)
	}
	return out
}
