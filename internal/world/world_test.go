package world_test

import (
	"errors"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/world"
)

var _ = Describe("World", func() {
	var (
		scenario *probe
		cfg      dynamo.Config
		w        *world.World[object.Object]
	)

	build := func() {
		var err error
		w, err = world.New[object.Object](scenario, cfg)
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		scenario = &probe{initial: []geom.Vec{geom.V(10, 10), geom.V(50, 50)}}
		cfg = dynamo.DefaultConfig()
	})

	Describe("construction", func() {
		It("rejects an invalid config", func() {
			cfg.MaxObjectCount = 0
			_, err := world.New[object.Object](scenario, cfg)
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
		})

		It("starts from the scenario preset", func() {
			build()
			Expect(w.Len()).To(Equal(2))
			Expect(w.Drag().Kind).To(Equal(world.DragIdle))
		})

		It("caps an oversized preset", func() {
			cfg.MaxObjectCount = 1
			build()
			Expect(w.Len()).To(Equal(1))
			Expect(w.Objects()[0].Position()).To(Equal(geom.V(50, 50)))
		})
	})

	Describe("Tick", func() {
		BeforeEach(func() {
			scenario.gravity = 10
			build()
		})

		It("zeroes forces before the force law runs", func() {
			for _, o := range w.Objects() {
				o.SetForce(geom.V(123, 456))
			}
			w.Tick(0.1)
			Expect(scenario.forcesAtEntry).To(HaveLen(2))
			for _, f := range scenario.forcesAtEntry {
				Expect(f).To(Equal(geom.Vec{}))
			}
		})

		It("integrates the forces the law applied", func() {
			w.Tick(0.1)
			o := w.Objects()[0]
			Expect(o.Velocity().Y).To(BeNumerically("~", 1.0, 1e-12))
			Expect(o.Position().Y).To(BeNumerically("~", 10.1, 1e-12))
			Expect(w.TickCount()).To(Equal(uint64(1)))
		})

		It("never exceeds the object cap even when the law spawns objects", func() {
			cfg.MaxObjectCount = 5
			scenario.spawnPerTick = 100
			build()

			for i := 0; i < 3; i++ {
				w.Tick(0.1)
				Expect(w.Len()).To(BeNumerically("<=", 5))
			}
		})

		It("drops the oldest objects first", func() {
			cfg.MaxObjectCount = 3
			scenario.spawnPerTick = 2
			build()
			before := ids(w.Objects())

			w.Tick(0.1)

			after := ids(w.Objects())
			Expect(after).To(HaveLen(3))
			Expect(after).NotTo(ContainElement(before[0]))
			Expect(after[0]).To(Equal(before[1]))
		})

		It("does not evict before the canvas has a size", func() {
			w.Objects()[0].SetPosition(geom.V(1e6, 1e6))
			w.Tick(0.1)
			Expect(w.Len()).To(Equal(2))
		})

		It("evicts objects outside the padded canvas and keeps order", func() {
			scenario.initial = []geom.Vec{geom.V(10, 10), geom.V(-500, 0), geom.V(50, 50), geom.V(180, 180), geom.V(0, 900)}
			scenario.gravity = 0
			build()
			w.Resize(geom.Size{Width: 100, Height: 100})
			survivors := []object.ID{w.Objects()[0].ID(), w.Objects()[2].ID(), w.Objects()[3].ID()}

			w.Tick(0.1)

			Expect(ids(w.Objects())).To(Equal(survivors))
		})

		It("notifies observers after every tick", func() {
			var seen []uint64
			var counts []int
			w.AddObserver(dynamo.ObserverFunc(func(objects []object.Object, tick uint64) {
				seen = append(seen, tick)
				counts = append(counts, len(objects))
			}))

			w.Tick(0.1)
			w.Tick(0.1)

			Expect(seen).To(Equal([]uint64{1, 2}))
			Expect(counts).To(Equal([]int{2, 2}))
		})
	})

	Describe("Tap", func() {
		It("appends the spawned object", func() {
			build()
			w.Tap(geom.V(70, 80))
			Expect(w.Len()).To(Equal(3))
			Expect(w.Objects()[2].Position()).To(Equal(geom.V(70, 80)))
		})

		It("respects the cap", func() {
			cfg.MaxObjectCount = 2
			build()
			w.Tap(geom.V(70, 80))
			Expect(w.Len()).To(Equal(2))
			Expect(w.Objects()[1].Position()).To(Equal(geom.V(70, 80)))
		})

		It("translates the point by the layout offset", func() {
			scenario.offset = geom.V(100, 50)
			build()
			w.Resize(geom.Size{Width: 400, Height: 400})
			w.Tap(geom.V(130, 60))
			Expect(w.Objects()[2].Position()).To(Equal(geom.V(30, 10)))
		})
	})

	Describe("dragging", func() {
		BeforeEach(build)

		It("drags the object under the first move for the whole gesture", func() {
			target := w.Objects()[1]

			w.DragMove(geom.V(52, 48))
			Expect(w.Drag()).To(Equal(world.DragState{Kind: world.DragObject, ObjectID: target.ID()}))
			Expect(target.Position()).To(Equal(geom.V(52, 48)))

			w.DragMove(geom.V(300, 300))
			Expect(target.Position()).To(Equal(geom.V(300, 300)))
			Expect(scenario.emptyDrags).To(Equal(0))

			w.DragEnd()
			Expect(w.Drag().Kind).To(Equal(world.DragIdle))
			Expect(scenario.emptyEnds).To(Equal(0))
		})

		It("routes a gesture that starts on empty space to the empty-area handlers", func() {
			w.DragMove(geom.V(200, 200))
			Expect(w.Drag().Kind).To(Equal(world.DragEmptyArea))

			// passing over an object does not switch the gesture
			w.DragMove(geom.V(10, 10))
			Expect(scenario.emptyDrags).To(Equal(2))
			Expect(w.Len()).To(Equal(4))

			w.DragEnd()
			Expect(scenario.emptyEnds).To(Equal(1))
			Expect(w.Drag().Kind).To(Equal(world.DragIdle))
		})

		It("cancels an in-progress gesture on reset", func() {
			w.DragMove(geom.V(10, 10))
			w.ResetCanvas()
			Expect(w.Drag().Kind).To(Equal(world.DragIdle))
			w.DragMove(geom.V(20, 20))
			Expect(w.Drag().Kind).To(Equal(world.DragObject))
		})

		It("uses the touchable region rather than the visible radius", func() {
			// radius 5, but the region is at least 28x28
			w.DragMove(geom.V(22, 22))
			Expect(w.Drag().Kind).To(Equal(world.DragObject))
		})
	})

	Describe("ResetCanvas", func() {
		BeforeEach(func() {
			scenario.gravity = 10
			build()
		})

		It("restores the initial objects verbatim", func() {
			initial := w.Snapshot().Objects
			for i := 0; i < 10; i++ {
				w.Tick(0.1)
			}
			w.Tap(geom.V(1, 1))

			w.ResetCanvas()

			Expect(cmp.Diff(initial, w.Snapshot().Objects)).To(BeEmpty())
		})

		It("is idempotent", func() {
			w.Tick(0.1)
			w.ResetCanvas()
			first := w.Snapshot().Objects
			w.ResetCanvas()
			second := w.Snapshot().Objects

			Expect(cmp.Diff(first, second)).To(BeEmpty())
		})

		It("does not share objects with the reset snapshot", func() {
			w.ResetCanvas()
			w.Tick(0.1)
			w.ResetCanvas()
			Expect(w.Objects()[0].Position()).To(Equal(geom.V(10, 10)))
		})
	})

	Describe("Resize", func() {
		It("only records the size when the layout does not regenerate", func() {
			build()
			w.Tick(0.1)
			before := w.Snapshot().Objects

			w.Resize(geom.Size{Width: 300, Height: 200})

			Expect(w.CanvasSize()).To(Equal(geom.Size{Width: 300, Height: 200}))
			Expect(cmp.Diff(before, w.Snapshot().Objects)).To(BeEmpty())
		})

		It("rebuilds the board and the reset snapshot when the layout regenerates", func() {
			scenario.regenerate = true
			build()
			Expect(w.Len()).To(Equal(2))

			w.Resize(geom.Size{Width: 300, Height: 200})
			Expect(w.Len()).To(Equal(3))
			Expect(w.Objects()[2].Position()).To(Equal(geom.V(150, 100)))

			w.Tap(geom.V(1, 1))
			w.ResetCanvas()
			Expect(w.Len()).To(Equal(3))
		})
	})

	Describe("SetDeltaTime", func() {
		BeforeEach(build)

		It("accepts values in range", func() {
			Expect(w.SetDeltaTime(0.5)).To(Succeed())
			Expect(w.DeltaTime()).To(Equal(0.5))
		})

		It("rejects values out of range", func() {
			Expect(w.SetDeltaTime(0)).To(MatchError(dynamo.ErrParameterBounds))
			Expect(w.DeltaTime()).To(Equal(dynamo.DefaultDt))
		})
	})

	Describe("Snapshot arrows", func() {
		It("emits nothing when arrows are disabled", func() {
			build()
			Expect(w.Snapshot().Arrows()).To(BeEmpty())
		})

		It("scales velocity and force arrows", func() {
			cfg.ShowsVelocityArrows = true
			cfg.ShowsForceArrows = true
			cfg.VelocityArrowScale = 2
			cfg.ForceArrowScale = 0.5
			scenario.initial = []geom.Vec{geom.V(10, 10)}
			scenario.gravity = 10
			build()
			w.Tick(0.1)

			arrows := w.Snapshot().Arrows()
			Expect(arrows).To(HaveLen(2))

			o := w.Objects()[0]
			Expect(arrows[0].Kind).To(Equal(world.ArrowVelocity))
			Expect(arrows[0].From).To(Equal(o.Position()))
			Expect(arrows[0].To).To(Equal(geom.Add(o.Position(), geom.Scale(2, o.Velocity()))))
			Expect(arrows[1].Kind).To(Equal(world.ArrowForce))
			Expect(arrows[1].To).To(Equal(geom.Add(o.Position(), geom.Scale(0.5, o.Force()))))
		})
	})
})
