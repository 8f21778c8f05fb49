// Package dynamo provides the runtime primitives shared by the world engine
// and its drivers.
//
//   - [Config]: per-world runtime options (delta time, object cap, arrows)
//   - [Integrator]: advances one object by a time step
//   - [Metric], [Observer]: per-tick observation of the object collection
//   - sentinel errors for configuration boundaries
//
// The engine itself is total: ticks, taps and drags never fail. Errors only
// surface where external input is accepted (config, delta time, runners).
//
// # Example
//
//	cfg := dynamo.DefaultConfig()
//	cfg.MaxObjectCount = 500
//	w, _ := world.New(physics.NewGravity(), cfg)
//	w.Resize(geom.Size{Width: 400, Height: 600})
//	w.Tick(cfg.Dt)
//
// # Thread Safety
//
// Nothing here is safe for concurrent use. Ticks and pointer events must be
// serialized by the caller; see sim.Runner.
package dynamo
