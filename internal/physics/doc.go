// Package physics provides the force laws and interaction rules that drive a
// [world.World]:
//
//   - [Gravity]: uniform downward field
//   - [Spring]: Hookean springs to a fixed anchor, optionally a full lattice
//   - [Billiard]: elastic circles and drawn line obstacles inside walls
//   - [Rope]: anchor pairs with a control point pulled toward the sag curve
//   - [Galton]: peg board with a ball spawner and settling bins
//   - [Pendulum]: single and double pendulum on angular RK4
//
// Scenarios with tunable constants implement [dynamo.Configurable]:
//
//	g := physics.NewGravity()
//	_ = g.SetParam("g", 50)
package physics
