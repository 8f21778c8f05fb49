// Package world implements the tick pipeline and pointer routing shared by
// every physics scenario.
//
// A [World] owns an ordered object collection and delegates all physics to a
// [Scenario]. Each tick:
//
//  1. drops the oldest objects beyond the configured cap
//  2. zeroes every object's force
//  3. runs the scenario's force law
//  4. integrates every object
//  5. evicts objects outside the padded canvas
//
// The cap is applied again after eviction so a force law that spawns objects
// cannot leave the collection oversized.
//
// Pointer gestures are decided on the first move: a move that starts over an
// object's touchable region drags that object until DragEnd; otherwise the
// whole gesture goes to the scenario's empty-area handlers.
//
// A World does no timing of its own. Something else (see sim.Runner) calls
// Tick periodically and serializes it with pointer events.
package world
