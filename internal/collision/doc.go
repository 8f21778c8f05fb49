// Package collision implements manifold based contact detection and elastic
// response for simulation objects.
//
// Detection functions are pure and total: no contact is reported as a false
// ok value, never as an error. Response mutates the two objects in place and
// never moves an infinite-mass body.
//
// Wall handling is a discrete check performed once per tick. A fast circle
// can pass through a wall between two ticks; this is the documented behavior
// and there is no continuous collision detection.
package collision
