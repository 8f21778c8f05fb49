// Package geom provides the 2D vector algebra used by every physics routine.
//
// Vectors are gonum [r2.Vec] values. The helpers here add the guarantees the
// engine relies on:
//
//   - [Normalize] never returns NaN; the zero vector maps to [UnitX]
//   - [Rect] and [Size] describe canvas bounds and touchable regions
//
// All functions are pure and allocation free.
package geom
