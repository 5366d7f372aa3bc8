// Package plane provides the shared primitives of the plotting core.
//
// The package defines the value types every numerical component works on:
//
//   - [Interval]: closed range on one axis
//   - [Bounds]: rectangular viewport (with an optional z range)
//   - [Polyline]: connected run of points, drawn as one segment
//   - [RateFunc]: dy/dx = f(x, y), the right-hand side of a first-order ODE
//   - [Func]: y = f(x), a graphable function
//
// Points are gonum [r2.Vec] values.
//
// # Example
//
//	b := plane.Bounds{XMin: -5, XMax: 5, YMin: -5, YMax: 5}
//	line, err := integrators.Trace(f, r2.Vec{X: 0, Y: 1}, b, 0.05)
//
// # Thread Safety
//
// All values are immutable once built. Functions supplied by callers are
// treated as black boxes: they may be called from several goroutines at once
// and must not depend on shared mutable state.
package plane
