// Package integrators traces solution curves of first-order ODEs
// dy/dx = f(x, y) through a viewport.
//
// [Trace] is the fixed-step RK4 baseline. [TraceWith] swaps in another
// [Stepper] (Euler, or a single Dormand-Prince step), [TraceAdaptive] adapts
// the step to an error tolerance and [TraceAll] traces many seed points
// concurrently.
//
// Tracing stops in each direction at the last in-bounds step; there is no
// interpolation onto the viewport edge.
package integrators
