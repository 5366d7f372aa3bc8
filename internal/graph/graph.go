// Package graph samples y = f(x) on a fixed grid and clips the result to a
// viewport.
//
// The graph is split into separate polylines wherever it leaves and
// re-enters the viewport. Each polyline starts and ends on the viewport edge
// where the curve crosses it, found by linear interpolation between the
// neighbouring samples.
package graph

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/odeplot/internal/plane"
)

// DefaultStep is the sampling step used when none is given.
const DefaultStep = 0.1

// tracer writes to trace with key 'odeplot.graph'
func tracer() tracing.Trace {
	return tracing.Select("odeplot.graph")
}

// Graph samples f over the x range of b and clips it against the y range.
// A step h <= 0 or non-finite falls back to DefaultStep.
func Graph(f plane.Func, b plane.Bounds, h float64) []plane.Polyline {
	return Sample(f, b.X(), b.Y(), h)
}

// GraphZ is Graph for a surface slice z = f(x), clipped against the z range.
func GraphZ(f plane.Func, b plane.Bounds, h float64) []plane.Polyline {
	return Sample(f, b.X(), b.Z(), h)
}

// Sample scans x from floor(x.Min/h)*h to ceil(x.Max/h)*h and collects the
// visible runs of f against the value range v. A sample is visible when it is
// finite and inside v, edges included. f may panic or return NaN or ±Inf;
// such samples count as outside.
func Sample(f plane.Func, x, v plane.Interval, h float64) []plane.Polyline {
	if !plane.Finite(h) || h <= 0 {
		h = DefaultStep
	}

	start := math.Floor(x.Min/h) * h
	end := math.Ceil(x.Max/h) * h
	n := int(math.Round((end - start) / h))
	if n < 0 {
		return nil
	}

	s := sampler{v: v}
	for i := 0; i <= n; i++ {
		xi := start + float64(i)*h
		s.add(r2.Vec{X: xi, Y: plane.Safe1(f, xi)})
	}
	s.flush()

	tracer().Debugf("sampled %d points into %d polylines", n+1, len(s.out))
	return s.out
}

type sampler struct {
	v       plane.Interval
	out     []plane.Polyline
	cur     plane.Polyline
	prev    r2.Vec
	hasPrev bool
	prevIn  bool
}

func (s *sampler) inside(p r2.Vec) bool {
	return plane.Finite(p.Y) && s.v.Contains(p.Y)
}

func (s *sampler) add(p r2.Vec) {
	in := s.inside(p)
	switch {
	case in:
		if s.cur == nil && s.hasPrev && !s.prevIn {
			if c, ok := s.crossing(s.prev, p); ok {
				s.cur = append(s.cur, c)
			}
		}
		s.cur = append(s.cur, p)
	case s.cur != nil:
		if c, ok := s.crossing(s.cur.End(), p); ok {
			s.cur = append(s.cur, c)
		}
		s.flush()
	}
	s.prev, s.hasPrev, s.prevIn = p, true, in
}

func (s *sampler) flush() {
	if len(s.cur) > 0 {
		s.out = append(s.out, s.cur)
	}
	s.cur = nil
}

// crossing interpolates where the segment between an inside and an outside
// sample meets the exceeded bound. It fails when the outside sample is not
// finite.
func (s *sampler) crossing(a, b r2.Vec) (r2.Vec, bool) {
	out := b
	if s.inside(b) {
		out = a
	}
	if !plane.Finite(out.Y) {
		return r2.Vec{}, false
	}

	bound := s.v.Min
	if out.Y > s.v.Max {
		bound = s.v.Max
	}

	m := (b.Y - a.Y) / (b.X - a.X)
	return r2.Vec{X: a.X + (bound-a.Y)/m, Y: bound}, true
}
