package integrators

import (
	"context"
	"math"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/odeplot/internal/plane"
)

// tracer writes to trace with key 'odeplot.integrators'
func tracer() tracing.Trace {
	return tracing.Select("odeplot.integrators")
}

// Stepper advances the solution of dy/dx = f(x, y) by one step of size h.
type Stepper interface {
	Step(f plane.RateFunc, x, y, h float64) float64
}

// Trace integrates dy/dx = f(x, y) through p0 with classic RK4 and fixed
// step h, in both directions, until the curve leaves b. The result is
// ordered by increasing x and contains p0.
//
// An initial x outside b yields ErrOutOfDomain and no points. An initial y
// outside b, a non-finite p0, or a non-finite f(p0) yields no points and no
// error.
func Trace(f plane.RateFunc, p0 r2.Vec, b plane.Bounds, h float64) (plane.Polyline, error) {
	return TraceWith(NewRK4(), f, p0, b, h)
}

// TraceWith is Trace with a caller-chosen fixed-step method.
func TraceWith(s Stepper, f plane.RateFunc, p0 r2.Vec, b plane.Bounds, h float64) (plane.Polyline, error) {
	if err := checkStart(p0, b, h); err != nil {
		return nil, err
	}
	if !startsFinite(f, p0, b) {
		return nil, nil
	}

	limit := maxSteps(b, h)
	back := half(s, f, p0, b, -h, limit)
	fwd := half(s, f, p0, b, h, limit)

	return join(back, p0, fwd), nil
}

func checkStart(p0 r2.Vec, b plane.Bounds, h float64) error {
	if !plane.Finite(h) || h <= 0 {
		return plane.ErrInvalidStep
	}
	if !b.X().Contains(p0.X) {
		tracer().Debugf("initial x=%g outside [%g, %g]", p0.X, b.XMin, b.XMax)
		return plane.ErrOutOfDomain
	}
	return nil
}

// startsFinite reports whether p0 lies in b and f is defined there.
func startsFinite(f plane.RateFunc, p0 r2.Vec, b plane.Bounds) bool {
	if !plane.Finite(p0.Y) || !b.Y().Contains(p0.Y) {
		return false
	}
	if k := plane.Safe2(f, p0.X, p0.Y); !plane.Finite(k) {
		tracer().Debugf("rate at %v is %g, nothing to trace", p0, k)
		return false
	}
	return true
}

// maxSteps bounds a half trace so that a pathological step size cannot loop.
func maxSteps(b plane.Bounds, h float64) int {
	return int(math.Ceil(b.X().Len()/h)) + 1
}

// half steps away from p0 in the direction of h. The start point is not
// included, and neither is the first out-of-bounds or non-finite point.
func half(s Stepper, f plane.RateFunc, p0 r2.Vec, b plane.Bounds, h float64, limit int) plane.Polyline {
	var out plane.Polyline
	y := p0.Y
	for i := 1; i <= limit; i++ {
		x := p0.X + float64(i-1)*h
		yNext := s.Step(f, x, y, h)
		xNext := p0.X + float64(i)*h
		if !plane.Finite(yNext) {
			tracer().Debugf("non-finite value after x=%g, stopping", x)
			break
		}
		p := r2.Vec{X: xNext, Y: yNext}
		if !b.Contains(p) {
			break
		}
		out = append(out, p)
		y = yNext
	}
	return out
}

// join reverses the backward half and glues it to p0 and the forward half.
func join(back plane.Polyline, p0 r2.Vec, fwd plane.Polyline) plane.Polyline {
	out := make(plane.Polyline, 0, len(back)+1+len(fwd))
	for i := len(back) - 1; i >= 0; i-- {
		out = append(out, back[i])
	}
	out = append(out, p0)
	return append(out, fwd...)
}

// TraceAdaptive follows the same contract as Trace but lets a Dormand-Prince
// stepper pick step sizes between h/1000 and 10h to keep the local error
// below tol.
func TraceAdaptive(f plane.RateFunc, p0 r2.Vec, b plane.Bounds, h, tol float64) (plane.Polyline, error) {
	if err := checkStart(p0, b, h); err != nil {
		return nil, err
	}
	if !startsFinite(f, p0, b) {
		return nil, nil
	}
	if !(tol > 0) {
		tol = 1e-6
	}

	rk := NewRK45()
	limit := 1000 * maxSteps(b, h)
	back := adaptiveHalf(rk, f, p0, b, -1, h, tol, limit)
	fwd := adaptiveHalf(rk, f, p0, b, 1, h, tol, limit)

	return join(back, p0, fwd), nil
}

func adaptiveHalf(rk *RK45, f plane.RateFunc, p0 r2.Vec, b plane.Bounds, dir, h, tol float64, limit int) plane.Polyline {
	hMin, hMax := h/1000, h*10
	var out plane.Polyline
	x, y := p0.X, p0.Y
	step := h
	for i := 0; i < limit; i++ {
		yNext, hNext, ratio := rk.StepAdaptive(f, x, y, dir*step, tol)
		if !plane.Finite(yNext) || ratio > 1 {
			if step <= hMin {
				break
			}
			step = math.Max(hMin, math.Min(step/2, math.Abs(hNext)))
			continue
		}
		p := r2.Vec{X: x + dir*step, Y: yNext}
		if !b.Contains(p) {
			break
		}
		out = append(out, p)
		x, y = p.X, p.Y
		step = math.Max(hMin, math.Min(hMax, math.Abs(hNext)))
	}
	return out
}

// TraceAll traces every seed concurrently with RK4. The result has one entry
// per seed, in seed order; seeds outside the domain give an empty entry.
func TraceAll(ctx context.Context, f plane.RateFunc, seeds []r2.Vec, b plane.Bounds, h float64) ([]plane.Polyline, error) {
	if !plane.Finite(h) || h <= 0 {
		return nil, plane.ErrInvalidStep
	}

	results := make([]plane.Polyline, len(seeds))

	var wg sync.WaitGroup
	for i := range seeds {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			line, err := Trace(f, seeds[idx], b, h)
			if err != nil {
				tracer().Debugf("seed %d skipped: %v", idx, err)
				return
			}
			results[idx] = line
		}(i)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
