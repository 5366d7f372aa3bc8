package integrators

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/odeplot/internal/plane"
)

func TestTrace_ConstantRateIsExact(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	b := plane.Bounds{XMin: -5, XMax: 5, YMin: -100, YMax: 100}
	p0 := r2.Vec{X: 0.3, Y: 1}

	for _, k := range []float64{0, 2, -3.5} {
		for _, h := range []float64{0.01, 0.07, 0.5, 3} {
			f := func(x, y float64) float64 { return k }
			line, err := Trace(f, p0, b, h)
			require.NoError(t, err, "k=%g h=%g", k, h)
			for _, p := range line {
				require.InDelta(t, p0.Y+k*(p.X-p0.X), p.Y, 1e-9, "k=%g h=%g x=%g", k, h, p.X)
			}
		}
	}
}

func TestTrace_AnchoredAndOrdered(t *testing.T) {
	b := plane.Bounds{XMin: -3, XMax: 3, YMin: -10, YMax: 10}
	p0 := r2.Vec{X: 0.25, Y: 1}
	f := func(x, y float64) float64 { return math.Sin(x) - 0.1*y }

	line, err := Trace(f, p0, b, 0.1)
	require.NoError(t, err)

	assert.Contains(t, line, p0)
	for i := 1; i < len(line); i++ {
		require.Greater(t, line[i].X, line[i-1].X, "x not increasing at %d", i)
	}

	// the curve stays bounded here, so both x ends must be reached
	assert.LessOrEqual(t, line.Start().X-b.XMin, 0.1)
	assert.LessOrEqual(t, b.XMax-line.End().X, 0.1)
}

func TestTrace_RespectsBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := plane.Bounds{XMin: -2, XMax: 3, YMin: -1.5, YMax: 2}
	rates := []plane.RateFunc{
		func(x, y float64) float64 { return x * y },
		func(x, y float64) float64 { return y*y - x },
		func(x, y float64) float64 { return 5 * math.Cos(3*x) },
	}

	for _, f := range rates {
		for i := 0; i < 20; i++ {
			p0 := r2.Vec{
				X: b.XMin + rng.Float64()*(b.XMax-b.XMin),
				Y: b.YMin + rng.Float64()*(b.YMax-b.YMin),
			}
			line, err := Trace(f, p0, b, 0.05)
			require.NoError(t, err, "trace from %v", p0)
			require.NotEmpty(t, line, "trace from %v", p0)
			for _, p := range line {
				require.True(t, b.Contains(p), "trace from %v left bounds at %v", p0, p)
			}
		}
	}
}

func TestTrace_OutOfDomain(t *testing.T) {
	b := plane.Bounds{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	f := func(x, y float64) float64 { return 1 }

	for _, x := range []float64{1.0001, -1.5, math.NaN()} {
		line, err := Trace(f, r2.Vec{X: x, Y: 0}, b, 0.1)
		assert.ErrorIs(t, err, plane.ErrOutOfDomain, "x=%g", x)
		assert.Empty(t, line, "x=%g", x)
	}

	// y outside the viewport is an empty result, not an error
	line, err := Trace(f, r2.Vec{X: 0, Y: 5}, b, 0.1)
	assert.NoError(t, err)
	assert.Empty(t, line)
}

func TestTrace_InvalidStep(t *testing.T) {
	b := plane.DefaultBounds()
	f := func(x, y float64) float64 { return 1 }

	for _, h := range []float64{0, -0.1, math.NaN(), math.Inf(1)} {
		_, err := Trace(f, r2.Vec{}, b, h)
		assert.ErrorIs(t, err, plane.ErrInvalidStep, "h=%g", h)
	}
}

func TestTrace_StopsAtSingularity(t *testing.T) {
	b := plane.Bounds{XMin: -1, XMax: 3, YMin: -10, YMax: 10}
	f := func(x, y float64) float64 { return 1 / (x - 1) }

	line, err := Trace(f, r2.Vec{X: 0, Y: 0}, b, 0.1)
	require.NoError(t, err)
	require.True(t, line.IsValid(), "trace contains non-finite points")
	assert.Less(t, line.End().X, 1.0, "trace crossed the singularity")
}

func TestTrace_UndefinedRateAtStart(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	b := plane.DefaultBounds()
	cases := map[string]plane.RateFunc{
		"nan":       func(x, y float64) float64 { return math.NaN() },
		"pole":      func(x, y float64) float64 { return 1 / (x - 1) },
		"panicking": func(x, y float64) float64 { panic("parser failure") },
	}

	for name, f := range cases {
		for _, s := range []Stepper{NewRK4(), NewEuler()} {
			line, err := TraceWith(s, f, r2.Vec{X: 1, Y: 1}, b, 0.1)
			assert.NoError(t, err, name)
			assert.Empty(t, line, "%s: a start where the rate is undefined has nothing to trace", name)
		}
	}
}

func TestTraceWith_Euler(t *testing.T) {
	b := plane.Bounds{XMin: 0, XMax: 1, YMin: -10, YMax: 10}
	f := func(x, y float64) float64 { return 1 }

	line, err := TraceWith(NewEuler(), f, r2.Vec{X: 0, Y: 0}, b, 0.25)
	require.NoError(t, err)
	require.Len(t, line, 5)
	assert.InDelta(t, 1.0, line.End().Y, 1e-12)
}

func TestTraceAll(t *testing.T) {
	b := plane.Bounds{XMin: -1, XMax: 1, YMin: -5, YMax: 5}
	f := func(x, y float64) float64 { return 1 }
	seeds := []r2.Vec{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 1}}

	lines, err := TraceAll(context.Background(), f, seeds, b, 0.1)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Empty(t, lines[1], "out-of-domain seed should give an empty entry")
	for _, i := range []int{0, 2} {
		want, _ := Trace(f, seeds[i], b, 0.1)
		assert.Len(t, lines[i], len(want), "seed %d", i)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = TraceAll(ctx, f, seeds, b, 0.1)
	assert.ErrorIs(t, err, context.Canceled)
}
