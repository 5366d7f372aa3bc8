package graph

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/odeplot/internal/plane"
)

func TestGraphFlatOutside(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	b := plane.Bounds{XMin: -5, XMax: 5, YMin: -10, YMax: 10}
	lines := Graph(func(x float64) float64 { return 100 }, b, 0.1)
	assert.Empty(t, lines)
}

func TestGraphFlatInside(t *testing.T) {
	b := plane.Bounds{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	lines := Graph(func(x float64) float64 { return 0.5 }, b, 0.25)
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], 9)
	assert.InDelta(t, -1.0, lines[0].Start().X, 1e-12)
	assert.InDelta(t, 1.0, lines[0].End().X, 1e-12)
}

func TestGraphSplitsAtAsymptote(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	b := plane.Bounds{XMin: -5, XMax: 5, YMin: -10, YMax: 10}
	lines := Graph(func(x float64) float64 { return 1 / x }, b, 0.01)
	require.GreaterOrEqual(t, len(lines), 2)

	for i, line := range lines {
		neg := line.Start().X < 0
		for _, p := range line {
			assert.Equal(t, neg, p.X < 0, "polyline %d spans the asymptote at %v", i, p)
			assert.True(t, b.Y().Contains(p.Y), "polyline %d leaves the viewport at %v", i, p)
		}
	}

	// both branches end on the viewport edge next to the asymptote
	assert.InDelta(t, -0.1, lines[0].End().X, 1e-9)
	assert.Equal(t, -10.0, lines[0].End().Y)
	last := lines[len(lines)-1]
	assert.InDelta(t, 0.1, last.Start().X, 1e-9)
	assert.Equal(t, 10.0, last.Start().Y)
}

func TestGraphBoundaryInterpolation(t *testing.T) {
	b := plane.Bounds{XMin: -10, XMax: 10, YMin: -1, YMax: 1}
	lines := Graph(func(x float64) float64 { return x }, b, 0.1)
	require.Len(t, lines, 1)

	line := lines[0]
	assert.InDelta(t, -1.0, line.Start().X, 1e-9)
	assert.Equal(t, -1.0, line.Start().Y)
	assert.InDelta(t, 1.0, line.End().X, 1e-9)
	assert.Equal(t, 1.0, line.End().Y)
}

func TestGraphOffGridCrossing(t *testing.T) {
	// with step 1 the crossing at x = 0.5 falls between two samples
	b := plane.Bounds{XMin: -3, XMax: 3, YMin: -0.5, YMax: 0.5}
	lines := Graph(func(x float64) float64 { return x }, b, 1)
	require.Len(t, lines, 1)

	assert.InDelta(t, -0.5, lines[0].Start().X, 1e-12)
	assert.InDelta(t, 0.5, lines[0].End().X, 1e-12)
	assert.Len(t, lines[0], 3)
}

func TestGraphReentry(t *testing.T) {
	b := plane.Bounds{XMin: 0, XMax: 4 * math.Pi, YMin: -0.5, YMax: 0.5}
	lines := Graph(math.Sin, b, 0.01)

	// sin leaves [-0.5, 0.5] four times on [0, 4π]
	require.Len(t, lines, 5)
	for i, line := range lines {
		if i > 0 {
			assert.InDelta(t, 0.5, math.Abs(line.Start().Y), 1e-12)
		}
		if i < len(lines)-1 {
			assert.InDelta(t, 0.5, math.Abs(line.End().Y), 1e-12)
			assert.InDelta(t, math.Abs(line.End().Y), math.Abs(math.Sin(line.End().X)), 1e-3)
		}
	}
}

func TestGraphBadSamples(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	b := plane.Bounds{XMin: -2, XMax: 2, YMin: -5, YMax: 5}

	nan := Graph(func(x float64) float64 {
		if x > -0.05 && x < 0.05 {
			return math.NaN()
		}
		return 1
	}, b, 0.1)
	require.Len(t, nan, 2)
	for _, line := range nan {
		assert.True(t, line.IsValid())
	}

	panics := Graph(func(x float64) float64 {
		if x > 0.95 && x < 1.05 {
			panic("domain error")
		}
		return 1
	}, b, 0.1)
	assert.Len(t, panics, 2)
}

func TestGraphInclusiveEdges(t *testing.T) {
	b := plane.Bounds{XMin: 0, XMax: 1, YMin: -1, YMax: 1}
	lines := Graph(func(x float64) float64 { return 1 }, b, 0.5)
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], 3)
}

func TestGraphDefaultStep(t *testing.T) {
	b := plane.Bounds{XMin: 0, XMax: 1, YMin: -1, YMax: 1}
	for _, h := range []float64{0, -1, math.NaN()} {
		lines := Graph(func(x float64) float64 { return 0 }, b, h)
		require.Len(t, lines, 1)
		assert.Len(t, lines[0], 11)
	}
}

func TestGraphZ(t *testing.T) {
	b := plane.Bounds{XMin: -2, XMax: 2, YMin: -100, YMax: 100, ZMin: 0, ZMax: 1}
	lines := GraphZ(func(x float64) float64 { return x * x }, b, 0.1)
	require.Len(t, lines, 1)
	assert.InDelta(t, -1.0, lines[0].Start().X, 1e-9)
	assert.InDelta(t, 1.0, lines[0].End().X, 1e-9)
}

func BenchmarkGraph(b *testing.B) {
	bounds := plane.DefaultBounds()
	f := func(x float64) float64 { return math.Tan(x) }
	for i := 0; i < b.N; i++ {
		_ = Graph(f, bounds, 0.01)
	}
}
