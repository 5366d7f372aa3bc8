// Package field samples the direction field of dy/dx = f(x, y).
package field

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/odeplot/internal/plane"
)

// tracer writes to trace with key 'odeplot.field'
func tracer() tracing.Trace {
	return tracing.Select("odeplot.field")
}

// LengthFactor is the segment length relative to the smaller cell side.
const LengthFactor = 0.4

// Segment is one slope mark, centred on the sample point.
type Segment struct {
	Centre r2.Vec
	From   r2.Vec
	To     r2.Vec
	Slope  float64
}

// Compute samples f at the centres of an nx×ny grid over b. Cells whose
// slope is not finite are left out. Segments are ordered row by row from
// the bottom left.
func Compute(f plane.RateFunc, b plane.Bounds, nx, ny int) []Segment {
	if nx <= 0 || ny <= 0 || b.Validate() != nil {
		return nil
	}

	cw := b.X().Len() / float64(nx)
	ch := b.Y().Len() / float64(ny)
	half := LengthFactor * math.Min(cw, ch) / 2

	rows := make([][]Segment, ny)
	plane.ParallelFor(ny, 4, func(start, end int) {
		for j := start; j < end; j++ {
			y := b.YMin + (float64(j)+0.5)*ch
			row := make([]Segment, 0, nx)
			for i := 0; i < nx; i++ {
				x := b.XMin + (float64(i)+0.5)*cw
				m := plane.Safe2(f, x, y)
				if !plane.Finite(m) {
					continue
				}
				c := r2.Vec{X: x, Y: y}
				d := r2.Scale(half, r2.Unit(r2.Vec{X: 1, Y: m}))
				row = append(row, Segment{
					Centre: c,
					From:   r2.Sub(c, d),
					To:     r2.Add(c, d),
					Slope:  m,
				})
			}
			rows[j] = row
		}
	})

	var out []Segment
	for _, row := range rows {
		out = append(out, row...)
	}
	tracer().Debugf("field %dx%d: %d segments", nx, ny, len(out))
	return out
}
