package plane

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// RateFunc is the right-hand side of dy/dx = f(x, y).
type RateFunc func(x, y float64) float64

// Func is a graphable function y = f(x).
type Func func(x float64) float64

// Polyline is a connected run of points.
type Polyline []r2.Vec

func (p Polyline) Clone() Polyline {
	c := make(Polyline, len(p))
	copy(c, p)
	return c
}

// Start and End return the first and last point; both panic on an empty line.
func (p Polyline) Start() r2.Vec { return p[0] }
func (p Polyline) End() r2.Vec   { return p[len(p)-1] }

func (p Polyline) IsValid() bool {
	for _, v := range p {
		if !Finite(v.X) || !Finite(v.Y) {
			return false
		}
	}
	return true
}

// Interval is a closed range [Min, Max].
type Interval struct {
	Min, Max float64
}

func (iv Interval) Contains(v float64) bool {
	return v >= iv.Min && v <= iv.Max
}

func (iv Interval) Len() float64 {
	return iv.Max - iv.Min
}

func (iv Interval) Mid() float64 {
	return (iv.Min + iv.Max) / 2
}

// Bounds is a closed rectangular viewport. The z range is only read by the
// 3D sampling variant.
type Bounds struct {
	XMin float64 `yaml:"xmin" json:"xmin"`
	XMax float64 `yaml:"xmax" json:"xmax"`
	YMin float64 `yaml:"ymin" json:"ymin"`
	YMax float64 `yaml:"ymax" json:"ymax"`
	ZMin float64 `yaml:"zmin,omitempty" json:"zmin,omitempty"`
	ZMax float64 `yaml:"zmax,omitempty" json:"zmax,omitempty"`
}

func DefaultBounds() Bounds {
	return Bounds{XMin: -10, XMax: 10, YMin: -10, YMax: 10, ZMin: -10, ZMax: 10}
}

func (b Bounds) X() Interval { return Interval{b.XMin, b.XMax} }
func (b Bounds) Y() Interval { return Interval{b.YMin, b.YMax} }
func (b Bounds) Z() Interval { return Interval{b.ZMin, b.ZMax} }

// Contains reports whether p lies inside the x/y rectangle, edges included.
func (b Bounds) Contains(p r2.Vec) bool {
	return b.X().Contains(p.X) && b.Y().Contains(p.Y)
}

// Validate checks the x and y ranges. A zero z range is allowed.
func (b Bounds) Validate() error {
	if !(b.XMin < b.XMax) {
		return &BoundsError{Axis: "x", Min: b.XMin, Max: b.XMax}
	}
	if !(b.YMin < b.YMax) {
		return &BoundsError{Axis: "y", Min: b.YMin, Max: b.YMax}
	}
	if (b.ZMin != 0 || b.ZMax != 0) && !(b.ZMin < b.ZMax) {
		return &BoundsError{Axis: "z", Min: b.ZMin, Max: b.ZMax}
	}
	return nil
}

// Pan shifts the viewport by fractions of its width and height.
func (b Bounds) Pan(fx, fy float64) Bounds {
	dx := fx * b.X().Len()
	dy := fy * b.Y().Len()
	b.XMin, b.XMax = b.XMin+dx, b.XMax+dx
	b.YMin, b.YMax = b.YMin+dy, b.YMax+dy
	return b
}

// Zoom scales the viewport around its centre; factor < 1 zooms in.
func (b Bounds) Zoom(factor float64) Bounds {
	cx, cy := b.X().Mid(), b.Y().Mid()
	hw := b.X().Len() / 2 * factor
	hh := b.Y().Len() / 2 * factor
	b.XMin, b.XMax = cx-hw, cx+hw
	b.YMin, b.YMax = cy-hh, cy+hh
	return b
}

func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Safe1 evaluates f at x, turning a panic into NaN.
func Safe1(f Func, x float64) (y float64) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("function panicked at x=%g: %v", x, r)
			y = math.NaN()
		}
	}()
	return f(x)
}

// Safe2 evaluates f at (x, y), turning a panic into NaN.
func Safe2(f RateFunc, x, y float64) (v float64) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("rate function panicked at (%g, %g): %v", x, y, r)
			v = math.NaN()
		}
	}()
	return f(x, y)
}
