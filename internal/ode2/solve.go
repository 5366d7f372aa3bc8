package ode2

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odeplot/internal/plane"
)

// tracer writes to trace with key 'odeplot.ode2'
func tracer() tracing.Trace {
	return tracing.Select("odeplot.ode2")
}

// MaxCond is the largest 1-norm condition number of the initial-condition
// system that Solve accepts. Each row is scaled to unit max-norm first, so the
// value row and the derivative row are compared on equal terms whatever the
// size of e^(r·t) or ω.
const MaxCond = 1e12

// Conditions holds y(T0) = Y0 and y'(T1) = DY1.
type Conditions struct {
	T0  float64 `yaml:"t0" json:"t0"`
	Y0  float64 `yaml:"y0" json:"y0"`
	T1  float64 `yaml:"t1" json:"t1"`
	DY1 float64 `yaml:"dy1" json:"dy1"`
}

// Solution is the closed-form solution of y'' + A·y' + B·y = 0.
//
// For OverDamped R1 > R2 are the two roots. For CriticallyDamped R1 = R2 is
// the repeated root. For UnderDamped the roots are Alpha ± i·Omega.
type Solution struct {
	Case   Case
	A, B   float64
	R1, R2 float64
	Alpha  float64
	Omega  float64
	C1, C2 float64

	// Expr is the solution as a plain expression in x.
	Expr string
	// TeX is the solution typeset for display.
	TeX string
}

// Solve derives the real closed-form solution of y'' + a·y' + b·y = 0 with
// y(ic.T0) = ic.Y0 and y'(ic.T1) = ic.DY1.
func Solve(a, b float64, ic Conditions) (*Solution, error) {
	for _, v := range []float64{a, b, ic.T0, ic.Y0, ic.T1, ic.DY1} {
		if !plane.Finite(v) {
			return nil, ErrInvalidInput
		}
	}

	c, d := classify(a, b)
	s := &Solution{Case: c, A: a, B: b}
	switch c {
	case OverDamped:
		sq := math.Sqrt(d)
		s.R1, s.R2 = (-a+sq)/2, (-a-sq)/2
	case CriticallyDamped:
		s.R1 = -a / 2
		s.R2 = s.R1
	case UnderDamped:
		s.Alpha = -a / 2
		s.Omega = math.Sqrt(-d) / 2
	}

	u1, u2, _, _ := s.basis(ic.T0)
	_, _, du1, du2 := s.basis(ic.T1)
	m := mat.NewDense(2, 2, []float64{
		u1, u2,
		du1, du2,
	})
	rhs := mat.NewVecDense(2, []float64{ic.Y0, ic.DY1})
	equilibrate(m, rhs)

	cond := mat.Cond(m, 1)
	tracer().Debugf("%s: a=%g b=%g D=%g cond=%.3g", c, a, b, d, cond)
	if math.IsNaN(cond) || cond > MaxCond {
		return nil, &DegenerateError{Case: c, Cond: cond}
	}

	// Cramer's rule: a tiny coefficient pinned by one row keeps its relative
	// precision.
	det := mat.Det(m)
	if det == 0 {
		return nil, &DegenerateError{Case: c, Cond: cond, Err: mat.ErrSingular}
	}
	r1, r2 := rhs.AtVec(0), rhs.AtVec(1)
	s.C1 = (r1*m.At(1, 1) - m.At(0, 1)*r2) / det
	s.C2 = (m.At(0, 0)*r2 - r1*m.At(1, 0)) / det
	zapNoise(m, rhs, cond, &s.C1, &s.C2)
	if !plane.Finite(s.C1) || !plane.Finite(s.C2) {
		return nil, &DegenerateError{Case: c, Cond: cond}
	}

	s.Expr = s.plain("x")
	s.TeX = s.tex("x")
	return s, nil
}

// basis returns the two fundamental solutions and their derivatives at t.
func (s *Solution) basis(t float64) (u1, u2, du1, du2 float64) {
	switch s.Case {
	case OverDamped:
		e1, e2 := math.Exp(s.R1*t), math.Exp(s.R2*t)
		return e1, e2, s.R1 * e1, s.R2 * e2
	case CriticallyDamped:
		e := math.Exp(s.R1 * t)
		return e, t * e, s.R1 * e, (1 + s.R1*t) * e
	default:
		e := math.Exp(s.Alpha * t)
		sin, cos := math.Sincos(s.Omega * t)
		return e * cos, e * sin,
			e * (s.Alpha*cos - s.Omega*sin),
			e * (s.Alpha*sin + s.Omega*cos)
	}
}

// Eval returns y(t).
func (s *Solution) Eval(t float64) float64 {
	u1, u2, _, _ := s.basis(t)
	return s.C1*u1 + s.C2*u2
}

// Deriv returns y'(t).
func (s *Solution) Deriv(t float64) float64 {
	_, _, du1, du2 := s.basis(t)
	return s.C1*du1 + s.C2*du2
}

// Func returns Eval as a graphable function.
func (s *Solution) Func() plane.Func {
	return s.Eval
}

// equilibrate scales every row of m, and the matching entry of rhs, by the
// row's largest absolute entry. All-zero rows are left alone.
func equilibrate(m *mat.Dense, rhs *mat.VecDense) {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		row := m.RawRowView(i)
		k := floats.Norm(row, math.Inf(1))
		if k == 0 || !plane.Finite(k) {
			continue
		}
		floats.Scale(1/k, row)
		rhs.SetVec(i, rhs.AtVec(i)/k)
	}
}

// zapNoise clears a coefficient whose contribution to every row of the
// equilibrated system m is below the rounding error the solve can introduce.
// A small coefficient that some row depends on is kept.
func zapNoise(m *mat.Dense, rhs *mat.VecDense, cond float64, cs ...*float64) {
	noise := 2 * epsilon * math.Max(cond, 1) * math.Max(mat.Norm(rhs, math.Inf(1)), 1e-300)
	for j, c := range cs {
		col := mat.Col(nil, j, m)
		if math.Abs(*c)*floats.Norm(col, math.Inf(1)) <= noise {
			*c = 0
		}
	}
}

// epsilon is the float64 unit roundoff.
const epsilon = 0x1p-53
