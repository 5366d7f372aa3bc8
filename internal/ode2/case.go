package ode2

import "math"

// Case classifies the roots of the characteristic equation.
type Case int

const (
	OverDamped Case = iota
	CriticallyDamped
	UnderDamped
)

func (c Case) String() string {
	switch c {
	case OverDamped:
		return "overdamped"
	case CriticallyDamped:
		return "critically damped"
	case UnderDamped:
		return "underdamped"
	}
	return "unknown"
}

// discriminantTol is the relative size below which D counts as zero.
const discriminantTol = 1e-12

// classify returns the case for y'' + a·y' + b·y = 0 and its discriminant,
// snapped to 0 for the critically damped case.
func classify(a, b float64) (Case, float64) {
	d := a*a - 4*b
	scale := math.Max(1, math.Max(a*a, 4*math.Abs(b)))
	switch {
	case math.Abs(d) <= discriminantTol*scale:
		return CriticallyDamped, 0
	case d > 0:
		return OverDamped, d
	}
	return UnderDamped, d
}
