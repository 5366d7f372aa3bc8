package integrators

import "github.com/san-kum/odeplot/internal/plane"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(f plane.RateFunc, x, y, h float64) float64 {
	return y + h*plane.Safe2(f, x, y)
}
