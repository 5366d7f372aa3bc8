package integrators

import "github.com/san-kum/odeplot/internal/plane"

// RK4 is the classic fourth-order Runge-Kutta stepper.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

// Step advances y by one step of size h (negative h steps backward).
func (r *RK4) Step(f plane.RateFunc, x, y, h float64) float64 {
	half := h * 0.5

	k1 := plane.Safe2(f, x, y)
	k2 := plane.Safe2(f, x+half, y+half*k1)
	k3 := plane.Safe2(f, x+half, y+half*k2)
	k4 := plane.Safe2(f, x+h, y+h*k3)

	return y + h/6.0*(k1+2*k2+2*k3+k4)
}
