// Package ode2 solves the constant-coefficient linear equation
//
//	y'' + a·y' + b·y = 0,   y(t0) = y0,   y'(t1) = y1'
//
// in closed form. The characteristic discriminant D = a² - 4b selects one
// of three solution shapes:
//
//	D > 0  OverDamped        C1·e^(r1·t) + C2·e^(r2·t)
//	D = 0  CriticallyDamped  (C1 + C2·t)·e^(r·t)
//	D < 0  UnderDamped       e^(α·t)·(C1·cos(ω·t) + C2·sin(ω·t))
//
// A [Solution] evaluates the curve and carries two printed forms: a plain
// expression in x that the expression parser reads back, and TeX.
//
// When the two conditions do not pin down C1 and C2 (for example y(0) and
// y'(π/2) of y'' + y = 0), Solve reports a [DegenerateError] instead of
// returning a formula with NaN coefficients.
package ode2
