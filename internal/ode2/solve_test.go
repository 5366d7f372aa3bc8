package ode2_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/san-kum/odeplot/internal/ode2"
)

// residual evaluates y'' + a·y' + b·y at t with finite differences.
func residual(s *ode2.Solution, t float64) float64 {
	d1 := fd.Derivative(s.Eval, t, &fd.Settings{Formula: fd.Central})
	d2 := fd.Derivative(s.Eval, t, &fd.Settings{Formula: fd.Central2nd})
	return d2 + s.A*d1 + s.B*s.Eval(t)
}

var _ = Describe("Solve", func() {
	samples := []float64{-1, 0, 0.5, 1, 2, 3}

	Context("with a positive discriminant", func() {
		var s *ode2.Solution

		BeforeEach(func() {
			var err error
			s, err = ode2.Solve(3, 2, ode2.Conditions{T0: 0, Y0: 1, T1: 0, DY1: 0})
			Expect(err).NotTo(HaveOccurred())
		})

		It("is overdamped with roots -1 and -2", func() {
			Expect(s.Case).To(Equal(ode2.OverDamped))
			Expect(s.R1).To(BeNumerically("~", -1, 1e-12))
			Expect(s.R2).To(BeNumerically("~", -2, 1e-12))
		})

		It("meets the initial conditions", func() {
			Expect(s.Eval(0)).To(BeNumerically("~", 1, 1e-12))
			Expect(s.Deriv(0)).To(BeNumerically("~", 0, 1e-12))
		})

		It("satisfies the equation", func() {
			for _, t := range samples {
				Expect(residual(s, t)).To(BeNumerically("~", 0, 1e-5), "t=%g", t)
			}
		})

		It("prints both forms", func() {
			Expect(s.Expr).To(Equal("2*exp(-x) - exp(-2*x)"))
			Expect(s.TeX).To(Equal("2 e^{-x} - e^{-2x}"))
		})
	})

	Context("with a zero discriminant", func() {
		It("is critically damped with solution (1 + t)e^-t", func() {
			s, err := ode2.Solve(2, 1, ode2.Conditions{T0: 0, Y0: 1, T1: 0, DY1: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Case).To(Equal(ode2.CriticallyDamped))
			Expect(s.C1).To(BeNumerically("~", 1, 1e-12))
			Expect(s.C2).To(BeNumerically("~", 1, 1e-12))

			for _, t := range samples {
				Expect(s.Eval(t)).To(BeNumerically("~", (1+t)*math.Exp(-t), 1e-12))
				Expect(residual(s, t)).To(BeNumerically("~", 0, 1e-5), "t=%g", t)
			}
			Expect(s.Expr).To(Equal("exp(-x)*(1 + x)"))
			Expect(s.TeX).To(Equal(`e^{-x}\left(1 + x\right)`))
		})

		It("treats a discriminant lost in rounding as zero", func() {
			s, err := ode2.Solve(0.2, 0.01+1e-18, ode2.Conditions{Y0: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Case).To(Equal(ode2.CriticallyDamped))
		})
	})

	Context("with a negative discriminant", func() {
		It("reduces to cos(t) for y'' + y = 0", func() {
			s, err := ode2.Solve(0, 1, ode2.Conditions{T0: 0, Y0: 1, T1: 0, DY1: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Case).To(Equal(ode2.UnderDamped))
			Expect(s.Omega).To(BeNumerically("~", 1, 1e-12))

			for t := -5.0; t <= 5; t += 0.25 {
				Expect(s.Eval(t)).To(BeNumerically("~", math.Cos(t), 1e-12))
			}
			Expect(s.Expr).To(Equal("cos(x)"))
			Expect(s.TeX).To(Equal(`\cos(x)`))
		})

		It("decays when damped", func() {
			s, err := ode2.Solve(1, 4, ode2.Conditions{T0: 0, Y0: 0, T1: 0, DY1: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Case).To(Equal(ode2.UnderDamped))
			Expect(s.Alpha).To(BeNumerically("~", -0.5, 1e-12))
			for _, t := range samples {
				Expect(residual(s, t)).To(BeNumerically("~", 0, 1e-5), "t=%g", t)
			}
			Expect(s.Expr).To(HaveSuffix("*exp(-0.5*x)"))
		})
	})

	It("honours conditions given at different times", func() {
		s, err := ode2.Solve(0, 4, ode2.Conditions{T0: 1, Y0: 2, T1: 0.5, DY1: -1})
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Eval(1)).To(BeNumerically("~", 2, 1e-9))
		Expect(s.Deriv(0.5)).To(BeNumerically("~", -1, 1e-9))
	})

	Context("with conditions far apart in scale", func() {
		It("solves an overdamped system whose derivative row has decayed", func() {
			s, err := ode2.Solve(3, 2, ode2.Conditions{T0: 0, Y0: 1, T1: 30, DY1: 0})
			Expect(err).NotTo(HaveOccurred())

			want := -2 * math.Exp(-30) / (1 - 2*math.Exp(-30))
			Expect(s.C1).To(BeNumerically("~", want, 1e-9*math.Abs(want)))
			Expect(s.C2).To(BeNumerically("~", 1, 1e-12))
			Expect(s.Eval(0)).To(BeNumerically("~", 1, 1e-12))
			Expect(s.Deriv(30)).To(BeNumerically("~", 0, 1e-30))
		})

		It("solves a damped oscillation with a late derivative condition", func() {
			s, err := ode2.Solve(2, 5, ode2.Conditions{T0: 0, Y0: 1, T1: 30, DY1: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Case).To(Equal(ode2.UnderDamped))
			Expect(s.C1).To(BeNumerically("~", 1, 1e-12))
			Expect(s.Eval(0)).To(BeNumerically("~", 1, 1e-12))
			Expect(s.Deriv(30)).To(BeNumerically("~", 0, 1e-24))
		})

		It("keeps a small coefficient the conditions depend on", func() {
			s, err := ode2.Solve(0, 1e30, ode2.Conditions{T0: 0, Y0: 1, T1: 0, DY1: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Omega).To(BeNumerically("~", 1e15, 1))
			Expect(s.C1).To(BeNumerically("~", 1, 1e-12))
			Expect(s.C2).To(BeNumerically("~", 1e-15, 1e-27))
			Expect(s.Deriv(0)).To(BeNumerically("~", 1, 1e-12))
		})
	})

	It("reports degenerate conditions instead of NaN", func() {
		// y(0) and y'(π/2) of y'' + y = 0 both only see the cos term
		s, err := ode2.Solve(0, 1, ode2.Conditions{T0: 0, Y0: 1, T1: math.Pi / 2, DY1: 0})
		Expect(s).To(BeNil())
		Expect(err).To(MatchError(ode2.ErrDegenerate))

		var de *ode2.DegenerateError
		Expect(errors.As(err, &de)).To(BeTrue())
		Expect(de.Case).To(Equal(ode2.UnderDamped))
		Expect(de.Cond).To(BeNumerically(">", ode2.MaxCond))
	})

	It("rejects non-finite input", func() {
		_, err := ode2.Solve(math.NaN(), 1, ode2.Conditions{})
		Expect(err).To(MatchError(ode2.ErrInvalidInput))
		_, err = ode2.Solve(1, 1, ode2.Conditions{Y0: math.Inf(1)})
		Expect(err).To(MatchError(ode2.ErrInvalidInput))
	})

	It("graphs through Func", func() {
		s, err := ode2.Solve(0, 1, ode2.Conditions{Y0: 1})
		Expect(err).NotTo(HaveOccurred())
		f := s.Func()
		Expect(f(math.Pi)).To(BeNumerically("~", -1, 1e-12))
	})
})
