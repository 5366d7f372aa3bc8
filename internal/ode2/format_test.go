package ode2

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Formatting", func() {
	DescribeTable("FormatNumber",
		func(in float64, want string) {
			Expect(FormatNumber(in)).To(Equal(want))
		},
		Entry("zero", 0.0, "0"),
		Entry("integer", 2.0, "2"),
		Entry("half", 0.5, "0.5"),
		Entry("rounded negative", -3.14159, "-3.142"),
		Entry("four digits", 0.1234567, "0.1235"),
		Entry("large plain", 12345.0, "12350"),
		Entry("small plain", 0.001, "0.001"),
		Entry("small scientific", 1.5e-7, "1.5e-7"),
		Entry("large scientific", 123456.0, "1.235e5"),
		Entry("negative scientific", -2e-9, "-2e-9"),
	)

	DescribeTable("FormatTeX",
		func(in float64, want string) {
			Expect(FormatTeX(in)).To(Equal(want))
		},
		Entry("plain", 1.25, "1.25"),
		Entry("large", 2.5e6, `2.5 \times 10^{6}`),
		Entry("small negative", -4e-5, `-4 \times 10^{-5}`),
	)

	DescribeTable("rendering a solution",
		func(s Solution, plain, tex string) {
			Expect(s.plain("x")).To(Equal(plain))
			Expect(s.tex("x")).To(Equal(tex))
		},
		Entry("zero root",
			Solution{Case: OverDamped, R1: 0, R2: -1, C1: 3, C2: -0.5},
			"3 - 0.5*exp(-x)", "3 - 0.5 e^{-x}"),
		Entry("free particle",
			Solution{Case: CriticallyDamped, C1: 1, C2: 2},
			"1 + 2*x", "1 + 2 x"),
		Entry("single critical term",
			Solution{Case: CriticallyDamped, R1: -2, C2: 3},
			"3*x*exp(-2*x)", "3 x e^{-2x}"),
		Entry("negative single term",
			Solution{Case: UnderDamped, Alpha: -1, Omega: 2, C2: -1},
			"exp(-x)*(-sin(2*x))", `e^{-x}\left(-\sin(2x)\right)`),
		Entry("tiny coefficient",
			Solution{Case: UnderDamped, Omega: 3, C1: 1.5e-7},
			"1.5e-7*cos(3*x)", `1.5 \times 10^{-7} \cos(3x)`),
		Entry("all zero",
			Solution{Case: UnderDamped, Alpha: -1, Omega: 1},
			"0", "0"),
	)
})
