package ode2

import (
	"math"
	"strconv"
	"strings"
)

// SigDigits is the number of significant digits printed for coefficients.
const SigDigits = 4

// Magnitudes outside [sciLow, sciHigh) are printed in scientific notation.
const (
	sciLow  = 1e-3
	sciHigh = 1e5
)

func roundSig(v float64, digits int) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	k := digits - 1 - int(math.Floor(math.Log10(math.Abs(v))))
	if k >= 0 {
		p := math.Pow(10, float64(k))
		return math.Round(v*p) / p
	}
	q := math.Pow(10, float64(-k))
	return math.Round(v/q) * q
}

// split returns the mantissa and exponent of v for scientific notation.
// ok is false when v prints better in positional form.
func split(v float64) (mant string, exp int, ok bool) {
	a := math.Abs(v)
	if a == 0 || (a >= sciLow && a < sciHigh) {
		return "", 0, false
	}
	s := strconv.FormatFloat(v, 'e', SigDigits-1, 64)
	i := strings.IndexByte(s, 'e')
	mant = s[:i]
	if strings.Contains(mant, ".") {
		mant = strings.TrimRight(strings.TrimRight(mant, "0"), ".")
	}
	exp, _ = strconv.Atoi(s[i+1:])
	return mant, exp, true
}

// FormatNumber prints v with SigDigits significant digits, switching to
// 1.5e-7 style for very large or very small magnitudes.
func FormatNumber(v float64) string {
	if mant, exp, ok := split(v); ok {
		return mant + "e" + strconv.Itoa(exp)
	}
	return strconv.FormatFloat(roundSig(v, SigDigits), 'f', -1, 64)
}

// FormatTeX is FormatNumber for TeX: 1.5 \times 10^{-7}.
func FormatTeX(v float64) string {
	if mant, exp, ok := split(v); ok {
		return mant + ` \times 10^{` + strconv.Itoa(exp) + `}`
	}
	return strconv.FormatFloat(roundSig(v, SigDigits), 'f', -1, 64)
}

// term is coef·body; an empty body stands for the constant 1.
type term struct {
	coef float64
	body string
}

type printer struct {
	num func(float64) string
	mul string
}

var (
	plainPrinter = printer{num: FormatNumber, mul: "*"}
	texPrinter   = printer{num: FormatTeX, mul: " "}
)

func isZero(v float64) bool { return roundSig(v, SigDigits) == 0 }
func isOne(v float64) bool  { return roundSig(v, SigDigits) == 1 }

// sum joins terms with signs, dropping zero coefficients and eliding unit ones.
func (p printer) sum(terms ...term) string {
	var b strings.Builder
	for _, t := range terms {
		if isZero(t.coef) {
			continue
		}
		neg := t.coef < 0
		mag := math.Abs(t.coef)
		switch {
		case b.Len() == 0 && neg:
			b.WriteString("-")
		case b.Len() > 0 && neg:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}
		switch {
		case t.body == "":
			b.WriteString(p.num(mag))
		case isOne(mag):
			b.WriteString(t.body)
		default:
			b.WriteString(p.num(mag) + p.mul + t.body)
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// scaled prints k·v as an argument, e.g. "2*x", "-x".
func (p printer) scaled(k float64, v string) string {
	switch {
	case isOne(k):
		return v
	case isOne(-k):
		return "-" + v
	}
	return p.num(k) + p.mul + v
}

func (p printer) exp(k float64, v string, tex bool) string {
	if isZero(k) {
		return ""
	}
	if tex {
		return "e^{" + strings.ReplaceAll(p.scaled(k, v), " ", "") + "}"
	}
	return "exp(" + p.scaled(k, v) + ")"
}

func (p printer) trig(fn string, w float64, v string, tex bool) string {
	if tex {
		return `\` + fn + "(" + strings.ReplaceAll(p.scaled(w, v), " ", "") + ")"
	}
	return fn + "(" + p.scaled(w, v) + ")"
}

// product multiplies a sum by a factor. A single positive term goes in front
// of the factor, anything else is bracketed behind it.
func (p printer) product(factor, inner, lparen, rparen string, terms int) string {
	if inner == "0" {
		return "0"
	}
	if factor == "" {
		return inner
	}
	if terms == 1 && !strings.HasPrefix(inner, "-") {
		if inner == "1" {
			return factor
		}
		return inner + p.mul + factor
	}
	if p.mul == "*" {
		return factor + "*" + lparen + inner + rparen
	}
	return factor + lparen + inner + rparen
}

func nonZero(ts ...term) int {
	n := 0
	for _, t := range ts {
		if !isZero(t.coef) {
			n++
		}
	}
	return n
}

func (s *Solution) render(v string, tex bool) string {
	p, lparen, rparen := plainPrinter, "(", ")"
	if tex {
		p, lparen, rparen = texPrinter, `\left(`, `\right)`
	}

	switch s.Case {
	case OverDamped:
		return p.sum(
			term{s.C1, p.exp(s.R1, v, tex)},
			term{s.C2, p.exp(s.R2, v, tex)},
		)
	case CriticallyDamped:
		ts := []term{{s.C1, ""}, {s.C2, v}}
		return p.product(p.exp(s.R1, v, tex), p.sum(ts...), lparen, rparen, nonZero(ts...))
	default:
		ts := []term{
			{s.C1, p.trig("cos", s.Omega, v, tex)},
			{s.C2, p.trig("sin", s.Omega, v, tex)},
		}
		return p.product(p.exp(s.Alpha, v, tex), p.sum(ts...), lparen, rparen, nonZero(ts...))
	}
}

func (s *Solution) plain(v string) string { return s.render(v, false) }
func (s *Solution) tex(v string) string   { return s.render(v, true) }
