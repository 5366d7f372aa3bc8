// Package parser compiles user expressions into plotting functions.
//
// Expressions use the variables x (and y for rate functions), the constants
// pi and e, the arithmetic operators + - * / % ^ and the functions
// sin cos tan asin acos atan sinh cosh tanh exp ln log sqrt pow.
// Evaluation failures surface as NaN so that samplers treat them as gaps.
package parser

import (
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/npillmayer/schuko/tracing"

	"github.com/san-kum/odeplot/internal/plane"
)

// tracer writes to trace with key 'odeplot.parser'
func tracer() tracing.Trace {
	return tracing.Select("odeplot.parser")
}

// ParseError reports an expression that does not compile.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var functions = map[string]any{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"sinh": math.Sinh,
	"cosh": math.Cosh,
	"tanh": math.Tanh,
	"exp":  math.Exp,
	"ln":   math.Log,
	"log":  math.Log10,
	"sqrt": math.Sqrt,
	"pow":  math.Pow,
}

func env(vars ...string) map[string]any {
	m := make(map[string]any, len(functions)+len(vars)+2)
	for k, v := range functions {
		m[k] = v
	}
	m["pi"] = math.Pi
	m["e"] = math.E
	for _, v := range vars {
		m[v] = 0.0
	}
	return m
}

func compile(src string, vars ...string) (*vm.Program, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, &ParseError{Source: src, Err: fmt.Errorf("empty expression")}
	}
	prog, err := expr.Compile(src, expr.Env(env(vars...)))
	if err != nil {
		return nil, &ParseError{Source: src, Err: err}
	}
	return prog, nil
}

// run evaluates prog against a fresh environment; the map is per call so
// compiled functions stay safe for concurrent use.
func run(prog *vm.Program, src string, vars map[string]float64) float64 {
	e := env()
	for k, v := range vars {
		e[k] = v
	}
	out, err := expr.Run(prog, e)
	if err != nil {
		tracer().Debugf("eval %q at %v: %v", src, vars, err)
		return math.NaN()
	}
	return toFloat(out)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	}
	return math.NaN()
}

// Func1 compiles a function of x.
func Func1(src string) (plane.Func, error) {
	prog, err := compile(src, "x")
	if err != nil {
		return nil, err
	}
	return func(x float64) float64 {
		return run(prog, src, map[string]float64{"x": x})
	}, nil
}

// Func2 compiles a rate function of x and y.
func Func2(src string) (plane.RateFunc, error) {
	prog, err := compile(src, "x", "y")
	if err != nil {
		return nil, err
	}
	return func(x, y float64) float64 {
		return run(prog, src, map[string]float64{"x": x, "y": y})
	}, nil
}
