package config

import (
	"sort"

	"github.com/san-kum/odeplot/internal/plane"
)

var unit = plane.Bounds{XMin: -5, XMax: 5, YMin: -5, YMax: 5}

var Presets = map[string]*Config{
	"sine": {
		Function: "sin(x)", Rate: "cos(x)", Integrator: "rk4",
		Bounds: plane.Bounds{XMin: -7, XMax: 7, YMin: -2, YMax: 2},
		Step:   0.05, TraceStep: 0.05,
		Seeds:  []SeedConfig{{X: 0, Y: 0}},
	},
	"hyperbola": {
		Function: "1/x", Rate: "-y/x", Integrator: "rk4",
		Bounds: unit, Step: 0.01, TraceStep: 0.01,
		Seeds: []SeedConfig{{X: 1, Y: 1}, {X: 1, Y: -1}},
	},
	"logistic": {
		Function: "1/(1 + exp(-x))", Rate: "y*(1 - y)", Integrator: "rk45",
		Bounds: plane.Bounds{XMin: -6, XMax: 6, YMin: -0.5, YMax: 1.5},
		Step:   0.05, TraceStep: 0.1,
		Seeds:  []SeedConfig{{X: 0, Y: 0.1}, {X: 0, Y: 0.5}, {X: 0, Y: 1.2}},
	},
	"relaxation": {
		Function: "x - 1 + 2*exp(-x)", Rate: "x - y", Integrator: "rk4",
		Bounds: unit, Step: 0.1, TraceStep: 0.05,
		Seeds: []SeedConfig{{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 0, Y: 3}},
	},
	"gaussian": {
		Function: "exp(-x^2)", Rate: "-2*x*y", Integrator: "rk4",
		Bounds: plane.Bounds{XMin: -3, XMax: 3, YMin: -0.5, YMax: 1.5},
		Step:   0.05, TraceStep: 0.05,
		Seeds:  []SeedConfig{{X: 0, Y: 1}},
	},
	"damped": {
		Function: "exp(-0.5*x)*cos(2*x)", Rate: "-0.5*y", Integrator: "rk4",
		Bounds: plane.Bounds{XMin: 0, XMax: 10, YMin: -1.5, YMax: 1.5},
		Step:   0.05, TraceStep: 0.05,
		Seeds:  []SeedConfig{{X: 0, Y: 1}},
		Second: SecondConfig{A: 1, B: 4.25, Y0: 1, DY1: -0.5},
	},
	"critical": {
		Function: "exp(-x)*(1 + x)", Rate: "-y", Integrator: "rk4",
		Bounds: plane.Bounds{XMin: 0, XMax: 8, YMin: -0.5, YMax: 1.5},
		Step:   0.05, TraceStep: 0.05,
		Seeds:  []SeedConfig{{X: 0, Y: 1}},
		Second: SecondConfig{A: 2, B: 1, Y0: 1},
	},
}

// GetPreset returns a copy of the named preset with unset fields filled from
// DefaultConfig, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Function = p.Function
	cfg.Rate = p.Rate
	cfg.Bounds = p.Bounds
	cfg.Step = p.Step
	cfg.TraceStep = p.TraceStep
	cfg.Integrator = p.Integrator
	cfg.Seeds = append([]SeedConfig(nil), p.Seeds...)
	if p.Second != (SecondConfig{}) {
		cfg.Second = p.Second
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
