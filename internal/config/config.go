package config

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/odeplot/internal/integrators"
	"github.com/san-kum/odeplot/internal/plane"
)

const (
	DefaultStep      = 0.1
	DefaultTraceStep = 0.05
	DefaultFieldN    = 20
	DefaultWidth     = 80
	DefaultHeight    = 24
)

type Config struct {
	Function   string       `yaml:"function"`
	Rate       string       `yaml:"rate"`
	Bounds     plane.Bounds `yaml:"bounds"`
	Step       float64      `yaml:"step"`
	TraceStep  float64      `yaml:"trace_step"`
	Integrator string       `yaml:"integrator"`
	Seeds      []SeedConfig `yaml:"seeds"`
	Field      FieldConfig  `yaml:"field"`
	Second     SecondConfig `yaml:"second"`
	Canvas     CanvasConfig `yaml:"canvas"`
}

type SeedConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type FieldConfig struct {
	NX int `yaml:"nx"`
	NY int `yaml:"ny"`
}

// SecondConfig describes y'' + a·y' + b·y = 0 with y(t0) = y0, y'(t1) = dy1.
type SecondConfig struct {
	A   float64 `yaml:"a"`
	B   float64 `yaml:"b"`
	T0  float64 `yaml:"t0"`
	Y0  float64 `yaml:"y0"`
	T1  float64 `yaml:"t1"`
	DY1 float64 `yaml:"dy1"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Function:   "sin(x)",
		Rate:       "x - y",
		Bounds:     plane.DefaultBounds(),
		Step:       DefaultStep,
		TraceStep:  DefaultTraceStep,
		Integrator: "rk4",
		Seeds:      []SeedConfig{{X: 0, Y: 1}},
		Field:      FieldConfig{NX: DefaultFieldN, NY: DefaultFieldN},
		Second:     SecondConfig{A: 3, B: 2, Y0: 1},
		Canvas:     CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting that the plotting commands cannot use.
func (c *Config) Validate() error {
	if err := c.Bounds.Validate(); err != nil {
		return err
	}
	if !(c.Step > 0) {
		return fmt.Errorf("step must be positive, got %g", c.Step)
	}
	if !(c.TraceStep > 0) {
		return fmt.Errorf("trace_step must be positive, got %g", c.TraceStep)
	}
	if _, err := integrators.Lookup(c.Integrator); err != nil {
		return err
	}
	if c.Field.NX <= 0 || c.Field.NY <= 0 {
		return fmt.Errorf("field grid must be positive, got %dx%d", c.Field.NX, c.Field.NY)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	return nil
}

func (c *Config) SeedPoints() []r2.Vec {
	out := make([]r2.Vec, len(c.Seeds))
	for i, s := range c.Seeds {
		out[i] = r2.Vec{X: s.X, Y: s.Y}
	}
	return out
}
