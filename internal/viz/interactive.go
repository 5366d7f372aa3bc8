package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/odeplot/internal/config"
	"github.com/san-kum/odeplot/internal/field"
	"github.com/san-kum/odeplot/internal/graph"
	"github.com/san-kum/odeplot/internal/integrators"
	"github.com/san-kum/odeplot/internal/ode2"
	"github.com/san-kum/odeplot/internal/parser"
	"github.com/san-kum/odeplot/internal/plane"
)

// tracer writes to trace with key 'odeplot.viz'
func tracer() tracing.Trace {
	return tracing.Select("odeplot.viz")
}

type mode int

const (
	modeGraph mode = iota
	modeField
)

func (m mode) String() string {
	if m == modeField {
		return "slope field"
	}
	return "graph"
}

const (
	panFraction = 0.1
	zoomIn      = 0.8
	zoomOut     = 1.25
	seedFactor  = 0.05
)

type model struct {
	cfg     *config.Config
	mode    mode
	input   textinput.Model
	bounds  plane.Bounds
	seed    r2.Vec
	fnSrc   string
	rateSrc string
	fn      plane.Func
	rate    plane.RateFunc
	stepper integrators.Stepper
	theme   int
	fnErr   error
	rateErr error

	width, height int
}

// NewInteractiveApp builds the explorer from cfg. An expression that does not
// parse is reported in the view, not returned.
func NewInteractiveApp(cfg *config.Config) *model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48

	m := &model{
		cfg:     cfg,
		input:   ti,
		bounds:  cfg.Bounds,
		fnSrc:   cfg.Function,
		rateSrc: cfg.Rate,
		width:   cfg.Canvas.Width + 4,
		height:  cfg.Canvas.Height + 8,
	}
	if seeds := cfg.SeedPoints(); len(seeds) > 0 {
		m.seed = seeds[0]
	} else {
		m.seed = r2.Vec{X: cfg.Bounds.X().Mid(), Y: cfg.Bounds.Y().Mid()}
	}
	if s, err := integrators.Lookup(cfg.Integrator); err == nil {
		m.stepper = s
	} else {
		m.stepper = integrators.NewRK4()
	}
	m.compileFunc(m.fnSrc)
	m.compileRate(m.rateSrc)
	m.syncInput()
	return m
}

func (m *model) compileFunc(src string) {
	f, err := parser.Func1(src)
	if err != nil {
		m.fnErr = err
		return
	}
	m.fnSrc, m.fn, m.fnErr = src, f, nil
}

func (m *model) compileRate(src string) {
	f, err := parser.Func2(src)
	if err != nil {
		m.rateErr = err
		return
	}
	m.rateSrc, m.rate, m.rateErr = src, f, nil
}

// err is the last compile error of the expression the current mode plots.
func (m model) err() error {
	if m.mode == modeField {
		return m.rateErr
	}
	return m.fnErr
}

func (m *model) syncInput() {
	if m.mode == modeField {
		m.input.Prompt = "dy/dx = "
		m.input.SetValue(m.rateSrc)
	} else {
		m.input.Prompt = "y = "
		m.input.SetValue(m.fnSrc)
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.input.Focused() {
			return m.editKey(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		src := strings.TrimSpace(m.input.Value())
		if m.mode == modeField {
			m.compileRate(src)
		} else {
			m.compileFunc(src)
		}
		m.input.Blur()
		return m, nil
	case "esc":
		m.input.Blur()
		m.syncInput()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/", "i", "enter":
		return m, m.input.Focus()
	case "tab":
		if m.mode == modeGraph {
			m.mode = modeField
		} else {
			m.mode = modeGraph
		}
		m.syncInput()
	case "left":
		m.bounds = m.bounds.Pan(-panFraction, 0)
	case "right":
		m.bounds = m.bounds.Pan(panFraction, 0)
	case "up":
		m.bounds = m.bounds.Pan(0, panFraction)
	case "down":
		m.bounds = m.bounds.Pan(0, -panFraction)
	case "+", "=":
		m.bounds = m.bounds.Zoom(zoomIn)
	case "-", "_":
		m.bounds = m.bounds.Zoom(zoomOut)
	case "w":
		m.seed.Y += seedFactor * m.bounds.Y().Len()
	case "s":
		m.seed.Y -= seedFactor * m.bounds.Y().Len()
	case "a":
		m.seed.X -= seedFactor * m.bounds.X().Len()
	case "d":
		m.seed.X += seedFactor * m.bounds.X().Len()
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
	case "r":
		m.bounds = m.cfg.Bounds
		if seeds := m.cfg.SeedPoints(); len(seeds) > 0 {
			m.seed = seeds[0]
		}
	}
	return m, nil
}

func (m model) canvasSize() (int, int) {
	w, h := m.width-4, m.height-8
	if w < 20 {
		w = 20
	}
	if h < 8 {
		h = 8
	}
	return w, h
}

// layers returns one canvas per plot layer, bottom first.
func (m model) layers() []*Canvas {
	w, h := m.canvasSize()
	axes := NewPlot(w, h, m.bounds)
	marks := NewPlot(w, h, m.bounds)
	curves := NewPlot(w, h, m.bounds)
	seed := NewPlot(w, h, m.bounds)
	axes.DrawAxes()

	switch m.mode {
	case modeGraph:
		if m.fn == nil {
			break
		}
		dots, _ := curves.Dots()
		step := m.bounds.X().Len() / float64(dots)
		for _, line := range graph.Graph(m.fn, m.bounds, step) {
			curves.DrawPolyline(line)
		}
	case modeField:
		if m.rate == nil {
			break
		}
		marks.DrawSegments(field.Compute(m.rate, m.bounds, m.cfg.Field.NX, m.cfg.Field.NY))
		line, err := integrators.TraceWith(m.stepper, m.rate, m.seed, m.bounds, m.traceStep())
		if err != nil {
			tracer().Debugf("seed %v: %v", m.seed, err)
		}
		curves.DrawPolyline(line)
		seed.DrawMarker(m.seed)
	}
	return []*Canvas{axes.Canvas, marks.Canvas, curves.Canvas, seed.Canvas}
}

func (m model) traceStep() float64 {
	if m.cfg.TraceStep > 0 {
		return m.cfg.TraceStep
	}
	return config.DefaultTraceStep
}

func (m model) View() string {
	th := Themes[m.theme]
	var b strings.Builder

	b.WriteString(Title.Render("ODEPLOT") + "  " + Subtle.Render(m.mode.String()) + "\n")
	b.WriteString(Metric("x", fmt.Sprintf("[%s, %s]", ode2.FormatNumber(m.bounds.XMin), ode2.FormatNumber(m.bounds.XMax))) + "  ")
	b.WriteString(Metric("y", fmt.Sprintf("[%s, %s]", ode2.FormatNumber(m.bounds.YMin), ode2.FormatNumber(m.bounds.YMax))))
	if m.mode == modeField {
		b.WriteString("  " + Metric("seed", fmt.Sprintf("(%s, %s)", ode2.FormatNumber(m.seed.X), ode2.FormatNumber(m.seed.Y))))
	}
	b.WriteString("\n")

	plot := Compose(m.layers(), []lipgloss.Color{th.Axes, th.Field, th.Curve, th.Seed})
	b.WriteString(Panel.Render(strings.TrimSuffix(plot, "\n")) + "\n")

	if m.input.Focused() {
		b.WriteString(m.input.View() + "\n")
	} else {
		b.WriteString(Subtle.Render(m.input.Prompt+m.input.Value()) + "\n")
	}
	if err := m.err(); err != nil {
		b.WriteString(ErrorText.Render(err.Error()) + "\n")
	}

	if m.mode == modeField {
		b.WriteString(Hints("/", "edit", "tab", "graph", "←↑↓→", "pan", "+/-", "zoom", "wasd", "seed", "t", th.Name, "r", "reset", "q", "quit"))
	} else {
		b.WriteString(Hints("/", "edit", "tab", "field", "←↑↓→", "pan", "+/-", "zoom", "t", th.Name, "r", "reset", "q", "quit"))
	}
	return b.String()
}

func RunInteractive(cfg *config.Config) error {
	_, err := tea.NewProgram(NewInteractiveApp(cfg), tea.WithAltScreen()).Run()
	return err
}
