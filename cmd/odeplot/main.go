package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/odeplot/internal/config"
	"github.com/san-kum/odeplot/internal/export"
	"github.com/san-kum/odeplot/internal/field"
	"github.com/san-kum/odeplot/internal/graph"
	"github.com/san-kum/odeplot/internal/integrators"
	"github.com/san-kum/odeplot/internal/ode2"
	"github.com/san-kum/odeplot/internal/parser"
	"github.com/san-kum/odeplot/internal/plane"
	"github.com/san-kum/odeplot/internal/viz"
)

var (
	xMin, xMax float64
	yMin, yMax float64
	step       float64
	traceStep  float64
	tol        float64
	integrator string
	seeds      []string
	nx, ny     int
	width      int
	height     int
	svgPath    string
	jsonPath   string
	configFile string
	preset     string
	traceLevel string
	// second-order problem
	coefA, coefB float64
	t0, y0       float64
	t1, dy1      float64
	plotSolution bool
)

var traceKeys = []string{
	"odeplot.plane",
	"odeplot.integrators",
	"odeplot.graph",
	"odeplot.ode2",
	"odeplot.field",
	"odeplot.parser",
	"odeplot.viz",
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "odeplot",
		Short: "function graphs, slope fields and ODE solutions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setTraceLevel(traceLevel)
		},
		RunE: runView,
	}

	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&xMin, "xmin", -10, "left edge of the viewport")
	pf.Float64Var(&xMax, "xmax", 10, "right edge of the viewport")
	pf.Float64Var(&yMin, "ymin", -10, "bottom edge of the viewport")
	pf.Float64Var(&yMax, "ymax", 10, "top edge of the viewport")
	pf.IntVar(&width, "width", config.DefaultWidth, "terminal plot width (cells) or svg width / 10")
	pf.IntVar(&height, "height", config.DefaultHeight, "terminal plot height (cells) or svg height / 10")
	pf.StringVar(&svgPath, "svg", "", "write svg to file")
	pf.StringVar(&jsonPath, "json", "", "write json to file (- for stdout)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&traceLevel, "trace-level", "error", "log level: error, info, debug")

	graphCmd := &cobra.Command{
		Use:   "graph [expr]",
		Short: "plot y = f(x)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGraph,
	}
	graphCmd.Flags().Float64Var(&step, "step", graph.DefaultStep, "sampling step")

	traceCmd := &cobra.Command{
		Use:   "trace [rate]",
		Short: "trace solutions of dy/dx = f(x, y) through seed points",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	addTraceFlags(traceCmd)

	fieldCmd := &cobra.Command{
		Use:   "field [rate]",
		Short: "draw the slope field of dy/dx = f(x, y)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runField,
	}
	addTraceFlags(fieldCmd)
	fieldCmd.Flags().IntVar(&nx, "nx", config.DefaultFieldN, "field columns")
	fieldCmd.Flags().IntVar(&ny, "ny", config.DefaultFieldN, "field rows")

	solveCmd := &cobra.Command{
		Use:   "solve2",
		Short: "solve y'' + a*y' + b*y = 0 with y(t0) = y0, y'(t1) = dy1",
		Args:  cobra.NoArgs,
		RunE:  runSolve2,
	}
	solveCmd.Flags().Float64Var(&coefA, "a", 3, "coefficient of y'")
	solveCmd.Flags().Float64Var(&coefB, "b", 2, "coefficient of y")
	solveCmd.Flags().Float64Var(&t0, "t0", 0, "time of the value condition")
	solveCmd.Flags().Float64Var(&y0, "y0", 1, "y(t0)")
	solveCmd.Flags().Float64Var(&t1, "t1", 0, "time of the slope condition")
	solveCmd.Flags().Float64Var(&dy1, "dy1", 0, "y'(t1)")
	solveCmd.Flags().BoolVar(&plotSolution, "plot", false, "plot the solution")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "interactive explorer",
		Args:  cobra.NoArgs,
		RunE:  runView,
	}

	rootCmd.AddCommand(graphCmd, traceCmd, fieldCmd, solveCmd, presetsCmd, viewCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addTraceFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&traceStep, "step", config.DefaultTraceStep, "integration step")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator: "+strings.Join(integrators.Names(), ", "))
	cmd.Flags().StringArrayVar(&seeds, "seed", nil, "seed point x,y (repeatable)")
	cmd.Flags().Float64Var(&tol, "tol", 1e-6, "local error tolerance (rk45)")
}

func setTraceLevel(name string) error {
	var level tracing.TraceLevel
	switch strings.ToLower(name) {
	case "error", "":
		level = tracing.LevelError
	case "info":
		level = tracing.LevelInfo
	case "debug":
		level = tracing.LevelDebug
	default:
		return fmt.Errorf("unknown trace level: %s", name)
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	return nil
}

// loadConfig merges preset, config file and flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override config
	flags := cmd.Flags()
	if flags.Changed("xmin") {
		cfg.Bounds.XMin = xMin
	}
	if flags.Changed("xmax") {
		cfg.Bounds.XMax = xMax
	}
	if flags.Changed("ymin") {
		cfg.Bounds.YMin = yMin
	}
	if flags.Changed("ymax") {
		cfg.Bounds.YMax = yMax
	}
	if flags.Changed("width") {
		cfg.Canvas.Width = width
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = height
	}
	if flags.Changed("step") {
		if cmd.Name() == "graph" {
			cfg.Step = step
		} else {
			cfg.TraceStep = traceStep
		}
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("seed") {
		parsed, err := parseSeeds(seeds)
		if err != nil {
			return nil, err
		}
		cfg.Seeds = parsed
	}
	if flags.Changed("nx") {
		cfg.Field.NX = nx
	}
	if flags.Changed("ny") {
		cfg.Field.NY = ny
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseSeeds(specs []string) ([]config.SeedConfig, error) {
	out := make([]config.SeedConfig, 0, len(specs))
	for _, s := range specs {
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("seed %q: want x,y", s)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", s, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", s, err)
		}
		out = append(out, config.SeedConfig{X: x, Y: y})
	}
	return out, nil
}

func exprArg(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src := exprArg(args, cfg.Function)
	f, err := parser.Func1(src)
	if err != nil {
		return err
	}

	lines := graph.Graph(f, cfg.Bounds, cfg.Step)

	doc := export.NewDocument("graph", cfg.Bounds)
	doc.Expr = src
	doc.Step = cfg.Step
	doc.AddPolylines(lines)

	return emit(cfg, doc, func(s *export.SVG) { s.Polylines(lines, "#ff00ff") }, func(p *viz.Plot) {
		for _, line := range lines {
			p.DrawPolyline(line)
		}
	}, fmt.Sprintf("y = %s: %d polyline(s)", src, len(lines)))
}

// traceSeeds traces every configured seed with the configured method.
func traceSeeds(ctx context.Context, cfg *config.Config, f plane.RateFunc) ([]plane.Polyline, error) {
	pts := cfg.SeedPoints()
	switch cfg.Integrator {
	case "rk4":
		return integrators.TraceAll(ctx, f, pts, cfg.Bounds, cfg.TraceStep)
	case "rk45":
		lines := make([]plane.Polyline, len(pts))
		for i, p := range pts {
			line, err := integrators.TraceAdaptive(f, p, cfg.Bounds, cfg.TraceStep, tol)
			if err != nil {
				fmt.Fprintf(os.Stderr, "seed (%g, %g): %v\n", p.X, p.Y, err)
				continue
			}
			lines[i] = line
		}
		return lines, nil
	}

	stepper, err := integrators.Lookup(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	lines := make([]plane.Polyline, len(pts))
	for i, p := range pts {
		line, err := integrators.TraceWith(stepper, f, p, cfg.Bounds, cfg.TraceStep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed (%g, %g): %v\n", p.X, p.Y, err)
			continue
		}
		lines[i] = line
	}
	return lines, nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src := exprArg(args, cfg.Rate)
	f, err := parser.Func2(src)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lines, err := traceSeeds(ctx, cfg, f)
	if err != nil {
		return err
	}

	doc := export.NewDocument("trace", cfg.Bounds)
	doc.Expr = src
	doc.Step = cfg.TraceStep
	doc.Integrator = cfg.Integrator
	doc.AddPolylines(lines)

	pts := cfg.SeedPoints()
	summary := fmt.Sprintf("dy/dx = %s (%s, h=%g)", src, cfg.Integrator, cfg.TraceStep)
	for i, line := range lines {
		summary += fmt.Sprintf("\n  seed (%g, %g): %d point(s)", pts[i].X, pts[i].Y, len(line))
	}

	return emit(cfg, doc, func(s *export.SVG) {
		s.Polylines(lines, "#ffd700")
		for _, p := range pts {
			s.Marker(p, "#ff4444")
		}
	}, func(p *viz.Plot) {
		for _, line := range lines {
			p.DrawPolyline(line)
		}
		for _, pt := range pts {
			p.DrawMarker(pt)
		}
	}, summary)
}

func runField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src := exprArg(args, cfg.Rate)
	f, err := parser.Func2(src)
	if err != nil {
		return err
	}

	segs := field.Compute(f, cfg.Bounds, cfg.Field.NX, cfg.Field.NY)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	lines, err := traceSeeds(ctx, cfg, f)
	if err != nil {
		return err
	}

	doc := export.NewDocument("field", cfg.Bounds)
	doc.Expr = src
	doc.AddSegments(segs)
	doc.AddPolylines(lines)

	return emit(cfg, doc, func(s *export.SVG) {
		s.Segments(segs, "#00a8cc")
		s.Polylines(lines, "#ffd700")
	}, func(p *viz.Plot) {
		p.DrawSegments(segs)
		for _, line := range lines {
			p.DrawPolyline(line)
		}
	}, fmt.Sprintf("dy/dx = %s: %d segment(s) on a %dx%d grid", src, len(segs), cfg.Field.NX, cfg.Field.NY))
}

func runSolve2(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// CLI flags override config
	sc := cfg.Second
	flags := cmd.Flags()
	if flags.Changed("a") {
		sc.A = coefA
	}
	if flags.Changed("b") {
		sc.B = coefB
	}
	if flags.Changed("t0") {
		sc.T0 = t0
	}
	if flags.Changed("y0") {
		sc.Y0 = y0
	}
	if flags.Changed("t1") {
		sc.T1 = t1
	}
	if flags.Changed("dy1") {
		sc.DY1 = dy1
	}

	sol, err := ode2.Solve(sc.A, sc.B, ode2.Conditions{T0: sc.T0, Y0: sc.Y0, T1: sc.T1, DY1: sc.DY1})
	if err != nil {
		return fmt.Errorf("y'' + %g*y' + %g*y = 0: %w", sc.A, sc.B, err)
	}

	if jsonPath != "" || svgPath != "" {
		lines := graph.Graph(sol.Func(), cfg.Bounds, cfg.Step)
		doc := export.NewDocument("solve2", cfg.Bounds)
		doc.Expr = sol.Expr
		doc.Step = cfg.Step
		doc.AddPolylines(lines)
		doc.SetSolution(sol)
		if err := writeOutputs(cfg, doc, func(s *export.SVG) { s.Polylines(lines, "#ff00ff") }); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "equation\ty'' + %s*y' + %s*y = 0\n", ode2.FormatNumber(sc.A), ode2.FormatNumber(sc.B))
	fmt.Fprintf(w, "conditions\ty(%s) = %s, y'(%s) = %s\n",
		ode2.FormatNumber(sc.T0), ode2.FormatNumber(sc.Y0), ode2.FormatNumber(sc.T1), ode2.FormatNumber(sc.DY1))
	fmt.Fprintf(w, "case\t%s\n", sol.Case)
	switch sol.Case {
	case ode2.UnderDamped:
		fmt.Fprintf(w, "roots\t%s ± %si\n", ode2.FormatNumber(sol.Alpha), ode2.FormatNumber(sol.Omega))
	case ode2.CriticallyDamped:
		fmt.Fprintf(w, "root\t%s (double)\n", ode2.FormatNumber(sol.R1))
	default:
		fmt.Fprintf(w, "roots\t%s, %s\n", ode2.FormatNumber(sol.R1), ode2.FormatNumber(sol.R2))
	}
	fmt.Fprintf(w, "y(x)\t%s\n", sol.Expr)
	fmt.Fprintf(w, "tex\t%s\n", sol.TeX)
	w.Flush()

	if plotSolution {
		xs := floats.Span(make([]float64, cfg.Canvas.Width), cfg.Bounds.XMin, cfg.Bounds.XMax)
		data := make([]float64, len(xs))
		for i, x := range xs {
			data[i] = sol.Eval(x)
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(cfg.Canvas.Height/2),
			asciigraph.Width(cfg.Canvas.Width),
			asciigraph.Caption(fmt.Sprintf("y(x) on [%s, %s]", ode2.FormatNumber(cfg.Bounds.XMin), ode2.FormatNumber(cfg.Bounds.XMax))),
		))
	}
	return nil
}

// emit writes the requested files, or draws to the terminal when none are.
func emit(cfg *config.Config, doc *export.Document, svg func(*export.SVG), term func(*viz.Plot), summary string) error {
	if jsonPath != "" || svgPath != "" {
		return writeOutputs(cfg, doc, svg)
	}

	p := viz.NewPlot(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Bounds)
	axes := viz.NewPlot(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Bounds)
	axes.DrawAxes()
	term(p)
	th := viz.Themes[0]
	fmt.Print(viz.Compose([]*viz.Canvas{axes.Canvas, p.Canvas}, []lipgloss.Color{th.Axes, th.Curve}))
	fmt.Println(summary)
	return nil
}

func writeOutputs(cfg *config.Config, doc *export.Document, draw func(*export.SVG)) error {
	if svgPath != "" {
		s := export.NewSVG(cfg.Bounds, cfg.Canvas.Width*10, cfg.Canvas.Height*20)
		s.Axes()
		draw(s)
		f, err := os.Create(svgPath)
		if err != nil {
			return err
		}
		if _, err := s.WriteTo(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", svgPath)
	}
	if jsonPath != "" {
		if err := export.WriteJSONFile(jsonPath, doc); err != nil {
			return err
		}
		if jsonPath != "-" {
			fmt.Fprintf(os.Stderr, "wrote %s\n", jsonPath)
		}
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFUNCTION\tRATE\tINTEGRATOR\tSEEDS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", name, p.Function, p.Rate, p.Integrator, len(p.Seeds))
	}
	return w.Flush()
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunInteractive(cfg)
}
