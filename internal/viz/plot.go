package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/odeplot/internal/field"
	"github.com/san-kum/odeplot/internal/plane"
)

// Plot draws world coordinates inside Bounds onto a Canvas. World y grows
// upwards, canvas rows grow downwards.
type Plot struct {
	*Canvas
	Bounds plane.Bounds
}

func NewPlot(w, h int, b plane.Bounds) *Plot {
	return &Plot{Canvas: NewCanvas(w, h), Bounds: b}
}

// ToPixel maps v to dot coordinates. ok is false for non-finite points.
func (p *Plot) ToPixel(v r2.Vec) (x, y int, ok bool) {
	if !plane.Finite(v.X) || !plane.Finite(v.Y) {
		return 0, 0, false
	}
	w, h := p.Dots()
	sw, sh := float64(w-1), float64(h-1)
	fx := (v.X - p.Bounds.XMin) / p.Bounds.X().Len() * sw
	fy := (p.Bounds.YMax - v.Y) / p.Bounds.Y().Len() * sh
	// keep far-away points from overflowing int
	fx = math.Max(-4*sw, math.Min(5*sw, fx))
	fy = math.Max(-4*sh, math.Min(5*sh, fy))
	return int(math.Round(fx)), int(math.Round(fy)), true
}

func (p *Plot) DrawPolyline(line plane.Polyline) {
	if len(line) == 1 {
		p.DrawMarker(line[0])
		return
	}
	for i := 1; i < len(line); i++ {
		p.drawWorldLine(line[i-1], line[i])
	}
}

func (p *Plot) DrawSegments(segs []field.Segment) {
	for _, s := range segs {
		p.drawWorldLine(s.From, s.To)
	}
}

// DrawAxes draws the x and y axes when they fall inside the bounds.
func (p *Plot) DrawAxes() {
	b := p.Bounds
	if b.Y().Contains(0) {
		p.drawWorldLine(r2.Vec{X: b.XMin, Y: 0}, r2.Vec{X: b.XMax, Y: 0})
	}
	if b.X().Contains(0) {
		p.drawWorldLine(r2.Vec{X: 0, Y: b.YMin}, r2.Vec{X: 0, Y: b.YMax})
	}
}

// DrawMarker draws a small cross at v.
func (p *Plot) DrawMarker(v r2.Vec) {
	x, y, ok := p.ToPixel(v)
	if !ok {
		return
	}
	p.Dot(x, y)
	p.Dot(x-1, y)
	p.Dot(x+1, y)
	p.Dot(x, y-1)
	p.Dot(x, y+1)
}

func (p *Plot) drawWorldLine(a, b r2.Vec) {
	x0, y0, ok0 := p.ToPixel(a)
	x1, y1, ok1 := p.ToPixel(b)
	if !ok0 || !ok1 {
		return
	}
	p.Line(x0, y0, x1, y1)
}

// Compose overlays canvases of equal size, colouring each cell with the
// topmost layer that has a dot in it. Later layers are on top.
func Compose(layers []*Canvas, colors []lipgloss.Color) string {
	if len(layers) == 0 {
		return ""
	}
	styles := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		styles[i] = lipgloss.NewStyle().Foreground(c)
	}

	base := layers[0]
	var b strings.Builder
	for row := 0; row < base.Rows; row++ {
		for col := 0; col < base.Cols; col++ {
			r := rune(blank)
			top := -1
			for i, l := range layers {
				cell := l.Cell(col, row)
				if cell != blank {
					r |= cell
					top = i
				}
			}
			if top >= 0 && top < len(styles) {
				b.WriteString(styles[top].Render(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
