package export

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/odeplot/internal/field"
	"github.com/san-kum/odeplot/internal/plane"
)

const (
	background = "#0a0a0a"
	axisColor  = "#444466"
)

// SVG collects layers drawn in world coordinates and writes them as one
// document. World y grows upwards.
type SVG struct {
	Bounds        plane.Bounds
	Width, Height int
	body          strings.Builder
}

func NewSVG(b plane.Bounds, width, height int) *SVG {
	return &SVG{Bounds: b, Width: width, Height: height}
}

func (s *SVG) project(v r2.Vec) (float64, float64) {
	x := (v.X - s.Bounds.XMin) / s.Bounds.X().Len() * float64(s.Width)
	y := float64(s.Height) - (v.Y-s.Bounds.YMin)/s.Bounds.Y().Len()*float64(s.Height)
	return x, y
}

// Axes draws the coordinate axes that fall inside the bounds.
func (s *SVG) Axes() {
	b := s.Bounds
	if b.Y().Contains(0) {
		s.line(r2.Vec{X: b.XMin, Y: 0}, r2.Vec{X: b.XMax, Y: 0}, axisColor, 1)
	}
	if b.X().Contains(0) {
		s.line(r2.Vec{X: 0, Y: b.YMin}, r2.Vec{X: 0, Y: b.YMax}, axisColor, 1)
	}
}

// Polylines adds one path per line. Lines with fewer than two points are
// skipped.
func (s *SVG) Polylines(lines []plane.Polyline, stroke string) {
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		s.body.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
		for i, p := range line {
			x, y := s.project(p)
			if i == 0 {
				s.body.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				s.body.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		s.body.WriteString("\"/>\n")
	}
}

func (s *SVG) Segments(segs []field.Segment, stroke string) {
	for _, seg := range segs {
		s.line(seg.From, seg.To, stroke, 1)
	}
}

// Marker adds a dot at v.
func (s *SVG) Marker(v r2.Vec, fill string) {
	x, y := s.project(v)
	s.body.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", x, y, fill))
}

func (s *SVG) line(a, b r2.Vec, stroke string, width float64) {
	x0, y0 := s.project(a)
	x1, y1 := s.project(b)
	s.body.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%g"/>`+"\n",
		x0, y0, x1, y1, stroke, width))
}

func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, background))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// PolylinesToSVG renders curves over axes.
func PolylinesToSVG(b plane.Bounds, lines []plane.Polyline, width, height int, stroke string) string {
	s := NewSVG(b, width, height)
	s.Axes()
	s.Polylines(lines, stroke)
	return s.String()
}

// SegmentsToSVG renders a direction field over axes.
func SegmentsToSVG(b plane.Bounds, segs []field.Segment, width, height int, stroke string) string {
	s := NewSVG(b, width, height)
	s.Axes()
	s.Segments(segs, stroke)
	return s.String()
}
