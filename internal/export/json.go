package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/odeplot/internal/field"
	"github.com/san-kum/odeplot/internal/ode2"
	"github.com/san-kum/odeplot/internal/plane"
)

// Document is the JSON form of a plot.
type Document struct {
	Kind       string          `json:"kind"`
	Expr       string          `json:"expr,omitempty"`
	Integrator string          `json:"integrator,omitempty"`
	Step       float64         `json:"step,omitempty"`
	Bounds     plane.Bounds    `json:"bounds"`
	Polylines  [][][2]float64  `json:"polylines"`
	Segments   [][2][2]float64 `json:"segments,omitempty"`
	Solution   *SolutionDoc    `json:"solution,omitempty"`
}

type SolutionDoc struct {
	Case string  `json:"case"`
	A    float64 `json:"a"`
	B    float64 `json:"b"`
	C1   float64 `json:"c1"`
	C2   float64 `json:"c2"`
	Expr string  `json:"expr"`
	TeX  string  `json:"tex"`
}

func NewDocument(kind string, b plane.Bounds) *Document {
	return &Document{Kind: kind, Bounds: b, Polylines: [][][2]float64{}}
}

func (d *Document) AddPolylines(lines []plane.Polyline) {
	for _, line := range lines {
		pts := make([][2]float64, len(line))
		for i, p := range line {
			pts[i] = [2]float64{p.X, p.Y}
		}
		d.Polylines = append(d.Polylines, pts)
	}
}

func (d *Document) AddSegments(segs []field.Segment) {
	for _, s := range segs {
		d.Segments = append(d.Segments, [2][2]float64{{s.From.X, s.From.Y}, {s.To.X, s.To.Y}})
	}
}

func (d *Document) SetSolution(s *ode2.Solution) {
	d.Solution = &SolutionDoc{
		Case: s.Case.String(),
		A:    s.A,
		B:    s.B,
		C1:   s.C1,
		C2:   s.C2,
		Expr: s.Expr,
		TeX:  s.TeX,
	}
}

func WriteJSON(w io.Writer, doc *Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// WriteJSONFile writes doc to path, or to stdout when path is "-".
func WriteJSONFile(path string, doc *Document) error {
	if path == "-" {
		return WriteJSON(os.Stdout, doc)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, doc)
}
