package viz

import (
	"math"
	"strings"
)

// dotBits[row][col] is the bit a dot adds to U+2800 inside its Braille cell.
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Cols x Rows grid of Braille cells addressed by dot, two dots
// across and four down per cell, with (0, 0) at the top left.
type Canvas struct {
	Cols, Rows int
	cells      []uint8
}

func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{Cols: cols, Rows: rows, cells: make([]uint8, cols*rows)}
}

// Dots is the drawable size in dots.
func (c *Canvas) Dots() (w, h int) {
	return 2 * c.Cols, 4 * c.Rows
}

// locate returns the cell index and bit of dot (x, y).
func (c *Canvas) locate(x, y int) (int, uint8, bool) {
	w, h := c.Dots()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, 0, false
	}
	return (y/4)*c.Cols + x/2, dotBits[y%4][x%2], true
}

// Dot lights the dot at (x, y). Dots off the canvas are dropped.
func (c *Canvas) Dot(x, y int) {
	if i, bit, ok := c.locate(x, y); ok {
		c.cells[i] |= bit
	}
}

func (c *Canvas) Lit(x, y int) bool {
	i, bit, ok := c.locate(x, y)
	return ok && c.cells[i]&bit != 0
}

// Cell is the Braille rune at col, row.
func (c *Canvas) Cell(col, row int) rune {
	return blank + rune(c.cells[row*c.Cols+col])
}

// Line lights every dot on the straight run from (x0, y0) to (x1, y1),
// one dot per step along the longer axis.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	n := max(dx, -dx, dy, -dy)
	if n == 0 {
		c.Dot(x0, y0)
		return
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		c.Dot(x0+int(math.Round(t*float64(dx))), y0+int(math.Round(t*float64(dy))))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Rows * (3*c.Cols + 1))
	for row := 0; row < c.Rows; row++ {
		for col := 0; col < c.Cols; col++ {
			b.WriteRune(c.Cell(col, row))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
