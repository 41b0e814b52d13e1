package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/evergreen"
)

type cell struct {
	r     rune
	style tcell.Style
	depth float64
}

// Canvas is a depth-tested character grid. Nearer plots replace farther
// ones; Flush copies the result to a tcell.Screen.
type Canvas struct {
	w, h  int
	cells []cell
}

// NewCanvas creates an empty w×h canvas.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid if the size changed and clears it.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w != c.w || h != c.h {
		c.w, c.h = w, h
		c.cells = make([]cell, w*h)
	}
	c.Clear()
}

// Size returns the grid size in cells.
func (c *Canvas) Size() (w, h int) { return c.w, c.h }

// Clear empties every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{depth: math.Inf(1)}
	}
}

// Plot draws r at (x, y) if nothing nearer is there. Returns whether the
// cell was written.
func (c *Canvas) Plot(x, y int, depth float64, r rune, style tcell.Style) bool {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return false
	}
	cl := &c.cells[y*c.w+x]
	if depth >= cl.depth {
		return false
	}
	*cl = cell{r: r, style: style, depth: depth}
	return true
}

// At returns the rune and style at (x, y). ok is false for empty or
// out-of-range cells.
func (c *Canvas) At(x, y int) (r rune, style tcell.Style, ok bool) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0, tcell.StyleDefault, false
	}
	cl := c.cells[y*c.w+x]
	return cl.r, cl.style, cl.r != 0
}

// Flush writes every cell to s, filling empty cells with a blank in bg.
func (c *Canvas) Flush(s tcell.Screen, bg tcell.Style) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.r == 0 {
				s.SetContent(x, y, ' ', nil, bg)
				continue
			}
			s.SetContent(x, y, cl.r, nil, cl.style)
		}
	}
}

// toTcell flattens c over the night background by its alpha.
func toTcell(c evergreen.Color) tcell.Color {
	a := math.Max(0, math.Min(1, c.A))
	bg := evergreen.Night
	ch := func(v, b float64) int32 {
		v = math.Max(0, math.Min(1, v))
		return int32((b*(1-a)+v*a)*255 + 0.5)
	}
	return tcell.NewRGBColor(ch(c.R, bg.R), ch(c.G, bg.G), ch(c.B, bg.B))
}
