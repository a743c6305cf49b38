package viz

import "strings"

// brailleBase is the empty braille pattern. Each cell holds a 2x4 block of
// dots numbered
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBase rune = 0x2800

// dotBit returns the pattern bit for the dot at column dx (0..1) and row
// dy (0..3) of a cell.
func dotBit(dx, dy int) rune {
	if dy == 3 {
		return 0x40 << dx
	}
	return 1 << (dy + 3*dx)
}

// Canvas is a cols x rows grid of braille cells addressed in dots, so it is
// 2*cols dots wide and 4*rows dots tall.
type Canvas struct {
	cols, rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{cols: cols, rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

func (c *Canvas) SubWidth() int  { return 2 * c.cols }
func (c *Canvas) SubHeight() int { return 4 * c.rows }

// index maps a dot to its cell, or -1 when it falls off the canvas.
func (c *Canvas) index(x, y int) int {
	if x < 0 || y < 0 || x >= c.SubWidth() || y >= c.SubHeight() {
		return -1
	}
	return (y/4)*c.cols + x/2
}

// Set lights dot (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if i := c.index(x, y); i >= 0 {
		c.cells[i] |= dotBit(x%2, y%4)
	}
}

func (c *Canvas) Get(x, y int) bool {
	i := c.index(x, y)
	return i >= 0 && c.cells[i]&dotBit(x%2, y%4) != 0
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBase
	}
}

// DrawLine lights every dot on the Bresenham line from (x0, y0) to
// (x1, y1), both ends included.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, sx := x1-x0, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y1-y0, 1
	if dy < 0 {
		dy, sy = -dy, -1
	}

	for e := dx - dy; ; {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawCross marks a plus of arm length r centred on (x, y).
func (c *Canvas) DrawCross(x, y, r int) {
	c.DrawLine(x-r, y, x+r, y)
	c.DrawLine(x, y-r, x, y+r)
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(len(c.cells)*3 + c.rows)
	for r := 0; r < c.rows; r++ {
		b.WriteString(string(c.cells[r*c.cols : (r+1)*c.cols]))
		b.WriteByte('\n')
	}
	return b.String()
}
