package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

const (
	cols = 70
	rows = 20

	// strainMark is the stretch above which a link is drawn as '*'.
	strainMark = 0.1

	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws a headless run as ASCII while it steps. It is a
// sim.Observer.
type LiveRenderer struct {
	out      io.Writer
	title    string
	interval time.Duration
	last     time.Time
	now      func() time.Time
	cells    []rune
}

// NewLiveRenderer writes to out at most frameRate times a second. A
// frameRate of zero or less draws every frame.
func NewLiveRenderer(out io.Writer, title string, frameRate int) *LiveRenderer {
	r := &LiveRenderer{
		out:   out,
		title: title,
		now:   time.Now,
		cells: make([]rune, cols*rows),
	}
	if frameRate > 0 {
		r.interval = time.Second / time.Duration(frameRate)
	}
	return r
}

func (r *LiveRenderer) OnFrame(c *cloth.Cloth, f sim.Frame) {
	if r.interval > 0 {
		t := r.now()
		if t.Sub(r.last) < r.interval {
			return
		}
		r.last = t
	}

	r.clear()
	r.drawCloth(c)
	r.render(f)
}

func (r *LiveRenderer) clear() {
	for i := range r.cells {
		r.cells[i] = ' '
	}
}

func (r *LiveRenderer) at(x, y int) rune { return r.cells[y*cols+x] }

func (r *LiveRenderer) plot(x, y int, ch rune) {
	if x >= 0 && x < cols && y >= 0 && y < rows {
		r.cells[y*cols+x] = ch
	}
}

// line samples the segment once per cell along its longer axis.
func (r *LiveRenderer) line(x0, y0, x1, y1 int, ch rune) {
	dx, dy := x1-x0, y1-y0
	n := max(abs(dx), abs(dy))
	if n == 0 {
		r.plot(x0, y0, ch)
		return
	}
	for i := 0; i <= n; i++ {
		x := x0 + roundDiv(dx*i, n)
		y := y0 + roundDiv(dy*i, n)
		r.plot(x, y, ch)
	}
}

// roundDiv is a/b rounded half away from zero, for b > 0.
func roundDiv(a, b int) int {
	if a < 0 {
		return -((-a + b/2) / b)
	}
	return (a + b/2) / b
}

func (r *LiveRenderer) toCell(l cloth.Layout, p *cloth.Particle) (int, int) {
	return int(p.X / l.CanvasWidth * cols), int(p.Y / l.CanvasHeight * rows)
}

// drawCloth draws links as dots, stretched links as '*' and locked
// particles as '@'.
func (r *LiveRenderer) drawCloth(c *cloth.Cloth) {
	g, l := c.Grid(), c.Layout()
	for _, cs := range c.Constraints() {
		ch := '.'
		if cs.Strain(g) > strainMark {
			ch = '*'
		}
		x0, y0 := r.toCell(l, &g.Particles[cs.A])
		x1, y1 := r.toCell(l, &g.Particles[cs.B])
		r.line(x0, y0, x1, y1, ch)
	}
	for i := range g.Particles {
		if p := &g.Particles[i]; p.Locked {
			x, y := r.toCell(l, p)
			r.plot(x, y, '@')
		}
	}
}

func (r *LiveRenderer) render(f sim.Frame) {
	rule := "  +" + strings.Repeat("-", cols) + "+\n"

	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  %s [%s]  frame %d  t=%.2fs\n", r.title, f.Material, f.Index, f.Time)
	b.WriteString(rule)
	for y := 0; y < rows; y++ {
		b.WriteString("  |")
		b.WriteString(string(r.cells[y*cols : (y+1)*cols]))
		b.WriteString("|\n")
	}
	b.WriteString(rule)
	fmt.Fprintf(&b, "  energy=%.1f sag=%.2f strain=%.3f", f.Energy, f.Sag, f.Strain)
	if f.Pressed {
		b.WriteString("  grab")
	}
	b.WriteByte('\n')

	io.WriteString(r.out, b.String())
}

func (r *LiveRenderer) Start() { io.WriteString(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.out, showCursor) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
