package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/clothsim/internal/cloth"
)

const (
	background  = "#0a0a0a"
	linkColor   = "#9a9a9a"
	dotColor    = "#ffffff"
	lockedColor = "#ff3030"
)

// ClothToSVG draws the cloth's constraints as lines and its particles as
// dots, scaled from the layout canvas to width x height. Locked particles
// are red.
func ClothToSVG(c *cloth.Cloth, width, height int) string {
	if c == nil || width <= 0 || height <= 0 {
		return ""
	}

	l := c.Layout()
	sx := float64(width) / l.CanvasWidth
	sy := float64(height) / l.CanvasHeight
	g := c.Grid()

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g stroke="%s" stroke-width="1">
`, width, height, width, height, background, linkColor)

	for _, cs := range c.Constraints() {
		a, b := &g.Particles[cs.A], &g.Particles[cs.B]
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, a.X*sx, a.Y*sy, b.X*sx, b.Y*sy)
	}
	sb.WriteString("</g>\n")

	r := 2 * min(sx, sy)
	for i := range g.Particles {
		p := &g.Particles[i]
		fill := dotColor
		if p.Locked {
			fill = lockedColor
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, p.X*sx, p.Y*sy, r, fill)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots a frame series (energy, sag, strain) as a polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 || width <= 0 || height <= 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	step := float64(width) / float64(len(values)-1)
	for i, v := range values {
		x := float64(i) * step
		y := float64(height) - (v-lo)/span*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
