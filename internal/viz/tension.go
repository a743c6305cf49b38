package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/clothsim/internal/cloth"
)

const (
	tensionBands    = 6
	tensionFullBar  = 0.5
	springFrequency = 6.0
	springDamping   = 0.8
)

// tensionGauge shows the peak link strain of horizontal bands of the cloth,
// top band first. Bars ease toward their targets instead of jumping.
type tensionGauge struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newTensionGauge(bands int) *tensionGauge {
	return &tensionGauge{
		spring: harmonica.NewSpring(harmonica.FPS(60), springFrequency, springDamping),
		pos:    make([]float64, bands),
		vel:    make([]float64, bands),
	}
}

func (t *tensionGauge) update(c *cloth.Cloth) {
	for i, target := range bandStrain(c, len(t.pos)) {
		t.pos[i], t.vel[i] = t.spring.Update(t.pos[i], t.vel[i], target)
	}
}

func (t *tensionGauge) reset() {
	clear(t.pos)
	clear(t.vel)
}

// bandStrain splits the rows of c into bands and returns the largest
// stretch of any link starting in each band. Compressed links count as zero.
func bandStrain(c *cloth.Cloth, bands int) []float64 {
	out := make([]float64, bands)
	if bands == 0 {
		return out
	}
	g := c.Grid()
	rows := c.Layout().Height
	for _, cs := range c.Constraints() {
		_, row := g.Coords(cs.A)
		b := min(row*bands/rows, bands-1)
		out[b] = max(out[b], cs.Strain(g))
	}
	return out
}

func (t *tensionGauge) render(width int, th Theme) string {
	high := lipgloss.NewStyle().Foreground(th.Error)
	mid := lipgloss.NewStyle().Foreground(th.Warning)
	low := lipgloss.NewStyle().Foreground(th.Success)

	var s strings.Builder
	for i, v := range t.pos {
		n := min(max(int(v/tensionFullBar*float64(width)+0.5), 0), width)
		bar := strings.Repeat("█", n)
		switch {
		case v > 0.3:
			bar = high.Render(bar)
		case v > 0.1:
			bar = mid.Render(bar)
		default:
			bar = low.Render(bar)
		}
		fmt.Fprintf(&s, "%d %s%s %5.3f\n", i+1, bar, strings.Repeat(" ", width-n), v)
	}
	return s.String()
}
