package cloth

import (
	"fmt"
	"math"
)

// Particle is a point mass. Position history (X, Y vs OldX, OldY) is the
// integration source of truth; VX and VY are derived each force pass.
type Particle struct {
	X, Y           float64
	OldX, OldY     float64
	VX, VY         float64
	ForceX, ForceY float64
	Mass           float64
	Locked         bool
	Material       Material
}

func (p *Particle) elasticity(fallback float64) float64 {
	if p.Material == nil {
		return fallback
	}
	return p.Material.Props().Elasticity
}

// Speed returns the magnitude of the last derived velocity.
func (p *Particle) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

// Layout describes the rest shape of the cloth and the canvas it hangs in.
type Layout struct {
	Width        int     `json:"width" yaml:"width"`
	Height       int     `json:"height" yaml:"height"`
	Spacing      float64 `json:"spacing" yaml:"spacing"`
	CanvasWidth  float64 `json:"canvas_width" yaml:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height" yaml:"canvas_height"`
}

const (
	DefaultGridWidth    = 50
	DefaultGridHeight   = 30
	DefaultSpacing      = 15.0
	DefaultCanvasWidth  = 800.0
	DefaultCanvasHeight = 600.0
)

func DefaultLayout() Layout {
	return Layout{
		Width:        DefaultGridWidth,
		Height:       DefaultGridHeight,
		Spacing:      DefaultSpacing,
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
	}
}

// Validate rejects layouts that cannot be seeded.
func (l Layout) Validate() error {
	if l.Width <= 0 {
		return &ConfigError{Field: "width", Value: l.Width, Wrapped: ErrInvalidLayout}
	}
	if l.Height <= 0 {
		return &ConfigError{Field: "height", Value: l.Height, Wrapped: ErrInvalidLayout}
	}
	if !positive(l.Spacing) {
		return &ConfigError{Field: "spacing", Value: l.Spacing, Wrapped: ErrInvalidLayout}
	}
	if !positive(l.CanvasWidth) {
		return &ConfigError{Field: "canvas_width", Value: l.CanvasWidth, Wrapped: ErrInvalidLayout}
	}
	if !positive(l.CanvasHeight) {
		return &ConfigError{Field: "canvas_height", Value: l.CanvasHeight, Wrapped: ErrInvalidLayout}
	}
	return nil
}

// Origin returns the seed position of particle (0, 0): horizontally centered,
// vertically in the upper quarter of the canvas.
func (l Layout) Origin() (float64, float64) {
	x := (l.CanvasWidth - float64(l.Width-1)*l.Spacing) / 2
	y := (l.CanvasHeight - float64(l.Height-1)*l.Spacing) / 4
	return x, y
}

// ConstraintCount is the number of structural links a layout produces.
func (l Layout) ConstraintCount() int {
	return (l.Width-1)*l.Height + l.Width*(l.Height-1)
}

func (l Layout) String() string {
	return fmt.Sprintf("%dx%d@%g", l.Width, l.Height, l.Spacing)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Grid is the row-major particle arena. Its size is fixed at construction.
type Grid struct {
	Width, Height int
	Spacing       float64
	Particles     []Particle

	neighbors [][]int
}

// NewGrid seeds a grid from l. Row 0 is locked; mass and material come from m.
func NewGrid(l Layout, m Material) (*Grid, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &ConfigError{Field: "material", Value: nil, Wrapped: ErrUnknownMaterial}
	}

	g := &Grid{
		Width:     l.Width,
		Height:    l.Height,
		Spacing:   l.Spacing,
		Particles: make([]Particle, l.Width*l.Height),
	}
	g.seed(l, m)
	return g, nil
}

func (g *Grid) seed(l Layout, m Material) {
	x0, y0 := l.Origin()
	mass := m.Props().Mass
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			x := x0 + float64(col)*g.Spacing
			y := y0 + float64(row)*g.Spacing
			g.Particles[g.Index(col, row)] = Particle{
				X: x, Y: y,
				OldX: x, OldY: y,
				Mass:     mass,
				Locked:   row == 0,
				Material: m,
			}
		}
	}
}

// Index maps grid coordinates to a particle index.
func (g *Grid) Index(col, row int) int {
	return row*g.Width + col
}

// Coords is the inverse of Index.
func (g *Grid) Coords(i int) (col, row int) {
	return i % g.Width, i / g.Width
}

func (g *Grid) At(col, row int) *Particle {
	return &g.Particles[g.Index(col, row)]
}

func (g *Grid) Len() int { return len(g.Particles) }

// Neighbors returns the 4-connected grid neighbors of particle i in a new
// slice. The adjacency table is built on first use.
func (g *Grid) Neighbors(i int) []*Particle {
	return g.AppendNeighbors(make([]*Particle, 0, 4), i)
}

// AppendNeighbors appends the neighbors of particle i to dst. Passing
// dst[:0] of a reused buffer avoids allocating per call.
func (g *Grid) AppendNeighbors(dst []*Particle, i int) []*Particle {
	if g.neighbors == nil {
		g.buildNeighbors()
	}
	for _, j := range g.neighbors[i] {
		dst = append(dst, &g.Particles[j])
	}
	return dst
}

func (g *Grid) buildNeighbors() {
	g.neighbors = make([][]int, len(g.Particles))
	for i := range g.Particles {
		col, row := g.Coords(i)
		adj := make([]int, 0, 4)
		if col > 0 {
			adj = append(adj, g.Index(col-1, row))
		}
		if col < g.Width-1 {
			adj = append(adj, g.Index(col+1, row))
		}
		if row > 0 {
			adj = append(adj, g.Index(col, row-1))
		}
		if row < g.Height-1 {
			adj = append(adj, g.Index(col, row+1))
		}
		g.neighbors[i] = adj
	}
}

// Positions appends x, y pairs in row-major order to dst.
func (g *Grid) Positions(dst []float64) []float64 {
	for i := range g.Particles {
		dst = append(dst, g.Particles[i].X, g.Particles[i].Y)
	}
	return dst
}

// Finite reports whether every particle position is a real number.
func (g *Grid) Finite() bool {
	for i := range g.Particles {
		p := &g.Particles[i]
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}
