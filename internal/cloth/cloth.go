package cloth

import "math"

// PointerRadius is the grab radius of the pointer in canvas units.
const PointerRadius = 20.0

// Pointer is the input state sampled by the driver for one frame.
type Pointer struct {
	Pressed bool
	X, Y    float64
}

// Initialize seeds a grid and its structural constraints from l, taking
// mass, material and constraint strength from m.
func Initialize(l Layout, m Material) (*Grid, []Constraint, error) {
	g, err := NewGrid(l, m)
	if err != nil {
		return nil, nil, err
	}
	return g, NewConstraints(g, m), nil
}

// Step advances the cloth one frame under material m: force pass, pointer
// interaction, then RelaxationPasses sweeps over cs.
func Step(g *Grid, cs []Constraint, m Material, dt float64, ptr Pointer) {
	for i := range g.Particles {
		m.ApplyForce(&g.Particles[i], dt)
	}

	Interact(g, ptr)

	for pass := 0; pass < RelaxationPasses; pass++ {
		Relax(g, cs, m)
	}
}

// Interact snaps every unlocked particle within PointerRadius of a pressed
// pointer onto it, clearing its implicit velocity. It returns the number of
// particles grabbed.
func Interact(g *Grid, ptr Pointer) int {
	if !ptr.Pressed {
		return 0
	}

	grabbed := 0
	for i := range g.Particles {
		p := &g.Particles[i]
		if p.Locked {
			continue
		}
		if math.Hypot(p.X-ptr.X, p.Y-ptr.Y) < PointerRadius {
			p.X, p.Y = ptr.X, ptr.Y
			p.OldX, p.OldY = ptr.X, ptr.Y
			grabbed++
		}
	}
	return grabbed
}

// Cloth owns a grid, its constraints and the active material.
type Cloth struct {
	layout      Layout
	grid        *Grid
	constraints []Constraint
	active      Material
	frame       int
	time        float64
	adj         []*Particle
}

// New builds a cloth in its rest pose under material m.
func New(l Layout, m Material) (*Cloth, error) {
	g, cs, err := Initialize(l, m)
	if err != nil {
		return nil, err
	}
	return &Cloth{
		layout:      l,
		grid:        g,
		constraints: cs,
		active:      m,
	}, nil
}

// Step advances one frame of dt seconds under the active material.
func (c *Cloth) Step(dt float64, ptr Pointer) {
	Step(c.grid, c.constraints, c.active, dt, ptr)
	c.frame++
	if dt > 0 {
		c.time += dt
	}
}

// SetActiveMaterial selects m for subsequent steps. Every particle is
// reassigned to m so stored material and mass agree with the selection.
// A nil material is ignored.
func (c *Cloth) SetActiveMaterial(m Material) {
	if m == nil {
		return
	}
	c.active = m
	mass := m.Props().Mass
	for i := range c.grid.Particles {
		c.grid.Particles[i].Material = m
		c.grid.Particles[i].Mass = mass
	}
}

func (c *Cloth) ActiveMaterial() Material  { return c.active }
func (c *Cloth) Grid() *Grid               { return c.grid }
func (c *Cloth) Constraints() []Constraint { return c.constraints }
func (c *Cloth) Layout() Layout            { return c.layout }
func (c *Cloth) Frame() int                { return c.frame }
func (c *Cloth) Time() float64             { return c.time }
func (c *Cloth) Particle(i int) *Particle  { return &c.grid.Particles[i] }

// Reset returns every particle to its rest pose under the active material.
func (c *Cloth) Reset() {
	c.grid.seed(c.layout, c.active)
	c.frame = 0
	c.time = 0
}

// Energy sums the active material's energy over all particles, measuring
// spring terms against grid neighbors at the grid spacing. It reuses one
// neighbor buffer, so like Step it must not run concurrently on one Cloth.
func (c *Cloth) Energy() float64 {
	var total float64
	for i := range c.grid.Particles {
		c.adj = c.grid.AppendNeighbors(c.adj[:0], i)
		total += c.active.CalcEnergy(&c.grid.Particles[i], c.adj, c.grid.Spacing)
	}
	return total
}

// MaxStrain returns the largest relative stretch over all constraints.
func (c *Cloth) MaxStrain() float64 {
	var worst float64
	for _, cs := range c.constraints {
		if s := cs.Strain(c.grid); s > worst {
			worst = s
		}
	}
	return worst
}

// Sag returns the largest downward displacement of an unlocked particle
// from its rest row.
func (c *Cloth) Sag() float64 {
	_, y0 := c.layout.Origin()
	var worst float64
	for i := range c.grid.Particles {
		p := &c.grid.Particles[i]
		if p.Locked {
			continue
		}
		_, row := c.grid.Coords(i)
		if d := p.Y - (y0 + float64(row)*c.grid.Spacing); d > worst {
			worst = d
		}
	}
	return worst
}
