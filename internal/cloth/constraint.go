package cloth

import "math"

// RelaxationPasses is the number of sweeps over the constraint set per step.
const RelaxationPasses = 5

// Constraint links two particles of a grid by index. Strength is recorded
// from the material at construction and is not read by the relaxation rule.
type Constraint struct {
	A, B       int
	RestLength float64
	Strength   float64
}

// NewConstraints builds one link per horizontal adjacency (row by row) and
// then one per vertical adjacency, all at the grid spacing.
func NewConstraints(g *Grid, m Material) []Constraint {
	strength := m.Props().Stiffness
	cs := make([]Constraint, 0, (g.Width-1)*g.Height+g.Width*(g.Height-1))

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width-1; col++ {
			cs = append(cs, Constraint{
				A:          g.Index(col, row),
				B:          g.Index(col+1, row),
				RestLength: g.Spacing,
				Strength:   strength,
			})
		}
	}
	for row := 0; row < g.Height-1; row++ {
		for col := 0; col < g.Width; col++ {
			cs = append(cs, Constraint{
				A:          g.Index(col, row),
				B:          g.Index(col, row+1),
				RestLength: g.Spacing,
				Strength:   strength,
			})
		}
	}
	return cs
}

// Length is the current distance between the endpoints of c.
func (c Constraint) Length(g *Grid) float64 {
	a, b := &g.Particles[c.A], &g.Particles[c.B]
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Strain is the relative stretch (length - rest) / rest.
func (c Constraint) Strain(g *Grid) float64 {
	return (c.Length(g) - c.RestLength) / c.RestLength
}

// Relax runs one Gauss-Seidel sweep of m's constraint rule over cs.
// Order matters: later links see positions moved by earlier ones.
func Relax(g *Grid, cs []Constraint, m Material) {
	for _, c := range cs {
		m.SolveConstraint(&g.Particles[c.A], &g.Particles[c.B], c.RestLength)
	}
}
