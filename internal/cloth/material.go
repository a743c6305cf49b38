package cloth

import (
	"fmt"
	"math"
	"strings"
)

const (
	// Gravity is the downward acceleration in canvas units (cm/s²).
	Gravity = 980.0

	// minSeparation keeps constraint correction away from a zero divisor.
	minSeparation = 1e-4
)

// Properties are the physical coefficients of a fabric.
// TearDistance and BendStiffness are reported but not used by any rule.
type Properties struct {
	Elasticity    float64 `json:"elasticity" yaml:"elasticity"`
	Mass          float64 `json:"mass" yaml:"mass"`
	Stiffness     float64 `json:"stiffness" yaml:"stiffness"`
	Damping       float64 `json:"damping" yaml:"damping"`
	TearDistance  float64 `json:"tear_distance" yaml:"tear_distance"`
	AirFriction   float64 `json:"air_friction" yaml:"air_friction"`
	BendStiffness float64 `json:"bend_stiffness" yaml:"bend_stiffness"`
}

// Material is the behavior of one fabric. Implementations are immutable
// values; the set is closed to [Cotton], [Silk] and [Denim].
type Material interface {
	Name() string
	Props() Properties

	// ApplyForce integrates gravity and air drag into p over dt seconds.
	ApplyForce(p *Particle, dt float64)

	// CalcEnergy returns kinetic, gravitational and spring energy of p
	// against the given neighbors at the given rest length.
	CalcEnergy(p *Particle, neighbors []*Particle, rest float64) float64

	// SolveConstraint moves p1 and p2 toward separation rest.
	SolveConstraint(p1, p2 *Particle, rest float64)
}

var (
	cottonProps = Properties{
		Elasticity:    0.3,
		Mass:          1.0,
		Stiffness:     0.8,
		Damping:       0.99,
		TearDistance:  25.0,
		AirFriction:   0.02,
		BendStiffness: 0.3,
	}
	silkProps = Properties{
		Elasticity:    0.5,
		Mass:          0.7,
		Stiffness:     0.6,
		Damping:       0.995,
		TearDistance:  20.0,
		AirFriction:   0.03,
		BendStiffness: 0.2,
	}
	denimProps = Properties{
		Elasticity:    0.1,
		Mass:          1.5,
		Stiffness:     0.9,
		Damping:       0.98,
		TearDistance:  35.0,
		AirFriction:   0.01,
		BendStiffness: 0.7,
	}
)

// Cotton is the baseline fabric. Its rules are shared by the others.
type Cotton struct{}

func (Cotton) Name() string      { return "cotton" }
func (Cotton) Props() Properties { return cottonProps }

func (Cotton) ApplyForce(p *Particle, dt float64) {
	integrate(p, cottonProps, dt)
}

func (Cotton) CalcEnergy(p *Particle, neighbors []*Particle, rest float64) float64 {
	return energy(p, cottonProps, neighbors, rest)
}

func (Cotton) SolveConstraint(p1, p2 *Particle, rest float64) {
	relax(p1, p2, cottonProps.Elasticity, rest)
}

// Silk is light and loose: cotton's rules plus extra velocity damping.
type Silk struct{}

func (Silk) Name() string      { return "silk" }
func (Silk) Props() Properties { return silkProps }

func (Silk) ApplyForce(p *Particle, dt float64) {
	integrate(p, silkProps, dt)
	p.VX *= silkProps.Damping
	p.VY *= silkProps.Damping
}

func (Silk) CalcEnergy(p *Particle, neighbors []*Particle, rest float64) float64 {
	return energy(p, silkProps, neighbors, rest) * 0.8
}

func (Silk) SolveConstraint(p1, p2 *Particle, rest float64) {
	relax(p1, p2, silkProps.Elasticity, rest)
}

// Denim is heavy and taut: stronger damping and a 10% shorter rest length.
type Denim struct{}

func (Denim) Name() string      { return "denim" }
func (Denim) Props() Properties { return denimProps }

func (Denim) ApplyForce(p *Particle, dt float64) {
	integrate(p, denimProps, dt)
	p.VX *= denimProps.Damping * 0.9
	p.VY *= denimProps.Damping * 0.9
}

func (Denim) CalcEnergy(p *Particle, neighbors []*Particle, rest float64) float64 {
	return energy(p, denimProps, neighbors, rest) * 1.2
}

func (Denim) SolveConstraint(p1, p2 *Particle, rest float64) {
	relax(p1, p2, denimProps.Elasticity, rest*0.9)
}

// Materials returns the built-in fabrics in selection order (keys 1, 2, 3).
func Materials() []Material {
	return []Material{Cotton{}, Silk{}, Denim{}}
}

// MaterialByName resolves a fabric name, case-insensitively.
func MaterialByName(name string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cotton":
		return Cotton{}, nil
	case "silk":
		return Silk{}, nil
	case "denim":
		return Denim{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
}

// integrate is the semi-implicit Verlet step: velocity is rebuilt from the
// position history, then pushed by the accumulated force.
func integrate(p *Particle, pr Properties, dt float64) {
	if p.Locked || dt <= 0 {
		return
	}

	p.ForceX = 0
	p.ForceY = Gravity * p.Mass

	speed := math.Sqrt(p.VX*p.VX + p.VY*p.VY)
	if speed > 0 {
		drag := speed * speed * pr.AirFriction
		p.ForceX -= (p.VX / speed) * drag
		p.ForceY -= (p.VY / speed) * drag
	}

	ax := p.ForceX / p.Mass
	ay := p.ForceY / p.Mass
	p.VX = (p.X-p.OldX)/dt + ax*dt
	p.VY = (p.Y-p.OldY)/dt + ay*dt

	x, y := p.X, p.Y
	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.OldX, p.OldY = x, y
}

func energy(p *Particle, pr Properties, neighbors []*Particle, rest float64) float64 {
	if p.Locked {
		return 0
	}

	kinetic := 0.5 * p.Mass * (p.VX*p.VX + p.VY*p.VY)
	potential := p.Mass * Gravity * p.Y

	var spring float64
	for _, n := range neighbors {
		dx := n.X - p.X
		dy := n.Y - p.Y
		stretch := math.Sqrt(dx*dx+dy*dy) - rest
		spring += 0.5 * pr.Stiffness * stretch * stretch
	}

	return kinetic + potential + spring
}

// relax corrects one constraint in place. Each free endpoint moves by half
// the error scaled by its own material's elasticity.
func relax(p1, p2 *Particle, fallback, rest float64) {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist <= minSeparation {
		return
	}

	diff := (dist - rest) / dist

	if !p1.Locked {
		k := p1.elasticity(fallback)
		p1.X += dx * diff * 0.5 * k
		p1.Y += dy * diff * 0.5 * k
	}
	if !p2.Locked {
		k := p2.elasticity(fallback)
		p2.X -= dx * diff * 0.5 * k
		p2.Y -= dy * diff * 0.5 * k
	}
}
