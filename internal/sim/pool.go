package sim

import (
	"sync"

	"github.com/san-kum/clothsim/internal/cloth"
)

// PositionPool recycles x, y snapshot buffers for grids of one size.
type PositionPool struct {
	pool sync.Pool
	size int
}

// NewPositionPool sizes buffers for particles particles.
func NewPositionPool(particles int) *PositionPool {
	size := 2 * particles
	return &PositionPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]float64, 0, size)
			},
		},
	}
}

func (p *PositionPool) Get() []float64 {
	return p.pool.Get().([]float64)[:0]
}

// Put returns buf to the pool; buffers of the wrong size are dropped.
func (p *PositionPool) Put(buf []float64) {
	if cap(buf) == p.size {
		p.pool.Put(buf[:0])
	}
}

// Snapshot copies the grid's positions into a pooled buffer.
func (p *PositionPool) Snapshot(g *cloth.Grid) []float64 {
	return g.Positions(p.Get())
}

// Restore writes a snapshot back into g, clearing implicit velocity.
func Restore(g *cloth.Grid, snap []float64) {
	for i := range g.Particles {
		if 2*i+1 >= len(snap) {
			return
		}
		p := &g.Particles[i]
		p.X, p.Y = snap[2*i], snap[2*i+1]
		p.OldX, p.OldY = p.X, p.Y
	}
}
