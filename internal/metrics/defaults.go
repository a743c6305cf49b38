package metrics

import "github.com/san-kum/clothsim/internal/sim"

// DefaultStrainLimit is the stretch beyond which a frame counts as unstable.
const DefaultStrainLimit = 1.0

func DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewSag(),
		NewStrain(),
		NewStability(DefaultStrainLimit),
	}
}
