package sim

import (
	"context"
	"sync"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Ensemble runs one layout under several materials concurrently. Each run
// owns its own cloth, so nothing is shared between goroutines.
type Ensemble struct {
	layout    cloth.Layout
	materials []cloth.Material
	driver    Driver
	metrics   func() []Metric
}

// NewEnsemble prepares runs for each material. metrics, if non-nil, is
// called once per run so runs never share metric state.
func NewEnsemble(layout cloth.Layout, materials []cloth.Material, driver Driver, metrics func() []Metric) *Ensemble {
	return &Ensemble{layout: layout, materials: materials, driver: driver, metrics: metrics}
}

// Run returns one result per material, in the order given.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.materials))
	errs := make([]error, len(e.materials))

	var wg sync.WaitGroup
	for i, m := range e.materials {
		wg.Add(1)
		go func(idx int, m cloth.Material) {
			defer wg.Done()

			c, err := cloth.New(e.layout, m)
			if err != nil {
				errs[idx] = err
				return
			}

			s := New(c, e.driver)
			if e.metrics != nil {
				for _, metric := range e.metrics() {
					s.AddMetric(metric)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i, m)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
