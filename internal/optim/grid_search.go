package optim

import (
	"context"
	"math"
	"sort"

	"github.com/san-kum/clothsim/internal/sim"
)

// Trial is one evaluated point of a sweep. Err is set when the run could
// not be built or did not finish.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

// Build turns one parameter assignment into a ready simulator and its run
// settings.
type Build func(params map[string]float64) (*sim.Simulator, sim.Config, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every combination of the parameter ranges and returns the
// assignment with the lowest value of metricName, together with every
// trial in evaluation order. Failed trials never win. bestParams is nil if
// no trial succeeded.
func (g *GridSearch) Search(ctx context.Context, build Build, metricName string) (map[string]float64, float64, []Trial, error) {
	best := math.Inf(1)
	var bestParams map[string]float64
	trials := make([]Trial, 0)

	err := g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, func(t Trial) {
		trials = append(trials, t)
		if t.Err == nil && t.Value < best {
			best = t.Value
			bestParams = t.Params
		}
	})
	return bestParams, best, trials, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build Build,
	metricName string,
	record func(Trial),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}

		s, cfg, err := build(params)
		if err != nil {
			record(Trial{Params: params, Err: err})
			return nil
		}

		result, err := s.Run(ctx, cfg)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			record(Trial{Params: params, Err: err})
			return nil
		}

		record(Trial{Params: params, Value: result.Metrics[metricName]})
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, current, build, metricName, record); err != nil {
			return err
		}
	}
	delete(current, paramName)
	return nil
}

// ParamNames returns the swept names in sorted order, for stable output.
func ParamNames(params map[string]float64) []string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
