package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/experiment"
)

// GridSearch tries every combination of scenario parameter values and keeps
// the one minimizing a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Builder returns a ready experiment for one parameter combination.
type Builder func(params map[string]float64) (*experiment.Experiment, error)

// Search returns the best combination and its metric value. Combinations
// whose experiment fails to build or run are skipped; if none succeeds the
// last error is returned.
func (g *GridSearch) Search(ctx context.Context, build Builder, metricName string) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d params but %d ranges: %w", len(g.paramNames), len(g.ranges), dynamo.ErrInvalidConfig)
	}

	s := &search{best: math.Inf(1)}
	g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, s)

	if s.bestParams == nil {
		if s.err == nil {
			s.err = fmt.Errorf("metric %q never reported", metricName)
		}
		return nil, 0, s.err
	}
	return s.bestParams, s.best, nil
}

type search struct {
	best       float64
	bestParams map[string]float64
	err        error
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build Builder,
	metricName string,
	s *search,
) {
	if ctx.Err() != nil {
		s.err = fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		return
	}
	if depth == len(g.paramNames) {
		exp, err := build(current)
		if err != nil {
			s.err = err
			return
		}

		result, err := exp.Run(ctx)
		if err != nil {
			s.err = err
			return
		}

		val, ok := result.Metrics[metricName]
		if ok && val < s.best {
			s.best = val
			s.bestParams = make(map[string]float64)
			for k, v := range current {
				s.bestParams[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, build, metricName, s)
	}
}
