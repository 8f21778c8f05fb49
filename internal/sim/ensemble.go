package sim

import (
	"context"
	"sync"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/logging"
	"github.com/san-kum/worldsim/internal/world"
)

// Factory builds an independent engine and its metrics for one seed.
type Factory func(seed int64) (world.Engine, []dynamo.Metric, error)

// Ensemble runs several independently seeded worlds of one scenario in
// parallel. Each run owns its engine, so runs share no state.
type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart int64
	log       *logging.Logger
}

func NewEnsemble(factory Factory, numRuns int, seedStart int64, log *logging.Logger) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart, log: log}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			engine, metrics, err := e.factory(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			r := New(engine, e.log)
			for _, m := range metrics {
				r.AddMetric(m)
			}
			results[idx], errs[idx] = r.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
