package behave

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Scenario pairs a fuel complex with an environment.
type Scenario struct {
	Fuel        FuelComplex `json:"fuel"`
	Environment Environment `json:"environment"`
}

// SolveAll solves independent scenarios concurrently with at most workers
// goroutines, GOMAXPROCS when workers <= 0. States are returned in scenario
// order. The first failing scenario cancels the rest.
func (s *Solver) SolveAll(ctx context.Context, scenarios []Scenario, workers int) ([]*State, error) {
	states := make([]*State, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(Workers(workers))

	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st, err := s.Solve(sc.Fuel, sc.Environment)
			if err != nil {
				return fmt.Errorf("scenario %d: %w", i, err)
			}
			states[i] = st
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.logger.Debugf("solved %d scenarios", len(scenarios))
	return states, nil
}

// Workers returns n, or GOMAXPROCS when n <= 0.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}
