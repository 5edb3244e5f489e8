package sensitivity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/chrissnell/wildfire/pkg/behave"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distmv"
)

// DefaultSamples is the sample count used when SampleOptions.N is zero.
const DefaultSamples = 2000

// singularJitter is the relative diagonal loading applied to a singular
// covariance so it can be factorized.
const singularJitter = 1e-9

// SampleOptions controls a Monte Carlo run.
type SampleOptions struct {
	N       int    `json:"n"`
	Seed    uint64 `json:"seed"`
	Workers int    `json:"workers"`
}

// Moments are the sample mean and standard deviation of one output.
type Moments struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdv"`
}

// SampleSummary is the outcome of a Monte Carlo run. Samples that fail
// validation or hit a no-data sentinel are counted as rejected.
type SampleSummary struct {
	N        int     `json:"n"`
	Rejected int     `json:"rejected"`
	ROS      Moments `json:"ros"`
	EFW      Moments `json:"efw"`
	SDR      Moments `json:"sdr"`
}

type sample struct {
	ros, efw, sdr float64
	ok            bool
}

// Sample draws inputs from the multivariate normal N(mean, D R D), where the
// mean is the packed scenario, D holds the standard deviations and R the
// correlation, solves every draw and summarizes the outputs. It cross-checks
// Propagate without relying on derivatives, so it also works for states that
// are not differentiable.
// A singular correlation accepted by Validate is sampled after a tiny
// relative loading of the covariance diagonal.
func (e *Engine) Sample(ctx context.Context, solver *behave.Solver, fuel behave.FuelComplex, env behave.Environment, in Input, opts SampleOptions) (*SampleSummary, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	n := opts.N
	if n <= 0 {
		n = DefaultSamples
	}

	base := behave.Pack(fuel, env)
	centre, err := solver.Solve(fuel, env)
	if err != nil {
		return nil, fmt.Errorf("solving mean scenario: %w", err)
	}

	draws, err := draw(base, in, n, opts.Seed)
	if err != nil {
		return nil, err
	}

	samples := make([]sample, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(behave.Workers(opts.Workers))
	for i, v := range draws {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st, err := solver.SolveVector(v, fuel)
			if errors.Is(err, behave.ErrInvalidInput) || (err == nil && st.MissingData) {
				return nil
			}
			if err != nil {
				return err
			}
			samples[i] = sample{
				ros: st.Outputs.RateOfSpread,
				efw: st.EffectiveWindSpeed,
				sdr: st.SpreadDirection,
				ok:  true,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var ros, efw, dev []float64
	for _, s := range samples {
		if !s.ok {
			continue
		}
		ros = append(ros, s.ros)
		efw = append(efw, s.efw)
		dev = append(dev, angularOffset(s.sdr, centre.SpreadDirection))
	}
	if len(ros) < 2 {
		return nil, fmt.Errorf("sensitivity: only %d of %d samples were solvable", len(ros), n)
	}

	sum := &SampleSummary{N: n, Rejected: n - len(ros)}
	sum.ROS.Mean, sum.ROS.StdDev = stat.MeanStdDev(ros, nil)
	sum.EFW.Mean, sum.EFW.StdDev = stat.MeanStdDev(efw, nil)
	var meanDev float64
	meanDev, sum.SDR.StdDev = stat.MeanStdDev(dev, nil)
	sum.SDR.Mean = math.Mod(centre.SpreadDirection+meanDev+360, 360)

	e.logger.Debugw("monte carlo run finished", "samples", n, "rejected", sum.Rejected)
	return sum, nil
}

// draw returns n input vectors. Only inputs with a positive standard
// deviation are sampled; the rest keep their base value.
func draw(base behave.Vector, in Input, n int, seed uint64) ([]behave.Vector, error) {
	var active []int
	for i, s := range in.StdDev {
		if s > 0 {
			active = append(active, i)
		}
	}

	draws := make([]behave.Vector, n)
	if len(active) == 0 {
		for i := range draws {
			draws[i] = base
		}
		return draws, nil
	}

	corr := in.CorrelationMatrix()
	k := len(active)
	mu := make([]float64, k)
	cov := mat.NewSymDense(k, nil)
	for a, i := range active {
		mu[a] = base[i]
		for b := a; b < k; b++ {
			j := active[b]
			cov.SetSym(a, b, corr.At(i, j)*in.StdDev[i]*in.StdDev[j])
		}
	}

	dist, ok := distmv.NewNormal(mu, cov, rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	if !ok {
		// singular but semidefinite, e.g. two inputs correlated at 1
		for a := 0; a < k; a++ {
			cov.SetSym(a, a, cov.At(a, a)*(1+singularJitter))
		}
		dist, ok = distmv.NewNormal(mu, cov, rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if !ok {
		return nil, fmt.Errorf("%w: covariance of the sampled inputs is not positive definite", ErrInvalidCorrelation)
	}

	x := make([]float64, k)
	for i := range draws {
		dist.Rand(x)
		v := base
		for a, idx := range active {
			v[idx] = x[a]
		}
		draws[i] = v
	}
	return draws, nil
}

// angularOffset returns a - b wrapped into (-180, 180].
func angularOffset(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}
