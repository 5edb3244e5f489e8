// Package behave computes surface fire behavior with the Rothermel (1972)
// spread model, as parameterized by Albini (1976), in SI units.
//
// A solve runs as a fixed pipeline: validation, dynamic curing transfer,
// fuel bed characterization, mineral and moisture damping, reaction
// intensity, propagating flux and heat sink, the no-wind/no-slope spread
// rate, the wind and slope vector combination, and finally the spread rate
// and flame metrics. Every intermediate value is kept on the returned State.
package behave

import (
	"go.uber.org/zap"
)

// Solver runs the fire behavior pipeline. A Solver holds no per-call state
// and is safe for concurrent use as long as its additional factors are.
type Solver struct {
	cfg    Config
	logger *zap.SugaredLogger
}

// NewSolver creates a Solver. A nil logger disables logging.
func NewSolver(cfg Config, logger *zap.SugaredLogger) *Solver {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	cfg.Factors = append([]AdditionalFactor(nil), cfg.Factors...)
	return &Solver{
		cfg:    cfg,
		logger: logger,
	}
}

// Config returns a copy of the solver configuration.
func (s *Solver) Config() Config {
	return s.cfg.WithFactors()
}

// Solve computes the fire behavior of a fuel complex under the given
// environment. Inputs carrying a no-data sentinel produce a zeroed State
// with MissingData set and no error. Validation failures return an error
// wrapping ErrInvalidInput.
func (s *Solver) Solve(fuel FuelComplex, env Environment) (*State, error) {
	v := Pack(fuel, env)

	if in, missing := s.cfg.Missing(v); missing {
		s.logger.Debugf("no data for input %s, skipping solve", in)
		return &State{
			Input:       v,
			Fuel:        fuel,
			Environment: env,
			MissingData: true,
		}, nil
	}

	if err := validate(v, fuel, env); err != nil {
		return nil, err
	}

	st := &State{
		Input:       v,
		Fuel:        fuel,
		Environment: env,
		CanDerive:   true,
	}

	st.transferCuredFuel()
	st.characterize()
	st.dampMineral()
	st.dampMoisture()
	st.react()
	st.propagateFlux()
	st.sinkHeat()

	st.NoWindNoSlope = st.outputs(0)

	s.combineWindAndSlope(st)
	st.Outputs = st.outputs(st.CombinedFactor)

	if st.ExtinctionClamped {
		s.logger.Debugw("live moisture of extinction clamped to dead value", "mx", fuel.ExtinctionMoisture)
	}
	if st.WindLimited {
		s.logger.Debugw("effective wind speed limited", "efw", st.EffectiveWindSpeed, "ir", st.ReactionIntensity)
	}

	return st, nil
}

// SolveVector solves the inputs held in v; constants come from base.
func (s *Solver) SolveVector(v Vector, base FuelComplex) (*State, error) {
	fuel, env := Unpack(v, base)
	return s.Solve(fuel, env)
}

// outputs derives the spread rate and flame metrics for a combined
// wind and slope factor phiT.
func (st *State) outputs(phiT float64) Outputs {
	ros := st.ReactionIntensity * st.PropagatingFluxRatio / st.HeatSink
	if phiT > 0 {
		ros *= 1 + phiT
	}

	// Anderson (1969): tau = 384/sigma minutes, sigma in 1/ft
	tau := 384 * 60 / (st.Sigma * 0.3048)

	o := Outputs{
		RateOfSpread:    ros,
		ResidenceTime:   tau,
		HeatPerUnitArea: st.ReactionIntensity * tau,
		FlameZoneDepth:  ros * tau,
	}
	o.FirelineIntensity = st.ReactionIntensity * o.FlameZoneDepth
	o.FlameLength = FlameLength(o.FirelineIntensity)
	return o
}
