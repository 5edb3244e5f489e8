// Package sensitivity computes analytic partial derivatives of the spread
// rate, effective wind speed and spread direction of a solved fuel bed with
// respect to each solver input, and propagates input uncertainty into output
// variances with the first-order delta method.
package sensitivity

import (
	"errors"
	"fmt"
	"math"

	"github.com/chrissnell/wildfire/pkg/behave"
	"go.uber.org/zap"
)

const radToDeg = 180 / math.Pi

// Engine propagates input uncertainty through solved states. It holds no
// per-call state and is safe for concurrent use.
type Engine struct {
	logger *zap.SugaredLogger
}

// NewEngine returns an Engine. A nil logger discards log output.
func NewEngine(logger *zap.SugaredLogger) *Engine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{logger: logger}
}

// Estimate is the propagated uncertainty of one output.
type Estimate struct {
	Value float64 `json:"value"`

	// Partials are the derivatives of the output with respect to each input,
	// per unit of the input.
	Partials behave.Vector `json:"partials"`

	Variance float64 `json:"variance"`
	StdDev   float64 `json:"stdv"`

	// Contribution is the share, in percent, of the variance explained by
	// each input alone: (stdv_i * partial_i)^2 / variance.
	Contribution behave.Vector `json:"contribution"`
}

// Report is the sensitivity of the three principal outputs. ROS is in m/s,
// EFW in m/s and SDR in degrees.
type Report struct {
	Input Input    `json:"-"`
	ROS   Estimate `json:"ros"`
	EFW   Estimate `json:"efw"`
	SDR   Estimate `json:"sdr"`
}

// Partials returns the derivatives of the rate of spread, effective wind
// speed and spread direction with respect to every input. Spread direction
// partials are in degrees per unit of input.
func (e *Engine) Partials(st *behave.State) (ros, efw, sdr behave.Vector, err error) {
	if err := differentiable(st); err != nil {
		return ros, efw, sdr, err
	}
	ch := newChain(st)
	return ch.ros, ch.efw, scaled(radToDeg, ch.sdr), nil
}

// Propagate computes the sensitivity report of a solved state.
func (e *Engine) Propagate(st *behave.State, in Input) (*Report, error) {
	if err := differentiable(st); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ch := newChain(st)
	corr := in.CorrelationMatrix()

	r := &Report{
		Input: in,
		ROS:   estimate(st.Outputs.RateOfSpread, ch.ros, in.StdDev, corr),
		EFW:   estimate(st.EffectiveWindSpeed, ch.efw, in.StdDev, corr),
	}

	// the angular inputs carry degree deviations while the direction
	// gradient is in radians; convert once the variance is known
	sdr := estimate(st.SpreadDirection, ch.sdr, in.StdDev, corr)
	sdr.Partials = scaled(radToDeg, sdr.Partials)
	sdr.Variance *= radToDeg * radToDeg
	sdr.StdDev *= radToDeg
	r.SDR = sdr

	e.logger.Debugw("propagated input uncertainty",
		"ros_stdv", r.ROS.StdDev, "efw_stdv", r.EFW.StdDev, "sdr_stdv", r.SDR.StdDev)
	return r, nil
}

func differentiable(st *behave.State) error {
	switch {
	case st == nil:
		return errors.New("sensitivity: nil state")
	case st.MissingData:
		return fmt.Errorf("%w: input carried no data", ErrNonDifferentiable)
	case st.ExtinctionClamped:
		return fmt.Errorf("%w: live moisture of extinction clamped", ErrNonDifferentiable)
	case st.WindLimited:
		return fmt.Errorf("%w: effective wind speed limited", ErrNonDifferentiable)
	case st.AdditionalFactor.Magnitude != 0:
		return fmt.Errorf("%w: additional spread factor applied", ErrNonDifferentiable)
	case !st.CanDerive:
		return ErrNonDifferentiable
	}
	return nil
}
