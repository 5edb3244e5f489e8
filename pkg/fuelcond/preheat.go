package fuelcond

import (
	"math"

	"github.com/chrissnell/wildfire/pkg/behave"
)

// DefaultIgnitionTemperature is the piloted ignition temperature of
// cellulosic fuel in Celsius.
const DefaultIgnitionTemperature = 320.0

// maxPreheat bounds the fraction of the ignition heat that sunlight may
// supply.
const maxPreheat = 0.9

// Preheat is an additional spread factor for fuel warmed by the sun. Warming
// the fuel from air temperature toward ignition removes a fraction f of the
// heat of preignition; the spread rate grows by 1/(1-f), which is added to
// the wind and slope vector as a push toward the sun's azimuth.
type Preheat struct {
	Condition Condition

	// IgnitionTemperature in Celsius; zero selects DefaultIgnitionTemperature.
	IgnitionTemperature float64

	// Gain scales the factor; zero selects 1.
	Gain float64
}

// Fraction returns the share of the heat of preignition supplied by the sun.
func (p Preheat) Fraction() float64 {
	ign := p.IgnitionTemperature
	if ign == 0 {
		ign = DefaultIgnitionTemperature
	}
	ta := p.Condition.AirTemperature
	rise := p.Condition.FuelTemperature - ta
	if rise <= 0 || ign <= ta {
		return 0
	}
	gain := p.Gain
	if gain == 0 {
		gain = 1
	}
	return math.Min(gain*rise/(ign-ta), maxPreheat)
}

// Factor implements behave.AdditionalFactor.
func (p Preheat) Factor(st *behave.State) behave.Factor {
	f := p.Fraction()
	if f == 0 || !p.Condition.Sunlight.Sun.Up() {
		return behave.Factor{}
	}
	ws := math.Hypot(st.SlopeFactor+st.WindFactor*math.Cos(st.Split), st.WindFactor*math.Sin(st.Split))
	return behave.Factor{
		Magnitude: f / (1 - f) * (1 + ws),
		Bearing:   p.Condition.Sunlight.Sun.Azimuth,
	}
}
