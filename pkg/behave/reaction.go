package behave

import "math"

// react computes the reaction velocity and the reaction intensity.
func (st *State) react() {
	sigma := st.Sigma
	st.ReactionExponent = 340.53 * math.Pow(sigma, -0.7913)

	s15 := math.Pow(sigma, 1.5)
	st.MaxReactionVelocity = 0.16828 * s15 / (29700 + 0.5997*s15)

	br := st.RelativePackingRatio
	a := st.ReactionExponent
	st.ReactionVelocity = st.MaxReactionVelocity * math.Pow(br, a) * math.Exp(a*(1-br))

	st.ReactionIntensity = st.ReactionVelocity * st.Fuel.HeatContent * st.MineralDamping * st.MoistureDamping
}

func (st *State) propagateFlux() {
	sigma := st.Sigma
	st.PropagatingFluxRatio = math.Exp((0.792+0.37597*math.Sqrt(sigma))*(st.PackingRatio+0.1)) / (192 + 0.0791*sigma)
}

// PreignitionHeat returns the heat of preignition, in kJ/kg, of fuel at the
// given moisture content in percent.
func PreignitionHeat(moisture float64) float64 {
	return 581.5 + 25.957*moisture
}

// sinkHeat computes the energy per unit volume needed to bring the fuel
// ahead of the front to ignition.
func (st *State) sinkHeat() {
	for c := Class(0); c < NumClasses; c++ {
		if st.SAV[c] > 0 {
			st.EffectiveHeating[c] = math.Exp(-fineDeadWeight / st.SAV[c])
		}
		st.PreignitionHeat[c] = PreignitionHeat(st.Moisture[c])
		st.HeatSinkSum += st.SW[c] * st.EffectiveHeating[c] * st.PreignitionHeat[c]
	}
	st.HeatSink = st.BulkDensity * st.HeatSinkSum / st.SWTotal
}

// FlameLength returns Byram's flame length, in m, for a fireline intensity in kW/m.
func FlameLength(intensity float64) float64 {
	if intensity <= 0 {
		return 0
	}
	return 0.0775 * math.Pow(intensity, 0.46)
}
