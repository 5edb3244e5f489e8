package behave

import "math"

// Exponential weighting constants of the fine fuel loading (Albini 1976), in 1/m.
const (
	fineDeadWeight = 452.76
	fineLiveWeight = 1640.42
)

// MoistureDampingCoefficient evaluates Rothermel's moisture damping polynomial
// for a moisture ratio r, clamped at zero.
func MoistureDampingCoefficient(r float64) float64 {
	eta := 1 - 2.59*r + 5.11*r*r - 3.52*r*r*r
	if eta < 0 {
		return 0
	}
	return eta
}

func (st *State) dampMineral() {
	st.MineralDamping = 0.174 * math.Pow(st.Fuel.EffectiveMineral/100, -0.19)
}

// dampMoisture computes the live moisture of extinction and the dead and
// live moisture damping coefficients.
func (st *State) dampMoisture() {
	for c := Class(0); c < NumClasses; c++ {
		if st.SAV[c] <= 0 {
			continue
		}
		k := fineLiveWeight
		if c.Dead() {
			k = fineDeadWeight
		}
		hn := 0.20482 * st.Loading[c] * math.Exp(-k/st.SAV[c])
		st.FineLoading[c] = hn
		if c.Dead() {
			st.FineDead += hn
			st.FineDeadWater += hn * st.Moisture[c]
		} else {
			st.FineLive += hn
		}
	}

	mx := st.Fuel.ExtinctionMoisture
	if st.SWLive > 0 {
		st.FineFuelRatio = st.FineDead / st.FineLive
		if st.FineDead > 0 {
			st.FineDeadMoisture = st.FineDeadWater / st.FineDead
		}

		// Albini (1976), p. 89
		st.LiveExtinctionMoisture = (2.9*st.FineFuelRatio*(1-st.FineDeadMoisture/mx) - 0.226) * 100
		if st.LiveExtinctionMoisture < mx {
			st.LiveExtinctionMoisture = mx
			st.ExtinctionClamped = true
			st.CanDerive = false
		}
		st.MoistureRatioLive = st.SWMLive / (st.SWLive * st.LiveExtinctionMoisture)
	}
	if st.SWDead > 0 {
		st.MoistureRatioDead = st.SWMDead / (st.SWDead * mx)
	}

	st.MoistureDampingDead = MoistureDampingCoefficient(st.MoistureRatioDead)
	st.MoistureDampingLive = MoistureDampingCoefficient(st.MoistureRatioLive)
	st.MoistureDamping = st.NetLoadingDead*st.MoistureDampingDead + st.NetLoadingLive*st.MoistureDampingLive
}
