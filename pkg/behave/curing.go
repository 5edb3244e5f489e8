package behave

// Live herbaceous moisture bounds of the curing ramp, in percent.
const (
	CuredMoisture = 30.0
	GreenMoisture = 120.0
)

// CuringFraction returns the cured share of the live herbaceous fuel for a
// given live herbaceous moisture: 1 at or below 30%, 0 at or above 120%,
// linear in between.
func CuringFraction(herbMoisture float64) float64 {
	switch {
	case herbMoisture >= GreenMoisture:
		return 0
	case herbMoisture <= CuredMoisture:
		return 1
	default:
		return 1 - (herbMoisture-CuredMoisture)/(GreenMoisture-CuredMoisture)
	}
}

// transferCuredFuel copies the size class inputs onto the state and, for a
// dynamic fuel complex, moves the cured herbaceous load into the dead 1-hr
// class. Everything downstream reads the post-transfer values.
func (st *State) transferCuredFuel() {
	f := st.Fuel
	st.Loading = f.Loading
	st.Moisture = f.Moisture
	st.SAV = f.SAV
	st.NominalSAV = f.SAV

	// an empty 10-hr or 100-hr class has no surface
	for _, c := range []Class{Dead10h, Dead100h} {
		if st.Loading[c] == 0 {
			st.SAV[c] = 0
		}
	}

	if !f.Dynamic {
		return
	}

	st.Curing = CuringFraction(f.Moisture[LiveHerb])
	herb := st.Loading[LiveHerb] * st.Curing
	st.DeadHerbLoading = herb
	st.Loading[LiveHerb] -= herb

	sv1, svh := st.SAV[Dead1h], st.SAV[LiveHerb]
	w1 := st.Loading[Dead1h]
	if den := sv1*w1 + svh*herb; den > 0 {
		st.SAV[Dead1h] = (sv1*sv1*w1 + svh*svh*herb) / den
	}
	st.Loading[Dead1h] += herb
	st.NominalSAV[Dead1h] = st.SAV[Dead1h]
}
