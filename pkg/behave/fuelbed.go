package behave

import "math"

// characterize computes the surface-area weighted aggregates of the fuel bed,
// the characteristic surface-to-volume ratio, bulk density, packing ratios
// and net fuel loadings.
func (st *State) characterize() {
	for c := Class(0); c < NumClasses; c++ {
		sw := st.SAV[c] * st.Loading[c]
		st.SW[c] = sw
		st.S2W[c] = sw * st.SAV[c]
		st.SW2[c] = sw * st.Loading[c]
		st.SWM[c] = sw * st.Moisture[c]

		st.TotalLoading += st.Loading[c]
		st.S2WTotal += st.S2W[c]
		if c.Dead() {
			st.SWDead += sw
			st.SW2Dead += st.SW2[c]
			st.SWMDead += st.SWM[c]
		} else {
			st.SWLive += sw
			st.SWMLive += st.SWM[c]
		}
	}
	st.SWTotal = st.SWDead + st.SWLive

	st.Sigma = st.S2WTotal / st.SWTotal
	st.BulkDensity = st.TotalLoading / st.Fuel.Depth
	st.PackingRatio = st.BulkDensity / st.Fuel.ParticleDensity
	st.OptimalPackingRatio = 8.8578 * math.Pow(st.Sigma, -0.8189)
	st.RelativePackingRatio = st.PackingRatio / st.OptimalPackingRatio

	mineral := 1 - st.Fuel.TotalMineral/100
	if st.SWDead > 0 {
		st.NetLoadingDead = mineral * st.SW2Dead / st.SWDead
	}
	if st.SWLive > 0 {
		// BehavePlus nets the live category by plain loading
		st.NetLoadingLive = mineral * (st.Loading[LiveHerb] + st.Loading[LiveWoody])
	}
}
