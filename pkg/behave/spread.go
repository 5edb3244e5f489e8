package behave

import "math"

const (
	// m/s to ft/min, as used for the wind factor and its inverse
	windToModel = 3.281 * 60
	efwToModel  = 196.85

	// Rothermel's ceiling on effective wind speed relative to reaction intensity
	windLimitRatio = 0.024
)

// WindCoefficients returns the empirical B, C and E of the wind factor for a
// characteristic surface-to-volume ratio in 1/m.
func WindCoefficients(sigma float64) (b, c, e float64) {
	s := sigma * 0.3048
	b = 0.02526 * math.Pow(s, 0.54)
	c = 7.47 * math.Exp(-0.133*math.Pow(s, 0.55))
	e = 0.715 * math.Exp(-0.000359*s)
	return b, c, e
}

// SlopeFactor returns phi_s for a packing ratio and a slope in degrees.
func SlopeFactor(beta, slope float64) float64 {
	t := math.Tan(radians(slope))
	return 5.275 * math.Pow(beta, -0.3) * t * t
}

// combineWindAndSlope sums the slope, wind and any additional factors as
// vectors relative to the upslope direction, then derives the spread
// direction and effective wind speed of the result.
func (s *Solver) combineWindAndSlope(st *State) {
	env := st.Environment
	br := st.RelativePackingRatio

	st.SlopeFactor = SlopeFactor(st.PackingRatio, env.Slope)
	st.WindB, st.WindC, st.WindE = WindCoefficients(st.Sigma)
	st.WindFactor = st.WindC * math.Pow(windToModel*env.WindSpeed, st.WindB) * math.Pow(br, -st.WindE)

	// aspect faces downslope and wind blows from its bearing: flip both
	st.UpslopeBearing = flip(radians(env.Aspect))
	st.WindBearing = flip(radians(env.WindDirection))
	st.Split = st.WindBearing - st.UpslopeBearing

	vx := st.SlopeFactor + st.WindFactor*math.Cos(st.Split)
	vy := st.WindFactor * math.Sin(st.Split)

	var ax, ay float64
	for _, f := range s.cfg.Factors {
		fac := f.Factor(st)
		if fac.Magnitude == 0 {
			continue
		}
		b := radians(fac.Bearing)
		rel := b - st.UpslopeBearing
		vx += fac.Magnitude * math.Cos(rel)
		vy += fac.Magnitude * math.Sin(rel)
		ax += fac.Magnitude * math.Cos(b)
		ay += fac.Magnitude * math.Sin(b)
		st.CanDerive = false
	}
	if ax != 0 || ay != 0 {
		st.AdditionalFactor = Factor{
			Magnitude: math.Hypot(ax, ay),
			Bearing:   normalizeDegrees(degrees(math.Atan2(ay, ax))),
		}
		s.logger.Debugw("additional spread factor applied", "magnitude", st.AdditionalFactor.Magnitude, "bearing", st.AdditionalFactor.Bearing)
	}

	st.VectorX = vx
	st.VectorY = vy
	st.CombinedMagnitude = math.Hypot(vx, vy)

	// with no wind and no slope the vector has no direction; report upslope
	dir := st.UpslopeBearing
	if st.CombinedMagnitude > 0 {
		dir += math.Atan2(vy, vx)
	}
	st.SpreadDirection = normalizeDegrees(degrees(dir))

	st.CombinedFactor = st.CombinedMagnitude
	if st.CombinedMagnitude > 0 {
		st.EffectiveWindSpeed = math.Pow(st.CombinedMagnitude/(st.WindC*math.Pow(br, -st.WindE)), 1/st.WindB) / efwToModel
	}

	// The limit rescales the magnitude only; the spread direction is kept.
	if limit := windLimitRatio * st.ReactionIntensity; st.EffectiveWindSpeed > limit {
		st.EffectiveWindSpeed = limit
		st.CombinedFactor = st.WindC * math.Pow(efwToModel*limit, st.WindB) * math.Pow(br, -st.WindE)
		st.WindLimited = true
		st.CanDerive = false
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// flip turns a bearing in [0, 2pi] around by pi.
func flip(rad float64) float64 {
	if rad < math.Pi {
		return rad + math.Pi
	}
	return rad - math.Pi
}

func normalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}
