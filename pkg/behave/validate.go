package behave

import "math"

func validate(v Vector, fuel FuelComplex, env Environment) error {
	if in, ok := v.Finite(); !ok {
		return invalid(in.String(), v[in], "not a finite number")
	}
	if field, val, ok := constantsFinite(fuel); !ok {
		return invalid(field, val, "not a finite number")
	}

	for c := Class(0); c < NumClasses; c++ {
		if fuel.Loading[c] < 0 {
			return invalid(LoadingInput(c).String(), fuel.Loading[c], "negative fuel loading")
		}
		if fuel.Moisture[c] < 0 {
			return invalid(MoistureInput(c).String(), fuel.Moisture[c], "negative moisture content")
		}
		if fuel.SAV[c] < 0 {
			return invalid("sv_"+c.String(), fuel.SAV[c], "negative surface-to-volume ratio")
		}
	}

	if w0 := fuel.TotalLoading(); w0 <= 0 {
		return invalid("w0", w0, "no fuel")
	}
	if fuel.Depth <= 0 {
		return invalid(Depth.String(), fuel.Depth, "fuel bed depth must be positive")
	}
	if fuel.ExtinctionMoisture <= 0 {
		return invalid(ExtinctionMoisture.String(), fuel.ExtinctionMoisture, "moisture of extinction must be positive")
	}

	var sw float64
	for c := Class(0); c < NumClasses; c++ {
		sw += fuel.SAV[c] * fuel.Loading[c]
	}
	if sw <= 0 {
		return invalid("sw_t", sw, "surface-to-volume ratio not defined")
	}

	if fuel.ParticleDensity <= 0 {
		return invalid("rho_p", fuel.ParticleDensity, "particle density must be positive")
	}
	if fuel.HeatContent <= 0 {
		return invalid("heat", fuel.HeatContent, "heat content must be positive")
	}
	if fuel.EffectiveMineral <= 0 {
		return invalid("s_e", fuel.EffectiveMineral, "effective mineral content must be positive")
	}
	if fuel.TotalMineral < 0 || fuel.TotalMineral >= 100 {
		return invalid("s_t", fuel.TotalMineral, "total mineral content must be in [0, 100)")
	}

	if env.WindSpeed < 0 {
		return invalid(WindSpeed.String(), env.WindSpeed, "negative wind speed")
	}
	if env.Slope < 0 || env.Slope >= 90 {
		return invalid(Slope.String(), env.Slope, "slope must be in [0, 90) degrees")
	}

	return nil
}

// constantsFinite reports the first fuel constant outside the packed inputs
// that is NaN or infinite.
func constantsFinite(fuel FuelComplex) (string, float64, bool) {
	for c := Class(0); c < NumClasses; c++ {
		if x := fuel.SAV[c]; math.IsNaN(x) || math.IsInf(x, 0) {
			return "sv_" + c.String(), x, false
		}
	}
	constants := []struct {
		field string
		value float64
	}{
		{"rho_p", fuel.ParticleDensity},
		{"heat", fuel.HeatContent},
		{"s_t", fuel.TotalMineral},
		{"s_e", fuel.EffectiveMineral},
	}
	for _, k := range constants {
		if math.IsNaN(k.value) || math.IsInf(k.value, 0) {
			return k.field, k.value, false
		}
	}
	return "", 0, true
}
