// Package fuelcond conditions dead fuel to the weather and sunlight around
// it: fuel temperature and humidity at the fuel surface, fine dead fuel
// moisture, wind at fuel level, and the solar preheating spread factor.
//
// The underlying regressions were fitted in English units. Functions here
// take SI inputs and convert internally.
package fuelcond

import (
	"math"

	"github.com/chrissnell/wildfire/pkg/solar"
)

const (
	mphPerMPS      = 2.236936
	feetPerMeter   = 3.28084
	inchesPerMM    = 1 / 25.4
	fahrenheitStep = 1.8
)

func toFahrenheit(c float64) float64 { return c*fahrenheitStep + 32 }

// FuelTemperature returns the temperature in Celsius of fuel exposed to
// irradiance (W/m2) in air at airTemp (Celsius), cooled by wind at fuel
// level (m/s). Rothermel (1986) eq. 1.
func FuelTemperature(irradiance, airTemp, fuelWind float64) float64 {
	if irradiance <= 0 {
		return airTemp
	}
	i := irradiance / solar.CalPerCm2MinToWatts
	u := math.Max(fuelWind, 0) * mphPerMPS
	rise := i / (0.015*u + 0.026)
	return airTemp + rise/fahrenheitStep
}

// NearFuelHumidity returns the relative humidity (%) of the air in contact
// with fuel at fuelTemp, given the ambient humidity and air temperature in
// Celsius. Rothermel (1986) eq. 2.
func NearFuelHumidity(rh, fuelTemp, airTemp float64) float64 {
	return rh * math.Exp(-0.033*(fuelTemp-airTemp)*fahrenheitStep)
}

// WindAdjustmentFactor returns the ratio of fuel-level wind to the 20-ft wind
// for vegetation of the given height in metres (Albini and Baughman). A zero
// height is treated as 0.1 ft.
func WindAdjustmentFactor(height float64) float64 {
	h := height * feetPerMeter
	if h <= 0 {
		h = 0.1
	}
	return 1 / math.Log((20+0.36*h)/(0.13*h))
}

// FuelLevelWind scales a 20-ft wind speed to the top of the fuel bed.
func FuelLevelWind(wind20ft, height float64) float64 {
	return wind20ft * WindAdjustmentFactor(height)
}

// DailyFineFuelMoisture returns the fine dead fuel moisture (%) from the
// Canadian standard daily fine fuel moisture code, starting from noon
// moisture m0 and corrected for fuel temperature (Celsius), near-fuel
// humidity (%), 20-ft wind (m/s) and rainfall (mm).
func DailyFineFuelMoisture(m0, fuelTemp, rh, wind20ft, rain float64) float64 {
	tf := toFahrenheit(fuelTemp)
	w := wind20ft * mphPerMPS
	r := rain * inchesPerMM

	f0 := 101 - m0
	fr := f0
	if r > 0.02 {
		ra := math.Min(r, 1.5)
		var f float64
		switch {
		case ra <= 0.055:
			f = -56.0 - 55.6*math.Log(ra+0.04)
		case ra <= 0.225:
			f = -1.0 - 18.2*math.Log(ra-0.04)
		default:
			f = 14 - 8.25*math.Log(ra-0.075)
		}
		fr = math.Max(0, f*f0/100+1-8.73*math.Exp(-0.1117*f0))
	}
	mr := 101 - fr

	ed := 0.942*math.Pow(rh, 0.679) + 11*math.Exp(rh/10-10)
	ew := 0.597*math.Pow(rh, 0.768) + 14*math.Exp(rh/8-12.5)

	var m float64
	switch {
	case math.Abs(mr-ed) < 1e-9:
		m = mr
	case mr < ed:
		// wetting, Anderson (2009) correction
		m = ew + (ew-mr)/1.9953
	default:
		w = math.Min(math.Max(1.0, w), 14.0)
		x := 0.424*(1-math.Pow(rh/100, 1.7)) + 0.088*math.Sqrt(w)*(1-math.Pow(rh/100, 8))
		m = ed + (mr-ed)/math.Pow(10, x)
	}

	var delta float64
	if f0 < 99.0 {
		delta = math.Max(-16.0, (tf-70)*(0.63-0.0065*fr))
	}
	f := math.Max(0, math.Min(99, 101-m+delta))
	return 101 - f
}

// HourlyFineFuelMoisture advances fine dead fuel moisture m0 (%) by one hour
// toward the equilibrium set by humidity (%), temperature (Celsius) and the
// 20-ft wind (m/s), after Van Wagner's hourly FFMC.
func HourlyFineFuelMoisture(m0, rh, temp, wind20ft float64) float64 {
	wk := math.Min(math.Max(0, wind20ft*3.6), 22.5)

	tempTerm := 0.18 * (21.1 - temp) * (1 - math.Exp(-0.115*rh))
	ed := 0.942*math.Pow(rh, 0.679) + 11*math.Exp((rh-100)/10) + tempTerm
	ew := 0.618*math.Pow(rh, 0.753) + 10*math.Exp((rh-100)/10) + tempTerm

	rate := func(h float64) float64 {
		k := 0.424*(1-math.Pow(h/100, 1.7)) + 0.0694*math.Sqrt(wk)*(1-math.Pow(h/100, 8))
		return k * 0.0579 * math.Exp(0.0365*temp)
	}

	switch {
	case m0 > ed:
		return ed + (m0-ed)*math.Exp(-2.303*rate(rh))
	case m0 < ew:
		return ew - (ew-m0)*math.Exp(-2.303*rate(100-rh))
	default:
		return m0
	}
}
