package fuelcond

import (
	"math"
	"testing"
	"time"

	"github.com/chrissnell/wildfire/pkg/behave"
	"github.com/chrissnell/wildfire/pkg/solar"
)

func fToC(f float64) float64 { return (f - 32) / 1.8 }

func TestFuelTemperature(t *testing.T) {
	// 1.98 cal/(cm2 min) through p = 0.7 at zenith, 70F air, 0.5 mph at the fuel
	i := 1.98 * 0.7 * solar.CalPerCm2MinToWatts
	want := fToC(70 + 1.98*0.7/(0.015*0.5+0.026))

	tests := []struct {
		name       string
		irradiance float64
		airTemp    float64
		wind       float64
		expected   float64
	}{
		{"full sun, light wind", i, fToC(70), 0.5 / mphPerMPS, want},
		{"no sun", 0, 25, 2, 25},
		{"negative irradiance", -10, 25, 2, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FuelTemperature(tt.irradiance, tt.airTemp, tt.wind)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("FuelTemperature = %g, want %g", got, tt.expected)
			}
		})
	}

	calm := FuelTemperature(i, 20, 0)
	windy := FuelTemperature(i, 20, 5)
	if windy >= calm {
		t.Errorf("wind should cool fuel: calm %g, windy %g", calm, windy)
	}
}

func TestNearFuelHumidity(t *testing.T) {
	got := NearFuelHumidity(30, fToC(104), fToC(70))
	if math.Abs(got-10) > 1 {
		t.Errorf("NearFuelHumidity = %g, want ~10", got)
	}
	if got := NearFuelHumidity(45, 20, 20); got != 45 {
		t.Errorf("equal temperatures: %g, want 45", got)
	}
}

func TestWindAdjustmentFactor(t *testing.T) {
	tests := []struct {
		name      string
		heightFt  float64
		expected  float64
		tolerance float64
	}{
		{"1 ft grass", 1, 0.2, 0.05},
		{"6 ft brush", 6, 0.3, 0.05},
		{"half foot litter", 0.5, 0.17, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WindAdjustmentFactor(tt.heightFt / feetPerMeter)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("WindAdjustmentFactor = %g, want %g", got, tt.expected)
			}
		})
	}

	if WindAdjustmentFactor(0) != WindAdjustmentFactor(0.1/feetPerMeter) {
		t.Error("zero height should be treated as 0.1 ft")
	}
	if got, want := FuelLevelWind(10, 0.3048), 10*WindAdjustmentFactor(0.3048); got != want {
		t.Errorf("FuelLevelWind = %g, want %g", got, want)
	}
}

func TestHourlyFineFuelMoisture(t *testing.T) {
	tests := []struct {
		name        string
		m0, rh, tc  float64
		wind        float64
		first       float64
		equilibrium float64
	}{
		{"drying", 20, 20, 30, 5, 16.572944537851427, 5.764257541190908},
		{"wetting", 3, 90, 15, 2, 5.601138902983415, 23.080214656888575},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := HourlyFineFuelMoisture(tt.m0, tt.rh, tt.tc, tt.wind)
			if math.Abs(m-tt.first) > 1e-9 {
				t.Errorf("first hour = %.12g, want %.12g", m, tt.first)
			}
			for i := 0; i < 200; i++ {
				m = HourlyFineFuelMoisture(m, tt.rh, tt.tc, tt.wind)
			}
			if math.Abs(m-tt.equilibrium) > 1e-6 {
				t.Errorf("equilibrium = %g, want %g", m, tt.equilibrium)
			}
		})
	}

	// between the wetting and drying curves nothing changes
	if got := HourlyFineFuelMoisture(5, 20, 30, 5); got != 5 {
		t.Errorf("moisture between equilibria changed to %g", got)
	}
}

func TestDailyFineFuelMoisture(t *testing.T) {
	dry := DailyFineFuelMoisture(3.2, 30, 16, 6, 0)
	if math.Abs(dry-6.024525450738295) > 1e-9 {
		t.Errorf("dry day = %.12g", dry)
	}
	wet := DailyFineFuelMoisture(3.2, 30, 16, 6, 10)
	if wet <= dry {
		t.Errorf("rain should raise moisture: dry %g, wet %g", dry, wet)
	}
	if drizzle := DailyFineFuelMoisture(3.2, 30, 16, 6, 0.3); drizzle != dry {
		t.Errorf("rain under 0.02 in should be ignored: %g vs %g", drizzle, dry)
	}
	if m := DailyFineFuelMoisture(10, 25, 40, 3, 0); m < 2 || m > 101 {
		t.Errorf("moisture %g out of range", m)
	}
}

func TestAnchorsInterpolate(t *testing.T) {
	a := Anchors{Sunrise: 10, Noon: 25, Afternoon: 30, Sunset: 22}
	const sunrise, sunset = 6.0, 19.0

	tests := []struct {
		name     string
		hour     float64
		expected float64
	}{
		{"sunrise", 6, 10},
		{"noon", 12, 25},
		{"early afternoon", 13, 27.5},
		{"1400", 14, 30},
		{"sunset", 19, 22},
		{"midnight wraps", 24, a.Interpolate(0, sunrise, sunset)},
		{"next sunrise", 6 - 1e-9, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Interpolate(tt.hour, sunrise, sunset)
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("Interpolate(%g) = %g, want %g", tt.hour, got, tt.expected)
			}
		})
	}

	// night cools monotonically from sunset to sunrise
	prev := a.Interpolate(sunset, sunrise, sunset)
	for h := sunset + 1; h < sunrise+24; h++ {
		v := a.Interpolate(h, sunrise, sunset)
		if v > prev {
			t.Errorf("temperature rose overnight at %g: %g > %g", h, v, prev)
		}
		prev = v
	}
}

func TestDiurnalAt(t *testing.T) {
	pdt := time.FixedZone("PDT", -7*3600)
	d := Diurnal{
		Latitude:    47.6,
		Longitude:   -122.3,
		Temperature: Anchors{Sunrise: 12, Noon: 24, Afternoon: 27, Sunset: 20},
		Humidity:    Anchors{Sunrise: 80, Noon: 40, Afternoon: 30, Sunset: 45},
	}
	temp, rh := d.At(time.Date(2025, 6, 21, 14, 0, 0, 0, pdt))
	if temp != 27 || rh != 30 {
		t.Errorf("At(1400) = %g, %g; want 27, 30", temp, rh)
	}
	temp, rh = d.At(time.Date(2025, 6, 21, 12, 0, 0, 0, pdt))
	if math.Abs(temp-24) > 1e-9 || math.Abs(rh-40) > 1e-9 {
		t.Errorf("At(1200) = %g, %g; want 24, 40", temp, rh)
	}
}

func noonSite(aspect float64) Site {
	return Site{
		Time:      time.Date(2025, 6, 21, 13, 11, 0, 0, time.FixedZone("PDT", -7*3600)),
		Latitude:  47.6,
		Longitude: -122.3,
		Slope:     20,
		Aspect:    aspect,
	}
}

func TestConditions(t *testing.T) {
	wx := Weather{AirTemperature: 28, RelHumidity: 25, Wind20ft: 3}

	south := Conditions(noonSite(180), wx, 0.3, 10)
	if south.FuelTemperature <= wx.AirTemperature {
		t.Errorf("sunlit fuel %g not warmer than air %g", south.FuelTemperature, wx.AirTemperature)
	}
	if south.NearFuelHumidity >= wx.RelHumidity {
		t.Errorf("near-fuel humidity %g should drop below %g", south.NearFuelHumidity, wx.RelHumidity)
	}
	if south.Dead1hMoisture >= 10 {
		t.Errorf("1-h moisture %g should dry from 10", south.Dead1hMoisture)
	}

	north := Conditions(noonSite(0), wx, 0.3, 10)
	if north.FuelTemperature >= south.FuelTemperature {
		t.Errorf("north slope %g should be cooler than south slope %g", north.FuelTemperature, south.FuelTemperature)
	}

	night := noonSite(180)
	night.Time = night.Time.Add(12 * time.Hour)
	c := Conditions(night, wx, 0.3, 10)
	if c.FuelTemperature != wx.AirTemperature || c.NearFuelHumidity != wx.RelHumidity {
		t.Errorf("night conditioning changed fuel: %+v", c)
	}
}

func TestPreheatFraction(t *testing.T) {
	tests := []struct {
		name     string
		preheat  Preheat
		expected float64
	}{
		{"default ignition", Preheat{Condition: Condition{AirTemperature: 20, FuelTemperature: 50}}, 0.1},
		{"gain", Preheat{Condition: Condition{AirTemperature: 20, FuelTemperature: 50}, Gain: 2}, 0.2},
		{"custom ignition", Preheat{Condition: Condition{AirTemperature: 20, FuelTemperature: 50}, IgnitionTemperature: 170}, 0.2},
		{"capped", Preheat{Condition: Condition{AirTemperature: 20, FuelTemperature: 50}, Gain: 100}, maxPreheat},
		{"no rise", Preheat{Condition: Condition{AirTemperature: 20, FuelTemperature: 20}}, 0},
		{"air above ignition", Preheat{Condition: Condition{AirTemperature: 400, FuelTemperature: 410}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.preheat.Fraction(); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Fraction = %g, want %g", got, tt.expected)
			}
		})
	}
}

func TestPreheatFactor(t *testing.T) {
	v := behave.Vector{0.4483, 0.2242, 0.1121, 0.1121, 0, 6, 7, 8, 80, 120, 9842.52, 0.3048, 15, 0, 0, 0, 0}

	base, err := behave.NewSolver(behave.DefaultConfig(), nil).SolveVector(v, behave.NewFuelComplex())
	if err != nil {
		t.Fatal(err)
	}

	p := Preheat{Condition: Condition{
		Sunlight:        solar.Sunlight{Sun: solar.Sun{Elevation: 50, Azimuth: 135}},
		AirTemperature:  20,
		FuelTemperature: 50,
	}}
	cfg := behave.DefaultConfig().WithFactors(p)
	st, err := behave.NewSolver(cfg, nil).SolveVector(v, behave.NewFuelComplex())
	if err != nil {
		t.Fatal(err)
	}

	// no wind and no slope: the spread rate grows by exactly 1/(1-f)
	want := base.RateOfSpread() / (1 - 0.1)
	if math.Abs(st.RateOfSpread()-want) > 1e-9*want {
		t.Errorf("ros = %g, want %g", st.RateOfSpread(), want)
	}
	if math.Abs(st.SpreadDirection-135) > 1e-9 {
		t.Errorf("spread direction = %g, want sun azimuth 135", st.SpreadDirection)
	}
	if st.CanDerive {
		t.Error("preheated state should not be differentiable")
	}

	p.Condition.Sunlight.Sun.Elevation = -5
	if f := p.Factor(base); f != (behave.Factor{}) {
		t.Errorf("factor with sun down = %+v", f)
	}
}
