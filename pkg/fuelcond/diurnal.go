package fuelcond

import (
	"math"
	"time"

	"github.com/chrissnell/wildfire/pkg/solar"
)

// Anchors are the readings of one weather element (air temperature or
// relative humidity) at the four times of day a diurnal curve is fitted to.
type Anchors struct {
	Sunrise   float64 `json:"sunrise"`
	Noon      float64 `json:"noon"`
	Afternoon float64 `json:"afternoon"` // 1400 local
	Sunset    float64 `json:"sunset"`
}

// Interpolate estimates the element at hour (0-24, local time) from the
// anchors, given the local hours of sunrise and sunset. Sunrise is clamped
// to before noon and sunset to after 1400.
//
// Mornings follow a cosine from sunrise to the noon value, early afternoon is
// linear from noon to 1400, late afternoon follows a cosine to the sunset
// value, and night follows a sine back to the next sunrise value.
func (a Anchors) Interpolate(hour, sunrise, sunset float64) float64 {
	sunrise = math.Min(sunrise, 11.5)
	sunset = math.Max(sunset, 14.5)
	hour = math.Mod(hour, 24)
	if hour < 0 {
		hour += 24
	}

	quarter := func(frac float64) float64 { return frac * math.Pi / 2 }

	switch {
	case hour >= sunrise && hour <= 12:
		return a.Noon + (a.Sunrise-a.Noon)*math.Cos(quarter((hour-sunrise)/(12-sunrise)))
	case hour > 12 && hour < 14:
		return a.Noon + (a.Afternoon-a.Noon)*(hour-12)/2
	case hour >= 14 && hour <= sunset:
		return a.Afternoon + (a.Afternoon-a.Sunset)*(math.Cos(quarter((hour-14)/(sunset-14)))-1)
	default:
		if hour < sunset {
			hour += 24
		}
		return a.Sunset + (a.Sunrise-a.Sunset)*math.Sin(quarter((hour-sunset)/(sunrise+24-sunset)))
	}
}

// Diurnal holds the anchors for air temperature and humidity at a site.
type Diurnal struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Temperature Anchors `json:"temperature"`  // Celsius
	Humidity    Anchors `json:"rel_humidity"` // %
}

// At returns the air temperature and relative humidity at t, which must carry
// the site's local time zone. The curves are pinned to local sunrise and
// sunset, or to 0600 and 1800 during polar day or night.
func (d Diurnal) At(t time.Time) (temp, rh float64) {
	rise, set := 6.0, 18.0
	if sunrise, sunset, ok := solar.Daylight(t, d.Latitude, d.Longitude); ok {
		rise, set = solar.HourOfDay(sunrise), solar.HourOfDay(sunset)
	}
	hour := solar.HourOfDay(t)
	return d.Temperature.Interpolate(hour, rise, set), d.Humidity.Interpolate(hour, rise, set)
}
