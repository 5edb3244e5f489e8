package fuelcond

import (
	"time"

	"github.com/chrissnell/wildfire/pkg/solar"
)

// Site locates a fuel bed in space and time.
type Site struct {
	Time      time.Time
	Latitude  float64
	Longitude float64
	Slope     float64 // degrees
	Aspect    float64 // degrees, downslope
	Sky       solar.Sky
}

// Weather is the ambient weather at the site.
type Weather struct {
	AirTemperature float64 // Celsius
	RelHumidity    float64 // %
	Wind20ft       float64 // m/s
}

// Condition is dead fuel conditioned to the sun and weather at a site.
type Condition struct {
	Sunlight         solar.Sunlight `json:"sunlight"`
	FuelWind         float64        `json:"fuel_wind"`          // m/s
	AirTemperature   float64        `json:"air_temperature"`    // Celsius
	FuelTemperature  float64        `json:"fuel_temperature"`   // Celsius
	NearFuelHumidity float64        `json:"near_fuel_humidity"` // %
	Dead1hMoisture   float64        `json:"m_d1"`               // %
}

// Conditions heats fuel of the given height (m) under the sunlight reaching
// the slope, then advances its 1-h dead moisture m0 one hour toward
// equilibrium with the air next to the fuel.
func Conditions(site Site, wx Weather, height, m0 float64) Condition {
	sun := solar.Irradiance(site.Time, site.Latitude, site.Longitude, site.Sky, site.Slope, site.Aspect)
	uh := FuelLevelWind(wx.Wind20ft, height)
	tf := FuelTemperature(sun.Slope, wx.AirTemperature, uh)
	hf := NearFuelHumidity(wx.RelHumidity, tf, wx.AirTemperature)

	return Condition{
		Sunlight:         sun,
		FuelWind:         uh,
		AirTemperature:   wx.AirTemperature,
		FuelTemperature:  tf,
		NearFuelHumidity: hf,
		Dead1hMoisture:   HourlyFineFuelMoisture(m0, hf, tf, wx.Wind20ft),
	}
}
