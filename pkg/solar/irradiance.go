package solar

import (
	"math"
	"time"
)

const (
	// CalPerCm2MinToWatts converts cal/(cm2 min) to W/m2.
	CalPerCm2MinToWatts = 697.8

	// SolarConstant is the irradiance normal to the solar beam at the top
	// of the atmosphere at one AU, 1.98 cal/(cm2 min), in W/m2.
	SolarConstant = 1.98 * CalPerCm2MinToWatts

	// DefaultTransparency is the atmospheric transparency coefficient used
	// when a Sky leaves it unset.
	DefaultTransparency = 0.7

	feetPerMeter = 3.28084
)

// Sky describes the atmosphere between the sun and the fuel bed.
type Sky struct {
	Altitude     float64 // m above sea level
	CloudCover   float64 // %
	Transparency float64 // 0..1, zero selects DefaultTransparency
}

// Sunlight is the direct beam reaching a fuel bed.
type Sunlight struct {
	Sun        Sun     `json:"sun"`
	AirMass    float64 `json:"air_mass"`
	Direct     float64 `json:"direct"`     // W/m2, normal to the beam
	Horizontal float64 `json:"horizontal"` // W/m2
	Slope      float64 `json:"slope"`      // W/m2, on the sloped surface
}

// OpticalAirMass returns the ratio of the atmospheric path length at a solar
// elevation (degrees) to the path at zenith from sea level. The altitude is
// in metres. It is zero when the sun is at or below the horizon.
func OpticalAirMass(elevation, altitude float64) float64 {
	if elevation <= 0 {
		return 0
	}
	return math.Exp(-0.0000448*altitude*feetPerMeter) / math.Sin(degToRad(elevation))
}

// Attenuated returns the direct irradiance in W/m2 left after the beam
// crosses airMass atmospheres of the given transparency and a cloud layer
// covering cloudCover percent of the sky.
func Attenuated(airMass, cloudCover, transparency float64) float64 {
	if airMass <= 0 {
		return 0
	}
	tauCloud := 1 - cloudCover/100
	return SolarConstant * math.Pow(transparency, airMass) * tauCloud
}

// Horizontal projects a direct irradiance onto a level surface.
func Horizontal(direct, elevation float64) float64 {
	if elevation <= 0 {
		return 0
	}
	return direct * math.Sin(degToRad(elevation))
}

// OnSlope projects a direct irradiance onto a surface inclined slope degrees
// and facing aspect (degrees clockwise from north, the downslope direction).
// Surfaces facing away from the sun receive nothing.
func OnSlope(direct float64, sun Sun, slope, aspect float64) float64 {
	if !sun.Up() {
		return 0
	}
	el := degToRad(sun.Elevation)
	s := degToRad(slope)
	cosInc := math.Sin(el)*math.Cos(s) + math.Cos(el)*math.Sin(s)*math.Cos(degToRad(sun.Azimuth-aspect))
	if cosInc <= 0 {
		return 0
	}
	return direct * cosInc
}

// Irradiance computes the sunlight at time t on a fuel bed at lat, lon with
// the given slope and aspect.
func Irradiance(t time.Time, lat, lon float64, sky Sky, slope, aspect float64) Sunlight {
	sun := Position(t, lat, lon)
	out := Sunlight{Sun: sun}
	if !sun.Up() {
		return out
	}

	p := sky.Transparency
	if p == 0 {
		p = DefaultTransparency
	}
	out.AirMass = OpticalAirMass(sun.Elevation, sky.Altitude)
	out.Direct = Attenuated(out.AirMass, sky.CloudCover, p) / (sun.Distance * sun.Distance)
	out.Horizontal = Horizontal(out.Direct, sun.Elevation)
	out.Slope = OnSlope(out.Direct, sun, slope, aspect)
	return out
}
