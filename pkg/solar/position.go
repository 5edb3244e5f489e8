// Package solar computes the position of the sun and the direct irradiance
// reaching horizontal and sloped fuel beds.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Sun is the apparent position of the sun for an observer on the ground.
type Sun struct {
	Azimuth        float64 `json:"azimuth"`          // degrees clockwise from north
	Elevation      float64 `json:"elevation"`        // degrees above the horizon
	Declination    float64 `json:"declination"`      // degrees
	HourAngle      float64 `json:"hour_angle"`       // degrees, zero at solar noon
	EquationOfTime float64 `json:"equation_of_time"` // minutes
	Distance       float64 `json:"distance"`         // AU
}

// Up reports whether the sun is above the horizon.
func (s Sun) Up() bool {
	return s.Elevation > 0
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

// Position returns the sun's position at time t for an observer at the
// given latitude and longitude (degrees, east positive).
func Position(t time.Time, lat, lon float64) Sun {
	t = t.UTC()
	jd := julian.TimeToJD(t)
	T := (jd - 2451545.0) / 36525.0

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289
	Ω := 125.04 - 1934.136*T
	λ := L0 + C - 0.00569 - 0.00478*math.Sin(degToRad(Ω))
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	δ := math.Asin(math.Sin(degToRad(eps0)) * math.Sin(degToRad(λ)))

	y := math.Tan(degToRad(eps0)/2) * math.Tan(degToRad(eps0)/2)
	eot := radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4

	utcMin := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60.0
	tst := utcMin + 4*lon + eot
	ha := fixAngle(tst/4) - 180
	haRad := degToRad(ha)

	φ := degToRad(lat)
	sinEl := math.Sin(φ)*math.Sin(δ) + math.Cos(φ)*math.Cos(δ)*math.Cos(haRad)
	el := radToDeg(math.Asin(math.Max(-1, math.Min(1, sinEl))))
	az := fixAngle(radToDeg(math.Atan2(math.Sin(haRad), math.Cos(haRad)*math.Sin(φ)-math.Tan(δ)*math.Cos(φ))) + 180)

	// radius vector from the eccentric anomaly
	Mr := degToRad(M)
	e = 0.016708617 - T*(0.000042037+T*0.0000001236)
	E := Mr + e*math.Sin(Mr)*(1+e*math.Cos(Mr))
	v := 2 * math.Atan(math.Sqrt((1+e)/(1-e))*math.Tan(E/2))
	r := (1 - e*e) / (1 + e*math.Cos(v))

	return Sun{
		Azimuth:        az,
		Elevation:      el,
		Declination:    radToDeg(δ),
		HourAngle:      ha,
		EquationOfTime: eot,
		Distance:       r,
	}
}
