package solar

import (
	"math"
	"time"
)

// Daylight returns sunrise and sunset on the calendar day of day, in day's
// location. ok is false for polar day (sun never sets) or polar night (sun
// never rises).
func Daylight(day time.Time, lat, lon float64) (sunrise, sunset time.Time, ok bool) {
	y, m, d := day.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	// Declination and equation of time change slowly enough that the
	// values at noon UTC serve the whole day.
	noon := Position(midnight.Add(12*time.Hour), lat, lon)

	// At sunrise/sunset the sun is at the horizon:
	// cos(H) = -tan(lat) * tan(declination)
	cosH := -math.Tan(degToRad(lat)) * math.Tan(degToRad(noon.Declination))
	if cosH < -1 || cosH > 1 {
		return time.Time{}, time.Time{}, false
	}

	// 15 degrees of hour angle per hour, 4 minutes of time per degree of longitude
	halfDay := radToDeg(math.Acos(cosH)) * 4
	solarNoon := 720 - 4*lon - noon.EquationOfTime

	minutes := func(v float64) time.Duration {
		return time.Duration(math.Round(v * float64(time.Minute)))
	}
	sunrise = midnight.Add(minutes(solarNoon - halfDay)).In(day.Location())
	sunset = midnight.Add(minutes(solarNoon + halfDay)).In(day.Location())
	return sunrise, sunset, true
}

// HourOfDay returns the clock time of t as fractional hours in t's location.
func HourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}
