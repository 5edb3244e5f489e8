package solar

import (
	"math"
	"testing"
	"time"
)

func TestDaylight(t *testing.T) {
	pdt := time.FixedZone("PDT", -7*3600)
	pst := time.FixedZone("PST", -8*3600)

	tests := []struct {
		name          string
		day           time.Time
		latitude      float64
		longitude     float64
		expectSunrise bool    // false if polar conditions
		sunriseHour   float64 // approximate local sunrise (±20 min tolerance)
		sunsetHour    float64 // approximate local sunset (±20 min tolerance)
	}{
		{
			name:          "Equator at equinox",
			day:           time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
			latitude:      0.0,
			longitude:     0.0,
			expectSunrise: true,
			sunriseHour:   6.1,
			sunsetHour:    18.1,
		},
		{
			name:          "Seattle WA summer solstice",
			day:           time.Date(2025, 6, 21, 0, 0, 0, 0, pdt),
			latitude:      47.6,
			longitude:     -122.3,
			expectSunrise: true,
			sunriseHour:   5.2,  // ~5:11 AM PDT
			sunsetHour:    21.2, // ~9:10 PM PDT
		},
		{
			name:          "Seattle WA winter solstice",
			day:           time.Date(2025, 12, 21, 0, 0, 0, 0, pst),
			latitude:      47.6,
			longitude:     -122.3,
			expectSunrise: true,
			sunriseHour:   7.95, // ~7:57 AM PST
			sunsetHour:    16.35, // ~4:20 PM PST
		},
		{
			name:          "London UK summer",
			day:           time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
			latitude:      51.5,
			longitude:     -0.1,
			expectSunrise: true,
			sunriseHour:   3.8,
			sunsetHour:    20.3,
		},
		{
			name:          "Arctic circle summer (polar day)",
			day:           time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
			latitude:      70.0,
			longitude:     25.0,
			expectSunrise: false,
		},
		{
			name:          "Arctic circle winter (polar night)",
			day:           time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC),
			latitude:      70.0,
			longitude:     25.0,
			expectSunrise: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sunrise, sunset, ok := Daylight(tt.day, tt.latitude, tt.longitude)
			if ok != tt.expectSunrise {
				t.Fatalf("ok = %v, want %v", ok, tt.expectSunrise)
			}
			if !ok {
				return
			}

			const tolerance = 20.0 / 60
			if got := HourOfDay(sunrise); math.Abs(got-tt.sunriseHour) > tolerance {
				t.Errorf("sunrise = %s (%.2fh), expected ~%.2fh", sunrise.Format(time.Kitchen), got, tt.sunriseHour)
			}
			if got := HourOfDay(sunset); math.Abs(got-tt.sunsetHour) > tolerance {
				t.Errorf("sunset = %s (%.2fh), expected ~%.2fh", sunset.Format(time.Kitchen), got, tt.sunsetHour)
			}
			if sunrise.Location() != tt.day.Location() {
				t.Errorf("sunrise location = %v, want %v", sunrise.Location(), tt.day.Location())
			}
		})
	}
}

func TestHourOfDay(t *testing.T) {
	tests := []struct {
		name     string
		t        time.Time
		expected float64
	}{
		{"midnight", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"noon", time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), 12},
		{"quarter past three pm", time.Date(2025, 1, 1, 15, 15, 0, 0, time.UTC), 15.25},
		{"with seconds", time.Date(2025, 1, 1, 6, 0, 36, 0, time.UTC), 6.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HourOfDay(tt.t); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("HourOfDay = %g, want %g", got, tt.expected)
			}
		})
	}
}
