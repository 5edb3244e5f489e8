package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/chrissnell/wildfire/pkg/behave"
	"github.com/chrissnell/wildfire/pkg/fuelcond"
	"github.com/chrissnell/wildfire/pkg/sensitivity"
	"github.com/chrissnell/wildfire/pkg/solar"
)

// ErrUnknownBackend is returned by NewProvider for an unsupported backend name.
var ErrUnknownBackend = errors.New("config: unknown backend")

// ScenarioProvider defines the interface for scenario data sources
type ScenarioProvider interface {
	// Load the complete scenario
	LoadScenario() (*ScenarioData, error)
}

// NewProvider returns the provider for backend ("yaml" or "text"). An empty
// backend is inferred from the file extension: .yaml and .yml are YAML,
// anything else is the legacy text format.
func NewProvider(backend, filename string) (ScenarioProvider, error) {
	if backend == "" {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".yaml", ".yml":
			backend = "yaml"
		default:
			backend = "text"
		}
	}

	switch backend {
	case "yaml":
		return NewYAMLProvider(filename), nil
	case "text":
		return NewTextProvider(filename), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// ScenarioData represents one complete scenario: the solver inputs, their
// uncertainty and the settings of the tools that run it
type ScenarioData struct {
	Name        string             `json:"name"`
	Fuel        FuelData           `json:"fuel"`
	Environment EnvironmentData    `json:"environment"`
	StdDev      map[string]float64 `json:"stdv,omitempty"`
	Correlation [][]float64        `json:"correlation,omitempty"`
	NoData      *float64           `json:"nodata,omitempty"`
	Preheat     *PreheatData       `json:"preheat,omitempty"`
	Server      ServerData         `json:"server"`
}

// ClassData holds one value per fuel size class
type ClassData struct {
	Dead1h    float64 `json:"d1"`
	Dead10h   float64 `json:"d2"`
	Dead100h  float64 `json:"d3"`
	LiveHerb  float64 `json:"lh"`
	LiveWoody float64 `json:"lw"`
}

func (c ClassData) array() [behave.NumClasses]float64 {
	return [behave.NumClasses]float64{c.Dead1h, c.Dead10h, c.Dead100h, c.LiveHerb, c.LiveWoody}
}

// FuelData holds the fuel complex. Zero constants fall back to the
// standard fuel model values.
type FuelData struct {
	Loading            ClassData `json:"loading"`  // kg/m2
	Moisture           ClassData `json:"moisture"` // %
	SAVDead1h          float64   `json:"sv_d1"`    // 1/m
	Depth              float64   `json:"depth"`    // m
	ExtinctionMoisture float64   `json:"mx"`       // %
	Dynamic            bool      `json:"dynamic,omitempty"`

	ParticleDensity  *float64 `json:"particle_density,omitempty"`
	HeatContent      *float64 `json:"heat_content,omitempty"`
	TotalMineral     *float64 `json:"total_mineral,omitempty"`
	EffectiveMineral *float64 `json:"effective_mineral,omitempty"`
	SAVDead10h       *float64 `json:"sv_d2,omitempty"`
	SAVDead100h      *float64 `json:"sv_d3,omitempty"`
	SAVLive          *float64 `json:"sv_live,omitempty"`
}

// EnvironmentData holds wind and terrain
type EnvironmentData struct {
	WindSpeed     float64 `json:"wind_speed"`     // m/s
	WindDirection float64 `json:"wind_direction"` // degrees, from
	Slope         float64 `json:"slope"`          // degrees
	Aspect        float64 `json:"aspect"`         // degrees, downslope
}

// PreheatData enables the solar preheating spread factor
type PreheatData struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Altitude       float64   `json:"altitude"`
	Time           time.Time `json:"time"`
	AirTemperature float64   `json:"air_temperature"` // Celsius
	RelHumidity    float64   `json:"rel_humidity"`    // %
	CloudCover     float64   `json:"cloud_cover"`     // %
	Gain           float64   `json:"gain,omitempty"`
}

// ServerData holds the REST server configuration
type ServerData struct {
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
	Port       int    `json:"port,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
	Workers    int    `json:"workers,omitempty"`
}

// DefaultServerData returns the server defaults: all interfaces, port 8080.
func DefaultServerData() ServerData {
	return ServerData{
		ListenAddr: "0.0.0.0",
		Port:       8080,
	}
}

func (s ServerData) withDefaults() ServerData {
	def := DefaultServerData()
	if s.ListenAddr == "" {
		s.ListenAddr = def.ListenAddr
	}
	if s.Port == 0 {
		s.Port = def.Port
	}
	return s
}

// FuelComplex converts the fuel section into a solver fuel complex.
func (d *ScenarioData) FuelComplex() behave.FuelComplex {
	f := behave.NewFuelComplex()
	fd := d.Fuel

	f.Loading = fd.Loading.array()
	f.Moisture = fd.Moisture.array()
	f.SAV[behave.Dead1h] = fd.SAVDead1h
	f.Depth = fd.Depth
	f.ExtinctionMoisture = fd.ExtinctionMoisture
	f.Dynamic = fd.Dynamic

	override := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	override(&f.ParticleDensity, fd.ParticleDensity)
	override(&f.HeatContent, fd.HeatContent)
	override(&f.TotalMineral, fd.TotalMineral)
	override(&f.EffectiveMineral, fd.EffectiveMineral)
	override(&f.SAV[behave.Dead10h], fd.SAVDead10h)
	override(&f.SAV[behave.Dead100h], fd.SAVDead100h)
	override(&f.SAV[behave.LiveHerb], fd.SAVLive)
	override(&f.SAV[behave.LiveWoody], fd.SAVLive)
	return f
}

// Env converts the environment section.
func (d *ScenarioData) Env() behave.Environment {
	e := d.Environment
	return behave.Environment{
		WindSpeed:     e.WindSpeed,
		WindDirection: e.WindDirection,
		Slope:         e.Slope,
		Aspect:        e.Aspect,
	}
}

// SolverConfig returns the solver configuration. A scenario no-data value
// replaces the default sentinel on every input, and a preheat block adds
// the solar preheating factor.
func (d *ScenarioData) SolverConfig() behave.Config {
	cfg := behave.DefaultConfig()
	if d.NoData != nil {
		cfg.NoData = behave.Fill(*d.NoData)
	}
	if cond, ok := d.Condition(); ok {
		cfg = cfg.WithFactors(fuelcond.Preheat{Condition: cond, Gain: d.Preheat.Gain})
	}
	return cfg
}

// Condition conditions the fuel to the sun and weather of the preheat
// block. The midflame wind is taken as the wind at the top of the fuel bed.
func (d *ScenarioData) Condition() (fuelcond.Condition, bool) {
	ph := d.Preheat
	if ph == nil {
		return fuelcond.Condition{}, false
	}
	env := d.Environment
	site := fuelcond.Site{
		Time:      ph.Time,
		Latitude:  ph.Latitude,
		Longitude: ph.Longitude,
		Slope:     env.Slope,
		Aspect:    env.Aspect,
		Sky:       solar.Sky{Altitude: ph.Altitude, CloudCover: ph.CloudCover},
	}
	wx := fuelcond.Weather{
		AirTemperature: ph.AirTemperature,
		RelHumidity:    ph.RelHumidity,
		Wind20ft:       env.WindSpeed / fuelcond.WindAdjustmentFactor(d.Fuel.Depth),
	}
	return fuelcond.Conditions(site, wx, d.Fuel.Depth, d.Fuel.Moisture.Dead1h), true
}

// SensitivityInput builds the input uncertainty from the stdv and
// correlation sections. Inputs without a stdv entry are certain.
func (d *ScenarioData) SensitivityInput() (sensitivity.Input, error) {
	var stdv behave.Vector
	for key, s := range d.StdDev {
		in, err := behave.ParseInput(key)
		if err != nil {
			return sensitivity.Input{}, fmt.Errorf("config: stdv: %w", err)
		}
		stdv[in] = s
	}

	in := sensitivity.NewInput(stdv)
	if len(d.Correlation) > 0 {
		corr, err := sensitivity.NewCorrelation(d.Correlation)
		if err != nil {
			return sensitivity.Input{}, fmt.Errorf("config: %w", err)
		}
		in.Correlation = corr
	}
	if err := in.Validate(); err != nil {
		return sensitivity.Input{}, fmt.Errorf("config: %w", err)
	}
	return in, nil
}

// setInput stores a canonical input value on the scenario.
func (d *ScenarioData) setInput(in behave.Input, v float64) {
	classes := func(c *ClassData) []*float64 {
		return []*float64{&c.Dead1h, &c.Dead10h, &c.Dead100h, &c.LiveHerb, &c.LiveWoody}
	}
	switch {
	case in <= behave.LoadLiveWoody:
		*classes(&d.Fuel.Loading)[in-behave.LoadDead1h] = v
	case in <= behave.MoistLiveWoody:
		*classes(&d.Fuel.Moisture)[in-behave.MoistDead1h] = v
	case in == behave.SAVDead1h:
		d.Fuel.SAVDead1h = v
	case in == behave.Depth:
		d.Fuel.Depth = v
	case in == behave.ExtinctionMoisture:
		d.Fuel.ExtinctionMoisture = v
	case in == behave.WindSpeed:
		d.Environment.WindSpeed = v
	case in == behave.WindDirection:
		d.Environment.WindDirection = v
	case in == behave.Slope:
		d.Environment.Slope = v
	case in == behave.Aspect:
		d.Environment.Aspect = v
	}
}
