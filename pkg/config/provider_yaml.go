package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLProvider implements ScenarioProvider for YAML scenario files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML scenario provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadScenario loads the scenario from the YAML file
func (y *YAMLProvider) LoadScenario() (*ScenarioData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}
	return ParseYAML(cfgFile)
}

// ParseYAML decodes a YAML scenario document. Unknown keys are rejected.
func ParseYAML(doc []byte) (*ScenarioData, error) {
	var sy ScenarioYAML
	dec := yaml.NewDecoder(bytes.NewReader(doc))
	dec.KnownFields(true)
	if err := dec.Decode(&sy); err != nil {
		return nil, fmt.Errorf("config: parsing yaml: %w", err)
	}

	// Convert to our internal format
	sd := &ScenarioData{
		Name: sy.Name,
		Fuel: FuelData{
			Loading:            ClassData(sy.Fuel.Loading),
			Moisture:           ClassData(sy.Fuel.Moisture),
			SAVDead1h:          sy.Fuel.SAVDead1h,
			Depth:              sy.Fuel.Depth,
			ExtinctionMoisture: sy.Fuel.ExtinctionMoisture,
			Dynamic:            sy.Fuel.Dynamic,
			ParticleDensity:    sy.Fuel.ParticleDensity,
			HeatContent:        sy.Fuel.HeatContent,
			TotalMineral:       sy.Fuel.TotalMineral,
			EffectiveMineral:   sy.Fuel.EffectiveMineral,
			SAVDead10h:         sy.Fuel.SAVDead10h,
			SAVDead100h:        sy.Fuel.SAVDead100h,
			SAVLive:            sy.Fuel.SAVLive,
		},
		Environment: EnvironmentData(sy.Environment),
		StdDev:      sy.StdDev,
		Correlation: sy.Correlation,
		NoData:      sy.NoData,
		Server: ServerData{
			Cert:       sy.Server.Cert,
			Key:        sy.Server.Key,
			Port:       sy.Server.Port,
			ListenAddr: sy.Server.ListenAddr,
			Workers:    sy.Server.Workers,
		}.withDefaults(),
	}

	if sy.Preheat != nil {
		sd.Preheat = &PreheatData{
			Latitude:       sy.Preheat.Latitude,
			Longitude:      sy.Preheat.Longitude,
			Altitude:       sy.Preheat.Altitude,
			Time:           sy.Preheat.Time,
			AirTemperature: sy.Preheat.AirTemperature,
			RelHumidity:    sy.Preheat.RelHumidity,
			CloudCover:     sy.Preheat.CloudCover,
			Gain:           sy.Preheat.Gain,
		}
	}

	return sd, nil
}

// YAML-specific structs with YAML tags for parsing scenario files
type ScenarioYAML struct {
	Name        string             `yaml:"name"`
	Fuel        FuelYAML           `yaml:"fuel"`
	Environment EnvironmentYAML    `yaml:"environment"`
	StdDev      map[string]float64 `yaml:"stdv,omitempty"`
	Correlation [][]float64        `yaml:"correlation,omitempty"`
	NoData      *float64           `yaml:"nodata,omitempty"`
	Preheat     *PreheatYAML       `yaml:"preheat,omitempty"`
	Server      ServerYAML         `yaml:"server,omitempty"`
}

type ClassYAML struct {
	Dead1h    float64 `yaml:"d1"`
	Dead10h   float64 `yaml:"d2"`
	Dead100h  float64 `yaml:"d3"`
	LiveHerb  float64 `yaml:"lh"`
	LiveWoody float64 `yaml:"lw"`
}

type FuelYAML struct {
	Loading            ClassYAML `yaml:"loading"`
	Moisture           ClassYAML `yaml:"moisture"`
	SAVDead1h          float64   `yaml:"sv-d1"`
	Depth              float64   `yaml:"depth"`
	ExtinctionMoisture float64   `yaml:"mx"`
	Dynamic            bool      `yaml:"dynamic,omitempty"`
	ParticleDensity    *float64  `yaml:"particle-density,omitempty"`
	HeatContent        *float64  `yaml:"heat-content,omitempty"`
	TotalMineral       *float64  `yaml:"total-mineral,omitempty"`
	EffectiveMineral   *float64  `yaml:"effective-mineral,omitempty"`
	SAVDead10h         *float64  `yaml:"sv-d2,omitempty"`
	SAVDead100h        *float64  `yaml:"sv-d3,omitempty"`
	SAVLive            *float64  `yaml:"sv-live,omitempty"`
}

type EnvironmentYAML struct {
	WindSpeed     float64 `yaml:"wind-speed"`
	WindDirection float64 `yaml:"wind-direction"`
	Slope         float64 `yaml:"slope"`
	Aspect        float64 `yaml:"aspect"`
}

type PreheatYAML struct {
	Latitude       float64   `yaml:"latitude"`
	Longitude      float64   `yaml:"longitude"`
	Altitude       float64   `yaml:"altitude,omitempty"`
	Time           time.Time `yaml:"time"`
	AirTemperature float64   `yaml:"air-temperature"`
	RelHumidity    float64   `yaml:"rel-humidity,omitempty"`
	CloudCover     float64   `yaml:"cloud-cover,omitempty"`
	Gain           float64   `yaml:"gain,omitempty"`
}

type ServerYAML struct {
	Cert       string `yaml:"cert,omitempty"`
	Key        string `yaml:"key,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	ListenAddr string `yaml:"listen-addr,omitempty"`
	Workers    int    `yaml:"workers,omitempty"`
}
