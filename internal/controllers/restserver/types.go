package restserver

import (
	"github.com/chrissnell/wildfire/pkg/behave"
	"github.com/chrissnell/wildfire/pkg/config"
	"github.com/chrissnell/wildfire/pkg/sensitivity"
)

// ScenarioRequest is one fuel complex and environment to solve.
type ScenarioRequest struct {
	Name        string                 `json:"name,omitempty"`
	Fuel        config.FuelData        `json:"fuel"`
	Environment config.EnvironmentData `json:"environment"`
	NoData      *float64               `json:"nodata,omitempty"`
	Preheat     *config.PreheatData    `json:"preheat,omitempty"`
}

// scenario wraps the request in the config model so the request shares its
// conversions with scenario files.
func (r ScenarioRequest) scenario() *config.ScenarioData {
	return &config.ScenarioData{
		Name:        r.Name,
		Fuel:        r.Fuel,
		Environment: r.Environment,
		NoData:      r.NoData,
		Preheat:     r.Preheat,
	}
}

// SensitivityRequest adds input uncertainty to a scenario. Samples > 0 also
// runs a Monte Carlo cross-check of that many draws.
type SensitivityRequest struct {
	ScenarioRequest
	StdDev      map[string]float64 `json:"stdv"`
	Correlation [][]float64        `json:"correlation,omitempty"`
	Samples     int                `json:"samples,omitempty"`
	Seed        uint64             `json:"seed,omitempty"`
}

// BatchRequest is a list of scenarios solved concurrently.
type BatchRequest struct {
	Scenarios []ScenarioRequest `json:"scenarios"`
}

// SolveResponse is returned by POST /solve
type SolveResponse struct {
	ID    string        `json:"id"`
	Name  string        `json:"name,omitempty"`
	State *behave.State `json:"state"`
}

// SensitivityResponse is returned by POST /sensitivity
type SensitivityResponse struct {
	ID     string                     `json:"id"`
	Name   string                     `json:"name,omitempty"`
	State  *behave.State              `json:"state"`
	Report *sensitivity.Report        `json:"report"`
	Sample *sensitivity.SampleSummary `json:"sample,omitempty"`
}

// BatchResponse is returned by POST /batch
type BatchResponse struct {
	ID     string          `json:"id"`
	States []*behave.State `json:"states"`
}

// VersionResponse is returned by GET /version
type VersionResponse struct {
	Version string `json:"version"`
}
