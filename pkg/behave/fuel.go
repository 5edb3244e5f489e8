package behave

// Category constants of a fuel complex (SI units).
const (
	DefaultParticleDensity  = 512.72341   // kg/m3
	DefaultHeatContent      = 18606.70194 // kJ/kg
	DefaultTotalMineral     = 5.5         // percent
	DefaultEffectiveMineral = 1.0         // percent

	SAVDead10h  = 357.6115  // 1/m
	SAVDead100h = 98.4252   // 1/m
	SAVLive     = 4921.2598 // 1/m
)

// FuelComplex describes the fuel bed. Only the dead 1-hr surface-to-volume
// ratio varies between fuel models; the remaining ratios are category constants.
type FuelComplex struct {
	Loading  [NumClasses]float64 `json:"loading"`  // kg/m2
	Moisture [NumClasses]float64 `json:"moisture"` // percent
	SAV      [NumClasses]float64 `json:"sav"`      // 1/m

	Depth              float64 `json:"depth"`               // m
	ExtinctionMoisture float64 `json:"extinction_moisture"` // percent, dead fuel

	ParticleDensity  float64 `json:"particle_density"`  // kg/m3
	HeatContent      float64 `json:"heat_content"`      // kJ/kg
	TotalMineral     float64 `json:"total_mineral"`     // percent
	EffectiveMineral float64 `json:"effective_mineral"` // percent

	// Dynamic enables the transfer of cured live herbaceous fuel into the
	// dead 1-hr class.
	Dynamic bool `json:"dynamic"`
}

// NewFuelComplex returns an empty fuel complex carrying the category constants.
func NewFuelComplex() FuelComplex {
	return FuelComplex{
		SAV:              [NumClasses]float64{0, SAVDead10h, SAVDead100h, SAVLive, SAVLive},
		ParticleDensity:  DefaultParticleDensity,
		HeatContent:      DefaultHeatContent,
		TotalMineral:     DefaultTotalMineral,
		EffectiveMineral: DefaultEffectiveMineral,
	}
}

// TotalLoading returns the sum of the size class loadings.
func (f FuelComplex) TotalLoading() float64 {
	var w float64
	for _, l := range f.Loading {
		w += l
	}
	return w
}

// Environment holds the weather and terrain inputs. Wind direction is the
// meteorological "from" bearing; aspect is the downslope-facing bearing.
type Environment struct {
	WindSpeed     float64 `json:"wind_speed"`     // m/s
	WindDirection float64 `json:"wind_direction"` // degrees
	Slope         float64 `json:"slope"`          // degrees
	Aspect        float64 `json:"aspect"`         // degrees
}

// Pack flattens the variable parts of a fuel complex and environment into a Vector.
func Pack(fuel FuelComplex, env Environment) Vector {
	var v Vector
	for c := Class(0); c < NumClasses; c++ {
		v[LoadingInput(c)] = fuel.Loading[c]
		v[MoistureInput(c)] = fuel.Moisture[c]
	}
	v[SAVDead1h] = fuel.SAV[Dead1h]
	v[Depth] = fuel.Depth
	v[ExtinctionMoisture] = fuel.ExtinctionMoisture
	v[WindSpeed] = env.WindSpeed
	v[WindDirection] = env.WindDirection
	v[Slope] = env.Slope
	v[Aspect] = env.Aspect
	return v
}

// Unpack is the inverse of Pack. Constants not represented in the vector are
// taken from base.
func Unpack(v Vector, base FuelComplex) (FuelComplex, Environment) {
	fuel := base
	for c := Class(0); c < NumClasses; c++ {
		fuel.Loading[c] = v[LoadingInput(c)]
		fuel.Moisture[c] = v[MoistureInput(c)]
	}
	fuel.SAV[Dead1h] = v[SAVDead1h]
	fuel.Depth = v[Depth]
	fuel.ExtinctionMoisture = v[ExtinctionMoisture]

	env := Environment{
		WindSpeed:     v[WindSpeed],
		WindDirection: v[WindDirection],
		Slope:         v[Slope],
		Aspect:        v[Aspect],
	}
	return fuel, env
}
