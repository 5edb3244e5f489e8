package behave

import "math"

// DefaultNoData is the sentinel that marks an input as unavailable.
const DefaultNoData = -9999.0

// Config holds solver settings. A Config is read-only once handed to NewSolver.
type Config struct {
	// NoData holds one sentinel per input. When any input equals its sentinel
	// the solve short-circuits to a zeroed State. Use NaN to disable the
	// check for an input.
	NoData Vector

	// Factors are applied in order during the wind and slope combination.
	Factors []AdditionalFactor
}

// DefaultConfig returns a configuration with DefaultNoData on every input and
// no additional factors.
func DefaultConfig() Config {
	return Config{
		NoData: Fill(DefaultNoData),
	}
}

// Missing returns the first input that carries its no-data sentinel.
func (c Config) Missing(v Vector) (Input, bool) {
	for i, x := range v {
		nd := c.NoData[i]
		if !math.IsNaN(nd) && x == nd {
			return Input(i), true
		}
	}
	return -1, false
}

// WithFactors returns a copy of c with the given factors appended.
func (c Config) WithFactors(factors ...AdditionalFactor) Config {
	out := c
	out.Factors = make([]AdditionalFactor, 0, len(c.Factors)+len(factors))
	out.Factors = append(out.Factors, c.Factors...)
	out.Factors = append(out.Factors, factors...)
	return out
}
