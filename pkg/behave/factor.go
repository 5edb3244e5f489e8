package behave

// Factor is an extra spread factor added to the wind and slope vector.
type Factor struct {
	// Magnitude is dimensionless, on the same scale as the wind and slope factors.
	Magnitude float64 `json:"magnitude"`

	// Bearing is the compass direction, in degrees, toward which the factor pushes the fire.
	Bearing float64 `json:"bearing"`
}

// AdditionalFactor contributes a Factor during the wind and slope combination.
// The State passed in is fully populated up to and including the heat sink and
// the wind and slope factors; implementations must not modify it.
type AdditionalFactor interface {
	Factor(st *State) Factor
}

// FactorFunc adapts a function to the AdditionalFactor interface.
type FactorFunc func(st *State) Factor

// Factor calls f(st).
func (f FactorFunc) Factor(st *State) Factor {
	return f(st)
}
