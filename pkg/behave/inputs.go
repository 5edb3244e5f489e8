package behave

import (
	"fmt"
	"math"
)

// Input identifies one of the scalar inputs of a solve. The ordering is fixed:
// correlation matrices and standard-deviation vectors are indexed by it.
type Input int

const (
	LoadDead1h Input = iota
	LoadDead10h
	LoadDead100h
	LoadLiveHerb
	LoadLiveWoody
	MoistDead1h
	MoistDead10h
	MoistDead100h
	MoistLiveHerb
	MoistLiveWoody
	SAVDead1h
	Depth
	ExtinctionMoisture
	WindSpeed
	WindDirection
	Slope
	Aspect

	// NumInputs is the number of solver inputs
	NumInputs = 17
)

var inputKeys = [NumInputs]string{
	"w0_d1", "w0_d2", "w0_d3", "w0_lh", "w0_lw",
	"m_d1", "m_d2", "m_d3", "m_lh", "m_lw",
	"sv_d1", "depth", "mx", "wsp", "wdr", "slp", "asp",
}

var inputUnits = [NumInputs]string{
	"kg/m2", "kg/m2", "kg/m2", "kg/m2", "kg/m2",
	"%", "%", "%", "%", "%",
	"1/m", "m", "%", "m/s", "deg", "deg", "deg",
}

// Inputs returns every input in canonical order.
func Inputs() []Input {
	all := make([]Input, NumInputs)
	for i := range all {
		all[i] = Input(i)
	}
	return all
}

// String returns the short key of the input, e.g. "w0_d1"
func (i Input) String() string {
	if i < 0 || int(i) >= NumInputs {
		return fmt.Sprintf("Input(%d)", int(i))
	}
	return inputKeys[i]
}

// Unit returns the unit the input is expressed in.
func (i Input) Unit() string {
	if i < 0 || int(i) >= NumInputs {
		return ""
	}
	return inputUnits[i]
}

// Angular reports whether the input is an angle in degrees.
func (i Input) Angular() bool {
	return i == WindDirection || i == Slope || i == Aspect
}

// ParseInput maps a short key back to its Input.
func ParseInput(key string) (Input, error) {
	for i, k := range inputKeys {
		if k == key {
			return Input(i), nil
		}
	}
	return -1, fmt.Errorf("%w %q", ErrUnknownInput, key)
}

// Vector holds one value per Input.
type Vector [NumInputs]float64

// Fill returns a Vector with every element set to v.
func Fill(v float64) Vector {
	var out Vector
	for i := range out {
		out[i] = v
	}
	return out
}

// Finite reports the first non-finite element, if any.
func (v Vector) Finite() (Input, bool) {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Input(i), false
		}
	}
	return -1, true
}

// Class is a fuel size class.
type Class int

const (
	Dead1h Class = iota
	Dead10h
	Dead100h
	LiveHerb
	LiveWoody

	// NumClasses is the number of fuel size classes
	NumClasses = 5
)

var classNames = [NumClasses]string{"d1", "d2", "d3", "lh", "lw"}

func (c Class) String() string {
	if c < 0 || int(c) >= NumClasses {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

// Dead reports whether the class belongs to the dead fuel category.
func (c Class) Dead() bool {
	return c <= Dead100h
}

// LoadingInput and MoistureInput map a size class to its inputs.
func LoadingInput(c Class) Input  { return LoadDead1h + Input(c) }
func MoistureInput(c Class) Input { return MoistDead1h + Input(c) }

// DeadClasses and LiveClasses list the size classes of each category.
func DeadClasses() []Class { return []Class{Dead1h, Dead10h, Dead100h} }
func LiveClasses() []Class { return []Class{LiveHerb, LiveWoody} }
