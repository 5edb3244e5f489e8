package sensitivity

import (
	"fmt"
	"math"

	"github.com/chrissnell/wildfire/pkg/behave"
	"gonum.org/v1/gonum/mat"
)

// Input is the uncertainty attached to the solver inputs.
type Input struct {
	// StdDev holds one standard deviation per input, in the input's unit
	// (degrees for the angles).
	StdDev behave.Vector

	// Correlation is the 17x17 input correlation matrix, indexed by
	// behave.Input. Nil means uncorrelated inputs.
	Correlation *mat.SymDense
}

// NewInput returns an Input with uncorrelated inputs.
func NewInput(stdv behave.Vector) Input {
	return Input{StdDev: stdv}
}

// Identity returns the identity correlation matrix.
func Identity() *mat.SymDense {
	corr := mat.NewSymDense(behave.NumInputs, nil)
	for i := 0; i < behave.NumInputs; i++ {
		corr.SetSym(i, i, 1)
	}
	return corr
}

// NewCorrelation builds a correlation matrix from row-major values. Only the
// upper triangle is read; Validate checks the result.
func NewCorrelation(rows [][]float64) (*mat.SymDense, error) {
	if len(rows) != behave.NumInputs {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidCorrelation, behave.NumInputs, len(rows))
	}
	for i, row := range rows {
		if len(row) != behave.NumInputs {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrInvalidCorrelation, i, len(row))
		}
	}
	corr := mat.NewSymDense(behave.NumInputs, nil)
	for i, row := range rows {
		for j := i; j < behave.NumInputs; j++ {
			if row[j] != rows[j][i] {
				return nil, fmt.Errorf("%w: not symmetric at (%d,%d)", ErrInvalidCorrelation, i, j)
			}
			corr.SetSym(i, j, row[j])
		}
	}
	return corr, nil
}

// CorrelationMatrix returns the effective correlation matrix.
func (in Input) CorrelationMatrix() *mat.SymDense {
	if in.Correlation == nil {
		return Identity()
	}
	return in.Correlation
}

// Validate checks the standard deviations and the correlation matrix.
func (in Input) Validate() error {
	for i, s := range in.StdDev {
		if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: %s=%g", ErrInvalidStdDev, behave.Input(i), s)
		}
	}

	if in.Correlation == nil {
		return nil
	}
	corr := in.Correlation
	if n := corr.SymmetricDim(); n != behave.NumInputs {
		return fmt.Errorf("%w: dimension %d, want %d", ErrInvalidCorrelation, n, behave.NumInputs)
	}
	for i := 0; i < behave.NumInputs; i++ {
		if d := corr.At(i, i); math.IsNaN(d) || math.Abs(d-1) > 1e-12 {
			return fmt.Errorf("%w: diagonal %s is %g", ErrInvalidCorrelation, behave.Input(i), corr.At(i, i))
		}
		for j := i + 1; j < behave.NumInputs; j++ {
			if v := corr.At(i, j); math.Abs(v) > 1 || math.IsNaN(v) {
				return fmt.Errorf("%w: (%s,%s)=%g", ErrInvalidCorrelation, behave.Input(i), behave.Input(j), v)
			}
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(corr, false); !ok {
		return fmt.Errorf("%w: eigen decomposition failed", ErrInvalidCorrelation)
	}
	for _, v := range eig.Values(nil) {
		if v < -1e-10 {
			return fmt.Errorf("%w: not positive semidefinite (eigenvalue %g)", ErrInvalidCorrelation, v)
		}
	}
	return nil
}
