package sensitivity

import (
	"math"

	"github.com/chrissnell/wildfire/pkg/behave"
	"gonum.org/v1/gonum/mat"
)

// Variance returns the first-order variance sum_ij corr_ij s_i s_j d_i d_j.
func Variance(partials, stdv behave.Vector, corr mat.Symmetric) float64 {
	u := mat.NewVecDense(behave.NumInputs, nil)
	for i := range partials {
		u.SetVec(i, stdv[i]*partials[i])
	}
	v := mat.Inner(u, corr, u)
	// rounding can leave a tiny negative value for a singular matrix
	if v < 0 {
		return 0
	}
	return v
}

func estimate(value float64, partials, stdv behave.Vector, corr mat.Symmetric) Estimate {
	est := Estimate{
		Value:    value,
		Partials: partials,
		Variance: Variance(partials, stdv, corr),
	}
	est.StdDev = math.Sqrt(est.Variance)
	if est.Variance > 0 {
		for i := range partials {
			u := stdv[i] * partials[i]
			est.Contribution[i] = u * u / est.Variance * 100
		}
	}
	return est
}
