package sensitivity

import (
	"github.com/chrissnell/wildfire/pkg/behave"
	"gonum.org/v1/gonum/floats"
)

// grad holds the partial derivatives of one intermediate with respect to
// every solver input.
type grad = behave.Vector

// term is one coefficient-gradient product of a linear combination.
type term struct {
	c float64
	g grad
}

func tm(c float64, g grad) term { return term{c: c, g: g} }

// seed is the gradient of input i with respect to itself.
func seed(i behave.Input) grad {
	var g grad
	g[i] = 1
	return g
}

// lin returns sum(c_k * g_k).
func lin(terms ...term) grad {
	var out grad
	for _, t := range terms {
		if t.c == 0 {
			continue
		}
		floats.AddScaled(out[:], t.c, t.g[:])
	}
	return out
}

func scaled(c float64, g grad) grad {
	floats.Scale(c, g[:])
	return g
}

func add(dst *grad, g grad) {
	floats.Add(dst[:], g[:])
}
