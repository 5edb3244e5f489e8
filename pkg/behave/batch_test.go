package behave

import (
	"context"
	"errors"
	"runtime"
	"testing"
)

func TestSolveAll(t *testing.T) {
	solver := NewSolver(DefaultConfig(), nil)
	base := NewFuelComplex()

	inputs := []Vector{scenarioGrass, model2, model10, wetLive, gale}
	scenarios := make([]Scenario, len(inputs))
	for i, v := range inputs {
		fuel, env := Unpack(v, base)
		scenarios[i] = Scenario{Fuel: fuel, Environment: env}
	}

	states, err := solver.SolveAll(context.Background(), scenarios, 2)
	if err != nil {
		t.Fatalf("SolveAll: %v", err)
	}
	if len(states) != len(inputs) {
		t.Fatalf("got %d states, want %d", len(states), len(inputs))
	}
	for i, v := range inputs {
		want, err := solver.SolveVector(v, base)
		if err != nil {
			t.Fatal(err)
		}
		if states[i].Outputs != want.Outputs {
			t.Errorf("scenario %d: outputs %+v, want %+v", i, states[i].Outputs, want.Outputs)
		}
	}
}

func TestSolveAllError(t *testing.T) {
	solver := NewSolver(DefaultConfig(), nil)
	fuel, env := Unpack(model2, NewFuelComplex())
	bad := fuel
	bad.Depth = 0

	_, err := solver.SolveAll(context.Background(), []Scenario{
		{Fuel: fuel, Environment: env},
		{Fuel: bad, Environment: env},
	}, 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSolveAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fuel, env := Unpack(model2, NewFuelComplex())
	_, err := NewSolver(DefaultConfig(), nil).SolveAll(ctx, []Scenario{{Fuel: fuel, Environment: env}}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestWorkers(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{4, 4},
		{1, 1},
		{0, runtime.GOMAXPROCS(0)},
		{-3, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		if got := Workers(tt.n); got != tt.want {
			t.Errorf("Workers(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
