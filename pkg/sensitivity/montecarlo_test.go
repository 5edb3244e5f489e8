package sensitivity

import (
	"context"
	"math"
	"testing"

	"github.com/chrissnell/wildfire/pkg/behave"
)

func TestSampleAgreesWithPropagate(t *testing.T) {
	var stdv behave.Vector
	stdv[behave.LoadDead1h] = 0.005
	stdv[behave.MoistDead1h] = 0.2
	stdv[behave.WindSpeed] = 0.05
	stdv[behave.WindDirection] = 2
	stdv[behave.Slope] = 0.5
	in := NewInput(stdv)

	solver := behave.NewSolver(behave.DefaultConfig(), nil)
	fuel, env := behave.Unpack(model2, behave.NewFuelComplex())
	st, err := solver.Solve(fuel, env)
	if err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(nil)
	delta, err := engine.Propagate(st, in)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	mc, err := engine.Sample(context.Background(), solver, fuel, env, in, SampleOptions{N: 4000, Seed: 7, Workers: 4})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	if mc.Rejected != 0 {
		t.Errorf("rejected %d samples, want 0", mc.Rejected)
	}

	tests := []struct {
		name  string
		delta Estimate
		mc    Moments
	}{
		{"ros", delta.ROS, mc.ROS},
		{"efw", delta.EFW, mc.EFW},
		{"sdr", delta.SDR, mc.SDR},
	}
	for _, tt := range tests {
		if d := math.Abs(tt.mc.StdDev-tt.delta.StdDev) / tt.delta.StdDev; d > 0.15 {
			t.Errorf("%s: sample stdv %g, delta method %g", tt.name, tt.mc.StdDev, tt.delta.StdDev)
		}
		offset := tt.mc.Mean - tt.delta.Value
		if tt.name == "sdr" {
			offset = angularOffset(tt.mc.Mean, tt.delta.Value)
		}
		if math.Abs(offset) > 0.05*tt.delta.Value {
			t.Errorf("%s: sample mean %g, solved %g", tt.name, tt.mc.Mean, tt.delta.Value)
		}
	}
}

func TestSampleReproducible(t *testing.T) {
	solver := behave.NewSolver(behave.DefaultConfig(), nil)
	fuel, env := behave.Unpack(model10, behave.NewFuelComplex())
	in := NewInput(behave.Vector{0.05, 0.05, 0.05, 0, 0.05, 1, 1, 1, 5, 5, 200, 0.02, 2, 0.5, 10, 2, 5})
	opts := SampleOptions{N: 200, Seed: 42, Workers: 3}

	engine := NewEngine(nil)
	a, err := engine.Sample(context.Background(), solver, fuel, env, in, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := engine.Sample(context.Background(), solver, fuel, env, in, opts)
	if err != nil {
		t.Fatal(err)
	}
	if *a != *b {
		t.Errorf("same seed gave different summaries: %+v vs %+v", a, b)
	}
}

func TestSampleWithoutUncertainty(t *testing.T) {
	solver := behave.NewSolver(behave.DefaultConfig(), nil)
	fuel, env := behave.Unpack(model2, behave.NewFuelComplex())
	st, err := solver.Solve(fuel, env)
	if err != nil {
		t.Fatal(err)
	}

	mc, err := NewEngine(nil).Sample(context.Background(), solver, fuel, env, NewInput(behave.Vector{}), SampleOptions{N: 10})
	if err != nil {
		t.Fatal(err)
	}
	if mc.ROS.StdDev > 1e-12 || !closeTo(mc.ROS.Mean, st.Outputs.RateOfSpread, 1e-12) {
		t.Errorf("ros moments = %+v, want {%g 0}", mc.ROS, st.Outputs.RateOfSpread)
	}
}

func TestAngularOffset(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{10, 350, 20},
		{350, 10, -20},
		{180, 0, 180},
		{0, 180, 180},
		{90, 90, 0},
	}
	for _, tt := range tests {
		if got := angularOffset(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("angularOffset(%g, %g) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSampleSingularCorrelation(t *testing.T) {
	var stdv behave.Vector
	stdv[behave.MoistDead1h] = 0.5
	stdv[behave.MoistDead10h] = 0.5
	corr := Identity()
	corr.SetSym(int(behave.MoistDead1h), int(behave.MoistDead10h), 1)
	in := Input{StdDev: stdv, Correlation: corr}
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	solver := behave.NewSolver(behave.DefaultConfig(), nil)
	fuel, env := behave.Unpack(model2, behave.NewFuelComplex())
	st, err := solver.Solve(fuel, env)
	if err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(nil)
	delta, err := engine.Propagate(st, in)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	mc, err := engine.Sample(context.Background(), solver, fuel, env, in, SampleOptions{N: 2000, Seed: 3, Workers: 2})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if d := math.Abs(mc.ROS.StdDev-delta.ROS.StdDev) / delta.ROS.StdDev; d > 0.15 {
		t.Errorf("sample ros stdv %g, delta method %g", mc.ROS.StdDev, delta.ROS.StdDev)
	}
}
