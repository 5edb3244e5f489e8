package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chrissnell/wildfire/internal/constants"
	"github.com/chrissnell/wildfire/pkg/behave"
	"github.com/chrissnell/wildfire/pkg/responseformat"
)

const model2Text = `
name = 2 GR
w0_d1 = 0.4483
w0_d2 = 0.2242
w0_d3 = 0.1121
w0_lh = 0.1121
w0_lw = 0
m_d1  = 6 1.5
m_d2  = 7
m_d3  = 8
m_lh  = 80
m_lw  = 120
sv_d1 = 9842.52
depth = 0.3048
mx    = 15
wsp   = 2 0.5
wdr   = 225
slp   = 20
asp   = 180
`

func writeScenario(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func wantROS(t *testing.T) float64 {
	t.Helper()
	v := behave.Vector{0.4483, 0.2242, 0.1121, 0.1121, 0, 6, 7, 8, 80, 120, 9842.52, 0.3048, 15, 2, 225, 20, 180}
	st, err := behave.NewSolver(behave.DefaultConfig(), nil).SolveVector(v, behave.NewFuelComplex())
	if err != nil {
		t.Fatal(err)
	}
	return st.Outputs.RateOfSpread
}

func TestRunText(t *testing.T) {
	path := writeScenario(t, "fm2.txt", model2Text)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", path, "-sensitivity", "-mc", "200"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"Fuel Model: 2 GR (S)", "Rate of spread", "part.Deriv", "Monte Carlo: 200 samples"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunJSON(t *testing.T) {
	path := writeScenario(t, "fm2.txt", model2Text)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", path, "-format", "json", "-sensitivity"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}

	var got struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		State  struct {
			Outputs behave.Outputs `json:"outputs"`
		} `json:"state"`
		Report *struct {
			ROS struct {
				StdDev float64 `json:"stdv"`
			} `json:"ros"`
		} `json:"report"`
		Sample json.RawMessage `json:"sample"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID == "" || got.Name != "2 GR" {
		t.Errorf("id = %q, name = %q", got.ID, got.Name)
	}
	if want := wantROS(t); got.State.Outputs.RateOfSpread != want {
		t.Errorf("ros = %g, want %g", got.State.Outputs.RateOfSpread, want)
	}
	if got.Report == nil || got.Report.ROS.StdDev <= 0 {
		t.Errorf("report = %+v", got.Report)
	}
	if got.Sample != nil {
		t.Errorf("sample present without -mc: %s", got.Sample)
	}
}

func TestRunMsgPack(t *testing.T) {
	path := writeScenario(t, "fm2.txt", model2Text)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", path, "-format", "msgpack"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	var got result
	if err := responseformat.Decode(&stdout, responseformat.MsgPack, &got); err != nil {
		t.Fatal(err)
	}
	if want := wantROS(t); got.State == nil || got.State.Outputs.RateOfSpread != want {
		t.Errorf("state = %+v, want ros %g", got.State, want)
	}
}

func TestRunErrors(t *testing.T) {
	good := writeScenario(t, "fm2.txt", model2Text)
	noFuel := writeScenario(t, "empty.txt", "sv_d1 = 6000\ndepth = 0.3\nmx = 25\n")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing file", []string{"-config", filepath.Join(t.TempDir(), "nope.yaml")}, 1},
		{"unknown backend", []string{"-config", good, "-backend", "sqlite"}, 1},
		{"unknown format", []string{"-config", good, "-format", "xml"}, 1},
		{"invalid scenario", []string{"-config", noFuel}, 1},
		{"bad flag", []string{"-nope"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != tt.code {
				t.Errorf("exit = %d, want %d: %s", code, tt.code, stderr.String())
			}
		})
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout.String(), constants.Version) {
		t.Errorf("version output = %q", stdout.String())
	}
}
