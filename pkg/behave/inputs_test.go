package behave

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseInput(t *testing.T) {
	for _, in := range Inputs() {
		got, err := ParseInput(in.String())
		if err != nil {
			t.Fatalf("ParseInput(%q): %v", in.String(), err)
		}
		if got != in {
			t.Errorf("ParseInput(%q) = %d, want %d", in.String(), got, in)
		}
	}

	if _, err := ParseInput("w0_d4"); !errors.Is(err, ErrUnknownInput) {
		t.Errorf("err = %v, want ErrUnknownInput", err)
	}
}

func TestInputOrder(t *testing.T) {
	want := []string{
		"w0_d1", "w0_d2", "w0_d3", "w0_lh", "w0_lw",
		"m_d1", "m_d2", "m_d3", "m_lh", "m_lw",
		"sv_d1", "depth", "mx", "wsp", "wdr", "slp", "asp",
	}
	var got []string
	for _, in := range Inputs() {
		got = append(got, in.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input order (-want +got):\n%s", diff)
	}

	for _, in := range []Input{WindDirection, Slope, Aspect} {
		if !in.Angular() {
			t.Errorf("%s is not angular", in)
		}
	}
	if WindSpeed.Angular() {
		t.Error("wsp reported as angular")
	}
}

func TestPackUnpack(t *testing.T) {
	base := NewFuelComplex()
	base.Dynamic = true
	base.HeatContent = 20000

	fuel, env := Unpack(model10, base)
	if fuel.HeatContent != 20000 || !fuel.Dynamic {
		t.Errorf("constants not taken from base: %+v", fuel)
	}
	if fuel.SAV[Dead10h] != SAVDead10h {
		t.Errorf("dead 10-hr sav = %g, want %g", fuel.SAV[Dead10h], SAVDead10h)
	}
	if diff := cmp.Diff(model10, Pack(fuel, env)); diff != "" {
		t.Errorf("Pack(Unpack(v)) (-want +got):\n%s", diff)
	}
}

func TestVectorFinite(t *testing.T) {
	v := model2
	if _, ok := v.Finite(); !ok {
		t.Fatal("finite vector reported non-finite")
	}
	v[Depth] = math.Inf(-1)
	if in, ok := v.Finite(); ok || in != Depth {
		t.Errorf("Finite() = %s, %t; want depth, false", in, ok)
	}
}

func TestConfigMissing(t *testing.T) {
	cfg := DefaultConfig()
	if _, missing := cfg.Missing(model2); missing {
		t.Error("complete vector reported missing")
	}

	v := model2
	v[Slope] = DefaultNoData
	in, missing := cfg.Missing(v)
	if !missing || in != Slope {
		t.Errorf("Missing() = %s, %t; want slp, true", in, missing)
	}
}
