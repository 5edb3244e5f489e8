// Package report renders solved fuel beds and sensitivity reports as fixed
// width text tables for diagnostics.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/chrissnell/wildfire/pkg/behave"
	"github.com/chrissnell/wildfire/pkg/sensitivity"
	"github.com/dustin/go-humanize"
)

const (
	fmt1 = "#,###.#"
	fmt2 = "#,###.##"
	fmt3 = "#,###.###"
	fmt4 = "#,###.####"
	fmt5 = "#,###.#####"
	fmt6 = "#,###.######"
	fmt8 = "#,###.########"

	msToKmh = 3.6
)

// num formats v with the given humanize pattern, left padded to width.
func num(pattern string, v float64, width int) string {
	return pad(humanize.FormatFloat(pattern, v), width)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

type lines struct {
	sb strings.Builder
}

func (l *lines) add(format string, args ...any) {
	fmt.Fprintf(&l.sb, format, args...)
	l.sb.WriteByte('\n')
}

func (l *lines) blank() { l.sb.WriteString(" \n") }

func (l *lines) flush(w io.Writer) error {
	_, err := io.WriteString(w, l.sb.String())
	return err
}

// WriteState writes the report of a solved state: constants, size classes,
// wind and terrain, then every derived quantity.
func WriteState(w io.Writer, name string, st *behave.State) error {
	var l lines
	f := st.Fuel

	kind := "(S)"
	if f.Dynamic {
		kind = "(D)"
	}
	l.add("Fuel Model: %s %s", name, kind)
	l.blank()

	if st.MissingData {
		l.add("  No data: an input carried its no-data value")
		l.blank()
		return l.flush(w)
	}

	l.add("  Effective mineral content    s_e          [%%] =%s", num(fmt1, f.EffectiveMineral, 10))
	l.add("  Total mineral content        s_t          [%%] =%s", num(fmt1, f.TotalMineral, 10))
	l.add("  Heat content                 heat     [kJ/kg] =%s", num(fmt2, f.HeatContent, 10))
	l.add("  Particle density             rho_p    [kg/m3] =%s", num(fmt2, f.ParticleDensity, 10))
	l.add("  Fuel bed depth               d            [m] =%s", num(fmt2, f.Depth, 10))
	l.add("  Moisture of extinction       mx           [%%] =%s", num(fmt2, f.ExtinctionMoisture, 10))
	l.add("  Fuel load transferred        curing       [%%] =%s", num(fmt2, st.Curing*100, 10))
	l.blank()

	l.add("  Size |  Fuel Load | Surface-to-Volume- | Moisture")
	l.add("       |    [kg/m2] | Ratio        [1/m] |      [%%]")
	l.add(" ---------------------------------------------------")
	for c := behave.Class(0); c < behave.NumClasses; c++ {
		l.add("    %s |%s  |%s  |%s", c, num(fmt3, st.Loading[c], 10), num(fmt3, st.SAV[c], 18), num(fmt1, st.Moisture[c], 8))
	}
	l.blank()

	env := st.Environment
	l.add("  Wind                         |  Terrain")
	l.add(" ---------------------------------------------------------")
	l.add("   wind speed     [m/s]%s |   slope      [deg]%s", num(fmt2, env.WindSpeed, 7), num(fmt2, env.Slope, 7))
	l.add("   wind direction [deg]%s |   aspect     [deg]%s", num(fmt2, env.WindDirection, 7), num(fmt2, env.Aspect, 7))
	l.blank()

	l.add("  => Wind factor                phi_w       [-] =%s", num(fmt4, st.WindFactor, 12))
	l.add("  => Slope factor               phi_s       [-] =%s", num(fmt4, st.SlopeFactor, 12))
	l.add("  => Wind and slope factor      phi_t       [-] =%s", num(fmt4, st.CombinedFactor, 12))
	l.add("  => Effective wind speed       efw      [km/h] =%s", num(fmt2, st.EffectiveWindSpeed*msToKmh, 10))
	l.add("  => Direction of max. spread   sdr       [deg] =%s", num(fmt1, st.SpreadDirection, 9))
	if st.AdditionalFactor.Magnitude != 0 {
		l.add("  => Additional factor          phi_a       [-] =%s", num(fmt4, st.AdditionalFactor.Magnitude, 12))
		l.add("  => Additional factor bearing  phi_a_b   [deg] =%s", num(fmt1, st.AdditionalFactor.Bearing, 9))
	}
	l.blank()

	l.add("  => Characteristic sv-ratio    sigma     [1/m] =%s", num(fmt2, st.Sigma, 10))
	l.add("  => Live moisture of extinction Mx_live    [%%] =%s", num(fmt2, st.LiveExtinctionMoisture, 10))
	l.add("  => Ratio dead/live fine fuels W           [-] =%s", num(fmt4, st.FineFuelRatio, 10))
	l.add("  => Mean bulk density          rho_b   [kg/m3] =%s", num(fmt4, st.BulkDensity, 12))
	l.add("  => Packing ratio              beta        [-] =%s", num(fmt5, st.PackingRatio, 13))
	l.add("  => Relative packing ratio     beta_ratio  [-] =%s", num(fmt5, st.RelativePackingRatio, 13))
	l.blank()

	out := st.Outputs
	l.add("  => Rate of spread             ros     [m/min] =%s", num(fmt4, out.RateOfSpread*60, 12))
	l.add("  => Heat per area              hpa     [kJ/m2] =%s", num(fmt2, out.HeatPerUnitArea, 10))
	l.add("  => Fire line intensity        fli      [kW/m] =%s", num(fmt2, out.FirelineIntensity, 10))
	l.add("  => Flame length               fln         [m] =%s", num(fmt2, out.FlameLength, 10))
	l.add("  => Reaction intensity         I_r     [kW/m2] =%s", num(fmt2, st.ReactionIntensity, 10))
	l.blank()

	l.add("  => Heat sink                  hsk     [kJ/m3] =%s", num(fmt2, st.HeatSink, 10))
	l.add("  => Propagating flux ratio     xi          [-] =%s", num(fmt4, st.PropagatingFluxRatio, 12))
	l.add("  => Flame residence time       tau         [s] =%s", num(fmt2, out.ResidenceTime, 10))
	l.add("  => Flame zone depth           fzd         [m] =%s", num(fmt3, out.FlameZoneDepth, 11))
	l.blank()

	var notes []string
	if st.ExtinctionClamped {
		notes = append(notes, "live moisture of extinction raised to mx")
	}
	if st.WindLimited {
		notes = append(notes, "effective wind speed limited to 0.024 I_r")
	}
	for _, n := range notes {
		l.add("  ! %s", n)
	}
	if len(notes) > 0 {
		l.blank()
	}

	return l.flush(w)
}

// WriteSensitivity writes one variance table per output. Each row lists an
// input's mean, standard deviation, partial derivative, the variance it
// contributes alone and that share of the total.
func WriteSensitivity(w io.Writer, st *behave.State, r *sensitivity.Report) error {
	var l lines
	outputs := []struct {
		key string
		est sensitivity.Estimate
	}{
		{"ros", r.ROS},
		{"efw", r.EFW},
		{"sdr", r.SDR},
	}

	for _, o := range outputs {
		l.blank()
		l.add(" Var   |       Mean |       Stdv | part.Deriv |   VarPart       [%%]")
		l.add("--------------------------------------------------------------------")
		for _, in := range behave.Inputs() {
			sd := r.Input.StdDev[in]
			pd := o.est.Partials[in]
			l.add(" %-5s |%s |%s |%s |%s |%s",
				in,
				num(fmt3, st.Input[in], 11),
				num(fmt4, sd, 11),
				num(fmt6, pd, 11),
				num(fmt8, sd*sd*pd*pd, 12),
				num(fmt1, o.est.Contribution[in], 6))
		}
		l.add("--------------------------------------------------------------------")
		l.add(" %-5s |%s |%s |            |%s | 100.0",
			o.key,
			num(fmt3, o.est.Value, 11),
			num(fmt4, o.est.StdDev, 11),
			num(fmt8, o.est.Variance, 12))
	}
	l.blank()
	return l.flush(w)
}

// WriteSample writes the summary of a Monte Carlo run.
func WriteSample(w io.Writer, s *sensitivity.SampleSummary) error {
	var l lines
	l.add(" Monte Carlo: %d samples, %d rejected", s.N, s.Rejected)
	l.add(" Out   |       Mean |       Stdv")
	l.add("----------------------------------")
	for _, row := range []struct {
		key string
		m   sensitivity.Moments
	}{
		{"ros", s.ROS},
		{"efw", s.EFW},
		{"sdr", s.SDR},
	} {
		l.add(" %-5s |%s |%s", row.key, num(fmt4, row.m.Mean, 11), num(fmt4, row.m.StdDev, 11))
	}
	l.blank()
	return l.flush(w)
}
