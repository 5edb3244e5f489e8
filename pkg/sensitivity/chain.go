package sensitivity

import (
	"math"

	"github.com/chrissnell/wildfire/pkg/behave"
)

// chain carries the gradient of every intermediate of a solved state, in the
// same order the solver computes the values. Zero-load dead 10-hr and 100-hr
// classes are differentiated with their nominal surface-to-volume ratio,
// which yields the derivative from the positive side of the load.
type chain struct {
	st *behave.State

	w, m, sv [behave.NumClasses]grad
	sw       [behave.NumClasses]grad

	swDead, swLive, swTotal, s2wTotal grad
	sw2Dead, swmDead, swmLive, w0     grad

	sigma, rho, beta, betaOpt, betaRatio grad
	wnDead, wnLive                       grad

	fineDead, fineLive, fineDeadWater grad
	fineRatio, fineMoisture, mxLive   grad
	rmDead, rmLive                    grad
	etaDead, etaLive, eta             grad

	a, gammaMax, gamma, ir, xi grad
	heatSinkSum, heatSink, ros0 grad

	phiS, phiW, b, c, e grad
	vx, vy, vl, sdr     grad
	efw, ros            grad
}

func newChain(st *behave.State) *chain {
	ch := &chain{st: st}
	ch.cure()
	ch.characterize()
	ch.damp()
	ch.react()
	ch.sinkHeat()
	ch.spread()
	return ch
}

// cure differentiates the dynamic transfer of cured herbaceous fuel into
// the dead 1-hr class.
func (ch *chain) cure() {
	st := ch.st
	for k := behave.Class(0); k < behave.NumClasses; k++ {
		ch.w[k] = seed(behave.LoadingInput(k))
		ch.m[k] = seed(behave.MoistureInput(k))
	}
	ch.sv[behave.Dead1h] = seed(behave.SAVDead1h)

	if !st.Fuel.Dynamic {
		return
	}

	var dCuring grad
	if mlh := st.Fuel.Moisture[behave.LiveHerb]; mlh > behave.CuredMoisture && mlh < behave.GreenMoisture {
		dCuring = scaled(-1/(behave.GreenMoisture-behave.CuredMoisture), seed(behave.MoistLiveHerb))
	}

	wlh := st.Fuel.Loading[behave.LiveHerb]
	herb := st.DeadHerbLoading
	dHerb := lin(tm(st.Curing, ch.w[behave.LiveHerb]), tm(wlh, dCuring))
	ch.w[behave.LiveHerb] = lin(tm(1, ch.w[behave.LiveHerb]), tm(-1, dHerb))

	sv1, svh := st.Fuel.SAV[behave.Dead1h], st.Fuel.SAV[behave.LiveHerb]
	w1 := st.Fuel.Loading[behave.Dead1h]
	num := sv1*sv1*w1 + svh*svh*herb
	den := sv1*w1 + svh*herb
	if den > 0 {
		dNum := lin(tm(2*sv1*w1, ch.sv[behave.Dead1h]), tm(sv1*sv1, ch.w[behave.Dead1h]), tm(svh*svh, dHerb))
		dDen := lin(tm(w1, ch.sv[behave.Dead1h]), tm(sv1, ch.w[behave.Dead1h]), tm(svh, dHerb))
		ch.sv[behave.Dead1h] = lin(tm(1/den, dNum), tm(-num/(den*den), dDen))
	}
	add(&ch.w[behave.Dead1h], dHerb)
}

func (ch *chain) characterize() {
	st := ch.st
	for k := behave.Class(0); k < behave.NumClasses; k++ {
		sv, w, m, sw := st.NominalSAV[k], st.Loading[k], st.Moisture[k], st.SW[k]

		ch.sw[k] = lin(tm(sv, ch.w[k]), tm(w, ch.sv[k]))
		s2w := lin(tm(sv, ch.sw[k]), tm(sw, ch.sv[k]))
		swm := lin(tm(m, ch.sw[k]), tm(sw, ch.m[k]))

		add(&ch.w0, ch.w[k])
		add(&ch.s2wTotal, s2w)
		if k.Dead() {
			add(&ch.swDead, ch.sw[k])
			add(&ch.sw2Dead, lin(tm(w, ch.sw[k]), tm(sw, ch.w[k])))
			add(&ch.swmDead, swm)
		} else {
			add(&ch.swLive, ch.sw[k])
			add(&ch.swmLive, swm)
		}
	}
	ch.swTotal = lin(tm(1, ch.swDead), tm(1, ch.swLive))

	swT := st.SWTotal
	ch.sigma = lin(tm(1/swT, ch.s2wTotal), tm(-st.Sigma/swT, ch.swTotal))

	depth := st.Fuel.Depth
	ch.rho = lin(tm(1/depth, ch.w0), tm(-st.BulkDensity/depth, seed(behave.Depth)))
	ch.beta = scaled(1/st.Fuel.ParticleDensity, ch.rho)
	ch.betaOpt = scaled(-0.8189*st.OptimalPackingRatio/st.Sigma, ch.sigma)
	bopt := st.OptimalPackingRatio
	ch.betaRatio = lin(tm(1/bopt, ch.beta), tm(-st.RelativePackingRatio/bopt, ch.betaOpt))

	mineral := 1 - st.Fuel.TotalMineral/100
	if swD := st.SWDead; swD > 0 {
		ch.wnDead = lin(tm(mineral/swD, ch.sw2Dead), tm(-mineral*st.SW2Dead/(swD*swD), ch.swDead))
	}
	// the live net loading is linear in the loads even when it is zero
	ch.wnLive = lin(tm(mineral, ch.w[behave.LiveHerb]), tm(mineral, ch.w[behave.LiveWoody]))
}

func (ch *chain) damp() {
	st := ch.st
	for k := behave.Class(0); k < behave.NumClasses; k++ {
		sv := st.NominalSAV[k]
		if sv <= 0 {
			continue
		}
		weight := 1640.42
		if k.Dead() {
			weight = 452.76
		}
		ex := math.Exp(-weight / sv)
		hn := scaled(0.20482*ex, lin(tm(1, ch.w[k]), tm(st.Loading[k]*weight/(sv*sv), ch.sv[k])))
		if k.Dead() {
			add(&ch.fineDead, hn)
			add(&ch.fineDeadWater, lin(tm(st.Moisture[k], hn), tm(st.FineLoading[k], ch.m[k])))
		} else {
			add(&ch.fineLive, hn)
		}
	}

	mx := st.Fuel.ExtinctionMoisture
	if st.SWLive > 0 {
		fl := st.FineLive
		ratio := st.FineFuelRatio
		ch.fineRatio = lin(tm(1/fl, ch.fineDead), tm(-ratio/fl, ch.fineLive))

		mf := st.FineDeadMoisture
		if fd := st.FineDead; fd > 0 {
			ch.fineMoisture = lin(tm(1/fd, ch.fineDeadWater), tm(-mf/fd, ch.fineDead))
		}
		ch.mxLive = scaled(290, lin(
			tm(1-mf/mx, ch.fineRatio),
			tm(-ratio/mx, ch.fineMoisture),
			tm(ratio*mf/(mx*mx), seed(behave.ExtinctionMoisture)),
		))

		swL, mxl, rm := st.SWLive, st.LiveExtinctionMoisture, st.MoistureRatioLive
		ch.rmLive = lin(tm(1/(swL*mxl), ch.swmLive), tm(-rm/swL, ch.swLive), tm(-rm/mxl, ch.mxLive))
	}
	if swD := st.SWDead; swD > 0 {
		rm := st.MoistureRatioDead
		ch.rmDead = lin(tm(1/(swD*mx), ch.swmDead), tm(-rm/swD, ch.swDead), tm(-rm/mx, seed(behave.ExtinctionMoisture)))
	}

	ch.etaDead = scaled(dampingSlope(st.MoistureRatioDead), ch.rmDead)
	ch.etaLive = scaled(dampingSlope(st.MoistureRatioLive), ch.rmLive)
	ch.eta = lin(
		tm(st.MoistureDampingDead, ch.wnDead), tm(st.NetLoadingDead, ch.etaDead),
		tm(st.MoistureDampingLive, ch.wnLive), tm(st.NetLoadingLive, ch.etaLive),
	)
}

// dampingSlope is the derivative of the moisture damping polynomial, zero
// where the polynomial is clamped.
func dampingSlope(r float64) float64 {
	if 1-2.59*r+5.11*r*r-3.52*r*r*r < 0 {
		return 0
	}
	return -2.59 + 10.22*r - 10.56*r*r
}

func (ch *chain) react() {
	st := ch.st
	sigma := st.Sigma
	ch.a = scaled(-0.7913*st.ReactionExponent/sigma, ch.sigma)

	d := 29700 + 0.5997*math.Pow(sigma, 1.5)
	ch.gammaMax = scaled(0.16828*29700*1.5*math.Sqrt(sigma)/(d*d), ch.sigma)

	br, a := st.RelativePackingRatio, st.ReactionExponent
	ch.gamma = scaled(st.ReactionVelocity, lin(
		tm(1/st.MaxReactionVelocity, ch.gammaMax),
		tm(math.Log(br)+1-br, ch.a),
		tm(a*(1/br-1), ch.betaRatio),
	))

	ch.ir = scaled(st.Fuel.HeatContent*st.MineralDamping, lin(
		tm(st.MoistureDamping, ch.gamma),
		tm(st.ReactionVelocity, ch.eta),
	))

	rs := math.Sqrt(sigma)
	ch.xi = scaled(st.PropagatingFluxRatio, lin(
		tm(0.37597/(2*rs)*(st.PackingRatio+0.1)-0.0791/(192+0.0791*sigma), ch.sigma),
		tm(0.792+0.37597*rs, ch.beta),
	))
}

func (ch *chain) sinkHeat() {
	st := ch.st
	for k := behave.Class(0); k < behave.NumClasses; k++ {
		var eps float64
		var dEps grad
		if sv := st.NominalSAV[k]; sv > 0 {
			eps = math.Exp(-452.76 / sv)
			dEps = scaled(eps*452.76/(sv*sv), ch.sv[k])
		}
		q, sw := st.PreignitionHeat[k], st.SW[k]
		add(&ch.heatSinkSum, lin(tm(eps*q, ch.sw[k]), tm(sw*q, dEps), tm(sw*eps*25.957, ch.m[k])))
	}

	swT := st.SWTotal
	ch.heatSink = lin(
		tm(st.HeatSinkSum/swT, ch.rho),
		tm(st.BulkDensity/swT, ch.heatSinkSum),
		tm(-st.HeatSink/swT, ch.swTotal),
	)

	hsk := st.HeatSink
	ch.ros0 = lin(
		tm(st.PropagatingFluxRatio/hsk, ch.ir),
		tm(st.ReactionIntensity/hsk, ch.xi),
		tm(-st.NoWindNoSlope.RateOfSpread/hsk, ch.heatSink),
	)
}

func (ch *chain) spread() {
	st := ch.st
	env := st.Environment
	const d2r = math.Pi / 180

	beta := st.PackingRatio
	t := math.Tan(env.Slope * d2r)
	ch.phiS = lin(
		tm(-0.3*st.SlopeFactor/beta, ch.beta),
		tm(5.275*math.Pow(beta, -0.3)*2*t*(1+t*t)*d2r, seed(behave.Slope)),
	)

	sigma := st.Sigma
	b, c, e := st.WindB, st.WindC, st.WindE
	u := sigma * 0.3048
	ch.b = scaled(0.54*b/sigma, ch.sigma)
	ch.c = scaled(c*(-0.133*0.55*math.Pow(u, 0.55)/sigma), ch.sigma)
	ch.e = scaled(e*(-0.000359*0.3048), ch.sigma)

	br := st.RelativePackingRatio
	phiW := st.WindFactor
	if wsp := env.WindSpeed; wsp > 0 {
		ch.phiW = scaled(phiW, lin(
			tm(1/c, ch.c),
			tm(math.Log(3.281*60*wsp), ch.b),
			tm(b/wsp, seed(behave.WindSpeed)),
			tm(-math.Log(br), ch.e),
			tm(-e/br, ch.betaRatio),
		))
	}

	dSplit := lin(tm(d2r, seed(behave.WindDirection)), tm(-d2r, seed(behave.Aspect)))
	cos, sin := math.Cos(st.Split), math.Sin(st.Split)
	ch.vx = lin(tm(1, ch.phiS), tm(cos, ch.phiW), tm(-phiW*sin, dSplit))
	ch.vy = lin(tm(sin, ch.phiW), tm(phiW*cos, dSplit))

	vx, vy, vl := st.VectorX, st.VectorY, st.CombinedMagnitude
	if vl > 0 {
		ch.vl = lin(tm(vx/vl, ch.vx), tm(vy/vl, ch.vy))
		// radians
		ch.sdr = lin(tm(d2r, seed(behave.Aspect)), tm(vx/(vl*vl), ch.vy), tm(-vy/(vl*vl), ch.vx))

		lnr := math.Log(vl) - math.Log(c) + e*math.Log(br)
		ch.efw = scaled(st.EffectiveWindSpeed, lin(
			tm(1/(b*vl), ch.vl),
			tm(-1/(b*c), ch.c),
			tm(math.Log(br)/b, ch.e),
			tm(e/(b*br), ch.betaRatio),
			tm(-lnr/(b*b), ch.b),
		))
	}

	ch.ros = ch.ros0
	if phiT := st.CombinedFactor; phiT > 0 {
		ch.ros = lin(tm(1+phiT, ch.ros0), tm(st.NoWindNoSlope.RateOfSpread, ch.vl))
	}
}
