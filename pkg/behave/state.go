package behave

// Outputs are the fire behavior results of one spread condition.
type Outputs struct {
	RateOfSpread      float64 `json:"ros"` // m/s
	ResidenceTime     float64 `json:"tau"` // s
	HeatPerUnitArea   float64 `json:"hpa"` // kJ/m2
	FlameZoneDepth    float64 `json:"fzd"` // m
	FirelineIntensity float64 `json:"fli"` // kW/m
	FlameLength       float64 `json:"fln"` // m
}

// State is the solved fuel bed. It keeps every intermediate coefficient of
// the solve so that derivatives can be evaluated at exactly the same point.
type State struct {
	Input       Vector      `json:"input"`
	Fuel        FuelComplex `json:"fuel"`
	Environment Environment `json:"environment"`

	// MissingData is set when an input carried its no-data sentinel. All
	// other fields are then zero.
	MissingData bool `json:"missing_data"`

	// CanDerive is false when the solve went through a clamped branch or an
	// additional factor contributed to the spread vector.
	CanDerive         bool `json:"can_derive"`
	ExtinctionClamped bool `json:"extinction_clamped"`
	WindLimited       bool `json:"wind_limited"`

	// Dynamic curing transfer
	Curing          float64 `json:"curing"`
	DeadHerbLoading float64 `json:"dead_herb_loading"` // kg/m2

	// Per size class values after the curing transfer. SAV is zero for an
	// empty dead 10-hr or 100-hr class; NominalSAV keeps the category value.
	Loading    [NumClasses]float64 `json:"loading"`
	Moisture   [NumClasses]float64 `json:"moisture"`
	SAV        [NumClasses]float64 `json:"sav"`
	NominalSAV [NumClasses]float64 `json:"nominal_sav"`

	// sv*w, sv^2*w, sv*w^2 and sv*w*m per class
	SW  [NumClasses]float64 `json:"sw"`
	S2W [NumClasses]float64 `json:"s2w"`
	SW2 [NumClasses]float64 `json:"sw2"`
	SWM [NumClasses]float64 `json:"swm"`

	SWDead   float64 `json:"sw_dead"`
	SWLive   float64 `json:"sw_live"`
	SWTotal  float64 `json:"sw_total"`
	S2WTotal float64 `json:"s2w_total"`
	SW2Dead  float64 `json:"sw2_dead"`
	SWMDead  float64 `json:"swm_dead"`
	SWMLive  float64 `json:"swm_live"`

	TotalLoading         float64 `json:"w0"`    // kg/m2
	Sigma                float64 `json:"sigma"` // 1/m
	BulkDensity          float64 `json:"rho_b"` // kg/m3
	PackingRatio         float64 `json:"beta"`
	OptimalPackingRatio  float64 `json:"beta_opt"`
	RelativePackingRatio float64 `json:"beta_ratio"`
	NetLoadingDead       float64 `json:"wn_dead"` // kg/m2
	NetLoadingLive       float64 `json:"wn_live"` // kg/m2

	// Damping
	MineralDamping         float64             `json:"eta_s"`
	FineLoading            [NumClasses]float64 `json:"hn"`
	FineDead               float64             `json:"sum_hn_dead"`
	FineLive               float64             `json:"sum_hn_live"`
	FineDeadWater          float64             `json:"sum_hn_dead_m"`
	FineFuelRatio          float64             `json:"w_prime"`
	FineDeadMoisture       float64             `json:"mf_dead"`
	LiveExtinctionMoisture float64             `json:"mx_live"`
	MoistureRatioDead      float64             `json:"rm_dead"`
	MoistureRatioLive      float64             `json:"rm_live"`
	MoistureDampingDead    float64             `json:"eta_m_dead"`
	MoistureDampingLive    float64             `json:"eta_m_live"`
	MoistureDamping        float64             `json:"eta_m"`

	// Reaction
	ReactionExponent    float64 `json:"a"`
	MaxReactionVelocity float64 `json:"gamma_max"` // 1/s
	ReactionVelocity    float64 `json:"gamma"`     // 1/s
	ReactionIntensity   float64 `json:"ir"`        // kW/m2

	PropagatingFluxRatio float64 `json:"xi"`

	// Heat sink
	EffectiveHeating [NumClasses]float64 `json:"epsilon"`
	PreignitionHeat  [NumClasses]float64 `json:"q_ig"` // kJ/kg
	HeatSinkSum      float64             `json:"hsk_sum"`
	HeatSink         float64             `json:"hsk"` // kJ/m3

	// Wind and slope
	SlopeFactor float64 `json:"phi_s"`
	WindFactor  float64 `json:"phi_w"`
	WindB       float64 `json:"b"`
	WindC       float64 `json:"c"`
	WindE       float64 `json:"e"`

	UpslopeBearing     float64 `json:"upslope_rad"` // radians
	WindBearing        float64 `json:"wind_rad"`    // radians, blowing toward
	Split              float64 `json:"split_rad"`   // radians
	VectorX            float64 `json:"vx"`
	VectorY            float64 `json:"vy"`
	CombinedMagnitude  float64 `json:"vl"`
	CombinedFactor     float64 `json:"phi_t"`
	SpreadDirection    float64 `json:"sdr"` // degrees
	EffectiveWindSpeed float64 `json:"efw"` // m/s

	AdditionalFactor Factor `json:"additional_factor"`

	NoWindNoSlope Outputs `json:"no_wind_no_slope"`
	Outputs       Outputs `json:"outputs"`
}

// RateOfSpread is a shorthand for s.Outputs.RateOfSpread.
func (s *State) RateOfSpread() float64 {
	return s.Outputs.RateOfSpread
}
