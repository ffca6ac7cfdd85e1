package quality

// Policy gathers every threshold and adjustment the filter applies, so the
// scoring calibration can be tuned or swapped in tests without touching the
// rule logic. DefaultPolicy is the production calibration.
type Policy struct {
	BaseRating int `yaml:"base_rating"`
	MinRating  int `yaml:"min_rating"` // quality floor on the final 0-10 rating

	// Rule 1: forward-factor magnitude.
	WeakAbsFactor         float64 `yaml:"weak_abs_factor"`
	WeakFactorPenalty     int     `yaml:"weak_factor_penalty"`
	StrongAbsFactor       float64 `yaml:"strong_abs_factor"`
	StrongFactorBonus     int     `yaml:"strong_factor_bonus"`
	VeryStrongAbsFactor   float64 `yaml:"very_strong_abs_factor"`
	VeryStrongFactorBonus int     `yaml:"very_strong_factor_bonus"`

	// Rule 2: inverted term structure.
	InvertedEarningsMaxAbsFactor float64 `yaml:"inverted_earnings_max_abs_factor"`
	InvertedWarnMaxAbsFactor     float64 `yaml:"inverted_warn_max_abs_factor"`
	InvertedWarnPenalty          int     `yaml:"inverted_warn_penalty"`

	// Rule 3: expiration placement.
	MinFrontDTE       int `yaml:"min_front_dte"`
	ShortFrontPenalty int `yaml:"short_front_penalty"`
	MaxFrontDTE       int `yaml:"max_front_dte"`
	FarFrontPenalty   int `yaml:"far_front_penalty"`
	MinDTEGap         int `yaml:"min_dte_gap"`
	NarrowGapPenalty  int `yaml:"narrow_gap_penalty"`

	// Rule 4: IV sanity.
	MinFrontIV       float64 `yaml:"min_front_iv"`
	LowIVPenalty     int     `yaml:"low_iv_penalty"`
	MaxFrontIV       float64 `yaml:"max_front_iv"`
	ExtremeIVPenalty int     `yaml:"extreme_iv_penalty"`

	// Rule 5: open-interest depth.
	CriticalOI             int64   `yaml:"critical_oi"`
	CriticalOIPenalty      int     `yaml:"critical_oi_penalty"`
	ThinOI                 int64   `yaml:"thin_oi"`
	ThinOIPenalty          int     `yaml:"thin_oi_penalty"`
	SevereOIPenalty        int     `yaml:"severe_oi_penalty"` // both legs under CriticalOI
	DeepOI                 int64   `yaml:"deep_oi"`
	DeepOIBonus            int     `yaml:"deep_oi_bonus"`
	SolidOI                int64   `yaml:"solid_oi"`
	SolidOIBonus           int     `yaml:"solid_oi_bonus"`
	SevereImbalance        float64 `yaml:"severe_imbalance"`
	SevereImbalancePenalty int     `yaml:"severe_imbalance_penalty"`
	WarnImbalance          float64 `yaml:"warn_imbalance"`
	WarnImbalancePenalty   int     `yaml:"warn_imbalance_penalty"`

	// Rule 6: IV-rank regime.
	HighIVR               float64 `yaml:"high_ivr"`
	LowIVR                float64 `yaml:"low_ivr"`
	AlignedIVRBonus       int     `yaml:"aligned_ivr_bonus"`
	ConflictingIVRPenalty int     `yaml:"conflicting_ivr_penalty"`

	// Rule 7: put/call skew.
	SkewHigh float64 `yaml:"skew_high"`
	SkewLow  float64 `yaml:"skew_low"`
}

func DefaultPolicy() Policy {
	return Policy{
		BaseRating: 5,
		MinRating:  6,

		WeakAbsFactor:         30,
		WeakFactorPenalty:     2,
		StrongAbsFactor:       40,
		StrongFactorBonus:     1,
		VeryStrongAbsFactor:   60,
		VeryStrongFactorBonus: 2,

		InvertedEarningsMaxAbsFactor: 40,
		InvertedWarnMaxAbsFactor:     50,
		InvertedWarnPenalty:          1,

		MinFrontDTE:       7,
		ShortFrontPenalty: 2,
		MaxFrontDTE:       180,
		FarFrontPenalty:   1,
		MinDTEGap:         3,
		NarrowGapPenalty:  2,

		MinFrontIV:       15,
		LowIVPenalty:     1,
		MaxFrontIV:       150,
		ExtremeIVPenalty: 1,

		CriticalOI:             100,
		CriticalOIPenalty:      3,
		ThinOI:                 250,
		ThinOIPenalty:          1,
		SevereOIPenalty:        4,
		DeepOI:                 1000,
		DeepOIBonus:            2,
		SolidOI:                500,
		SolidOIBonus:           1,
		SevereImbalance:        0.25,
		SevereImbalancePenalty: 2,
		WarnImbalance:          0.5,
		WarnImbalancePenalty:   1,

		HighIVR:               70,
		LowIVR:                30,
		AlignedIVRBonus:       1,
		ConflictingIVRPenalty: 1,

		SkewHigh: 2.0,
		SkewLow:  0.5,
	}
}
