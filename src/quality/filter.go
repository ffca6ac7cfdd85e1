package quality

import (
	"fmt"
	"math"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

// Filter scores calendar-spread candidates against a Policy. Evaluation is
// a pure function of the opportunity: no state is kept between calls, and
// the same input always yields the same verdict.
type Filter struct {
	policy Policy
}

func NewFilter(policy Policy) *Filter {
	return &Filter{policy: policy}
}

// Evaluate runs the ordered rule set over one candidate and returns its
// verdict. The candidate must carry a signal; pairs that decomposed to a
// zero forward factor are not scoreable.
func (f *Filter) Evaluate(o *optionmodels.Opportunity) (optionmodels.QualityVerdict, error) {
	if err := o.Validate(); err != nil {
		return optionmodels.QualityVerdict{}, fmt.Errorf("Filter: Evaluate: %w", err)
	}

	if !o.HasSignal() {
		return optionmodels.QualityVerdict{}, fmt.Errorf("Filter: Evaluate: opportunity carries no signal")
	}

	absFactor := math.Abs(o.ForwardFactor)
	rating := f.policy.BaseRating
	hardRejected := false

	var rejectReasons []string
	var warnings []string

	// Rule 1: signal strength.
	switch {
	case absFactor >= f.policy.VeryStrongAbsFactor:
		rating += f.policy.VeryStrongFactorBonus
	case absFactor >= f.policy.StrongAbsFactor:
		rating += f.policy.StrongFactorBonus
	case absFactor < f.policy.WeakAbsFactor:
		rating -= f.policy.WeakFactorPenalty
		rejectReasons = append(rejectReasons, fmt.Sprintf("forward factor %.1f%% is below the %.0f%% actionable threshold", o.ForwardFactor, f.policy.WeakAbsFactor))
	}

	// Rule 2: inverted term structure. Inversion into earnings is the
	// classic false positive: the front month is rich because of the
	// event, not because of a mispricing.
	inverted := o.IsInverted()

	if inverted && o.EarningsSoon && absFactor < f.policy.InvertedEarningsMaxAbsFactor {
		hardRejected = true
		rejectReasons = append(rejectReasons, fmt.Sprintf("inverted term structure into earnings with |FF| %.1f%%, likely event premium", absFactor))
	} else if inverted && !o.EarningsSoon && absFactor < f.policy.InvertedWarnMaxAbsFactor {
		rating -= f.policy.InvertedWarnPenalty
		warnings = append(warnings, "inverted term structure with no earnings scheduled")
	}

	// Rule 3: expiration placement.
	if o.Front.DTE < f.policy.MinFrontDTE {
		rating -= f.policy.ShortFrontPenalty
		rejectReasons = append(rejectReasons, fmt.Sprintf("front expiration %d days out, gamma risk too concentrated", o.Front.DTE))
	}

	if o.Front.DTE > f.policy.MaxFrontDTE {
		rating -= f.policy.FarFrontPenalty
		warnings = append(warnings, fmt.Sprintf("front expiration %d days out, signal decays over long horizons", o.Front.DTE))
	}

	if gap := o.Back.DTE - o.Front.DTE; gap < f.policy.MinDTEGap {
		rating -= f.policy.NarrowGapPenalty
		rejectReasons = append(rejectReasons, fmt.Sprintf("only %d days between expirations", gap))
	}

	// Rule 4: IV sanity.
	if o.Front.ATMIV < f.policy.MinFrontIV {
		rating -= f.policy.LowIVPenalty
		warnings = append(warnings, fmt.Sprintf("front IV %.1f%% leaves little premium to trade", o.Front.ATMIV))
	}

	if o.Front.ATMIV > f.policy.MaxFrontIV {
		rating -= f.policy.ExtremeIVPenalty
		warnings = append(warnings, fmt.Sprintf("front IV %.1f%% signals distressed pricing", o.Front.ATMIV))
	}

	// Rule 5: open-interest depth, per leg and combined. The back leg is
	// the execution bottleneck: it is held longest and unwound last.
	rating = f.scoreLegOI(rating, "front", o.Front.StraddleOI, &rejectReasons, &warnings)
	rating = f.scoreLegOI(rating, "back", o.Back.StraddleOI, &rejectReasons, &warnings)

	minOI := o.Front.StraddleOI
	if o.Back.StraddleOI < minOI {
		minOI = o.Back.StraddleOI
	}

	switch {
	case minOI < f.policy.CriticalOI:
		rating -= f.policy.SevereOIPenalty
		if rating < 0 {
			rating = 0
		}
		rejectReasons = append(rejectReasons, "no depth on at least one leg, fills would move the market")
	case minOI >= f.policy.DeepOI:
		rating += f.policy.DeepOIBonus
	case minOI >= f.policy.SolidOI:
		rating += f.policy.SolidOIBonus
	}

	if o.Front.StraddleOI > 0 {
		legRatio := float64(o.Back.StraddleOI) / float64(o.Front.StraddleOI)

		switch {
		case legRatio < f.policy.SevereImbalance:
			rating -= f.policy.SevereImbalancePenalty
			rejectReasons = append(rejectReasons, fmt.Sprintf("back leg carries %.0f%% of front OI", legRatio*100))
		case legRatio < f.policy.WarnImbalance:
			rating -= f.policy.WarnImbalancePenalty
			warnings = append(warnings, fmt.Sprintf("back leg carries %.0f%% of front OI", legRatio*100))
		}
	}

	// Rule 6: IV-rank regime. Skipped entirely when the rank is unknown;
	// an absent rank must not be scored as a mid-range one.
	if o.IVRank != nil {
		ivr := *o.IVRank

		switch {
		case o.Signal == optionmodels.SignalSell && ivr > f.policy.HighIVR:
			rating += f.policy.AlignedIVRBonus
		case o.Signal == optionmodels.SignalBuy && ivr < f.policy.LowIVR:
			rating += f.policy.AlignedIVRBonus
		case o.Signal == optionmodels.SignalSell && ivr < f.policy.LowIVR,
			o.Signal == optionmodels.SignalBuy && ivr > f.policy.HighIVR:
			rating -= f.policy.ConflictingIVRPenalty
			warnings = append(warnings, fmt.Sprintf("signal %s conflicts with IV rank %.0f", o.Signal, ivr))
		}
	}

	// Rule 7: put/call skew flags hedging or speculative crowding. Never
	// scored, only surfaced.
	for _, leg := range []struct {
		name  string
		ratio float64
	}{
		{"front", o.Front.PutCallRatio},
		{"back", o.Back.PutCallRatio},
	} {
		if leg.ratio > f.policy.SkewHigh || (leg.ratio > 0 && leg.ratio < f.policy.SkewLow) {
			warnings = append(warnings, fmt.Sprintf("%s leg put/call ratio %.2f is heavily skewed", leg.name, leg.ratio))
		}
	}

	if hardRejected {
		rating = 0
	}

	if rating < 0 {
		rating = 0
	}

	if rating > 10 {
		rating = 10
	}

	return optionmodels.QualityVerdict{
		Rating:        rating,
		IsQuality:     !hardRejected && rating >= f.policy.MinRating,
		HardRejected:  hardRejected,
		RejectReasons: rejectReasons,
		Warnings:      warnings,
		WinProbPct:    winProbability(absFactor, o.EarningsSoon, inverted),
		RiskReward:    riskReward(absFactor),
	}, nil
}

func (f *Filter) scoreLegOI(rating int, leg string, straddleOI int64, rejectReasons, warnings *[]string) int {
	switch {
	case straddleOI < f.policy.CriticalOI:
		*rejectReasons = append(*rejectReasons, fmt.Sprintf("%s straddle OI %d is critically thin", leg, straddleOI))
		return rating - f.policy.CriticalOIPenalty
	case straddleOI < f.policy.ThinOI:
		*warnings = append(*warnings, fmt.Sprintf("%s straddle OI %d is thin", leg, straddleOI))
		return rating - f.policy.ThinOIPenalty
	default:
		return rating
	}
}

// winProbability and riskReward are calibrated tiers, not statistical
// estimates. They must stay tiered; deriving them from the payoff curve
// would change every downstream ranking.
func winProbability(absFactor float64, earningsSoon, inverted bool) float64 {
	var base float64

	switch {
	case absFactor >= 80:
		base = 85
	case absFactor >= 60:
		base = 80
	case absFactor >= 40:
		base = 75
	case absFactor >= 30:
		base = 70
	case absFactor >= 20:
		base = 65
	default:
		base = 60
	}

	if earningsSoon {
		base *= 0.85
	}

	if inverted && !earningsSoon {
		base *= 0.9
	}

	if base < 50 {
		base = 50
	}

	if base > 90 {
		base = 90
	}

	return base
}

func riskReward(absFactor float64) float64 {
	switch {
	case absFactor >= 80:
		return 5.0
	case absFactor >= 60:
		return 4.0
	case absFactor >= 40:
		return 3.0
	case absFactor >= 30:
		return 2.5
	default:
		return 2.0
	}
}
