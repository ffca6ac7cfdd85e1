package liquidity

import (
	"fmt"
	"math"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

// Config carries the tunable parts of the dynamic score. The open-interest
// tier breakpoints are fixed contract-level conventions and stay as
// constants.
type Config struct {
	SweetSpotMinDTE int `yaml:"sweet_spot_min_dte"`
	SweetSpotMaxDTE int `yaml:"sweet_spot_max_dte"`
}

func (c *Config) ApplyDefaults() {
	if c.SweetSpotMinDTE <= 0 {
		c.SweetSpotMinDTE = 21
	}

	if c.SweetSpotMaxDTE <= 0 {
		c.SweetSpotMaxDTE = 60
	}
}

type Scorer struct {
	cfg Config
}

func NewScorer(cfg Config) *Scorer {
	cfg.ApplyDefaults()

	return &Scorer{cfg: cfg}
}

// StrikeMetrics are the static per-expiration liquidity numbers taken at
// the at-the-money strike.
type StrikeMetrics struct {
	ATMStrike    float64 `json:"atm_strike"`
	ATMCallOI    int64   `json:"atm_call_oi"`
	ATMPutOI     int64   `json:"atm_put_oi"`
	StraddleOI   int64   `json:"straddle_oi"`
	PutCallRatio float64 `json:"put_call_ratio"`
	Tier         int     `json:"tier"` // 1-10
}

// Tier maps straddle open interest onto the 1-10 liquidity ladder.
func Tier(straddleOI int64) int {
	switch {
	case straddleOI >= 10000:
		return 10
	case straddleOI >= 5000:
		return 9
	case straddleOI >= 2500:
		return 8
	case straddleOI >= 1000:
		return 7
	case straddleOI >= 500:
		return 6
	case straddleOI >= 250:
		return 5
	case straddleOI >= 100:
		return 4
	case straddleOI >= 50:
		return 3
	case straddleOI >= 25:
		return 2
	default:
		return 1
	}
}

// ATMStrike returns the quoted strike nearest the underlying price. ok is
// false for an empty chain.
func ATMStrike(quotes []*optionmodels.OptionQuote, underlyingPrice float64) (float64, bool) {
	if len(quotes) == 0 {
		return 0, false
	}

	best := quotes[0].Strike
	bestDist := math.Abs(best - underlyingPrice)

	for _, q := range quotes[1:] {
		if dist := math.Abs(q.Strike - underlyingPrice); dist < bestDist {
			best = q.Strike
			bestDist = dist
		}
	}

	return best, true
}

// ComputeStrikeMetrics locates the ATM strike within one expiration's
// quotes and aggregates call and put open interest there.
func ComputeStrikeMetrics(quotes []*optionmodels.OptionQuote, underlyingPrice float64) (StrikeMetrics, error) {
	if underlyingPrice <= 0 {
		return StrikeMetrics{}, fmt.Errorf("ComputeStrikeMetrics: underlying price must be positive, got %v", underlyingPrice)
	}

	strike, ok := ATMStrike(quotes, underlyingPrice)
	if !ok {
		return StrikeMetrics{}, fmt.Errorf("ComputeStrikeMetrics: no quotes supplied")
	}

	m := StrikeMetrics{ATMStrike: strike}

	for _, q := range quotes {
		if q.Strike != strike {
			continue
		}

		switch q.OptionType {
		case optionmodels.OptionTypeCall:
			m.ATMCallOI += q.OpenInterest
		case optionmodels.OptionTypePut:
			m.ATMPutOI += q.OpenInterest
		}
	}

	m.StraddleOI = m.ATMCallOI + m.ATMPutOI

	if m.ATMCallOI > 0 {
		m.PutCallRatio = float64(m.ATMPutOI) / float64(m.ATMCallOI)
	}

	m.Tier = Tier(m.StraddleOI)

	return m, nil
}

// ProfileInputs feed the dynamic execution-guidance score. SpreadPct is the
// observed bid/ask spread as a percentage of mid; nil falls back to an
// open-interest proxy.
type ProfileInputs struct {
	StraddleOI   int64
	TotalVolume  int64
	PutCallRatio float64
	SpreadPct    *float64
	DTE          int
}

// Profile is the execution guidance for one expiration: a 0-100 score, its
// bucket, and the sizing and order-type recommendations derived from it.
type Profile struct {
	Score          int        `json:"score"`
	Bucket         Bucket     `json:"bucket"`
	EstSpreadPct   float64    `json:"est_spread_pct"`
	Difficulty     Difficulty `json:"difficulty"`
	OrderType      OrderType  `json:"order_type"`
	SizeMultiplier float64    `json:"size_multiplier"` // 0.25x - 1.5x of base size
}

// ComputeProfile scores execution quality out of 100: open interest 40,
// volume turnover 20, put/call balance 15, spread 15, expiry placement 10.
func (s *Scorer) ComputeProfile(in ProfileInputs) Profile {
	spreadPct := estimateSpreadPct(in.StraddleOI)
	if in.SpreadPct != nil && *in.SpreadPct > 0 {
		spreadPct = *in.SpreadPct
	}

	score := oiPoints(in.StraddleOI)
	score += turnoverPoints(in.StraddleOI, in.TotalVolume)
	score += balancePoints(in.PutCallRatio)
	score += spreadPoints(spreadPct)
	score += s.dtePoints(in.DTE)

	bucket := bucketFor(score)

	return Profile{
		Score:          score,
		Bucket:         bucket,
		EstSpreadPct:   spreadPct,
		Difficulty:     difficultyFor(score),
		OrderType:      orderTypeFor(score),
		SizeMultiplier: sizeMultiplierFor(bucket),
	}
}

func oiPoints(straddleOI int64) int {
	switch {
	case straddleOI >= 10000:
		return 40
	case straddleOI >= 5000:
		return 35
	case straddleOI >= 2500:
		return 30
	case straddleOI >= 1000:
		return 25
	case straddleOI >= 500:
		return 20
	case straddleOI >= 250:
		return 15
	case straddleOI >= 100:
		return 10
	default:
		return 5
	}
}

func turnoverPoints(straddleOI, totalVolume int64) int {
	if straddleOI <= 0 || totalVolume <= 0 {
		return 0
	}

	ratio := float64(totalVolume) / float64(straddleOI)

	switch {
	case ratio >= 0.5:
		return 20
	case ratio >= 0.3:
		return 16
	case ratio >= 0.15:
		return 12
	case ratio >= 0.05:
		return 8
	default:
		return 4
	}
}

func balancePoints(putCallRatio float64) int {
	switch {
	case putCallRatio >= 0.7 && putCallRatio <= 1.5:
		return 15
	case putCallRatio >= 0.5 && putCallRatio <= 2.0:
		return 10
	case putCallRatio >= 0.3 && putCallRatio <= 3.0:
		return 5
	default:
		return 0
	}
}

// estimateSpreadPct proxies the bid/ask spread from open interest when no
// quote-level spread is available.
func estimateSpreadPct(straddleOI int64) float64 {
	switch {
	case straddleOI >= 10000:
		return 1.0
	case straddleOI >= 5000:
		return 1.5
	case straddleOI >= 2500:
		return 2.5
	case straddleOI >= 1000:
		return 4.0
	case straddleOI >= 500:
		return 6.0
	case straddleOI >= 250:
		return 8.0
	case straddleOI >= 100:
		return 10.0
	default:
		return 15.0
	}
}

func spreadPoints(spreadPct float64) int {
	switch {
	case spreadPct <= 1.5:
		return 15
	case spreadPct <= 3.0:
		return 12
	case spreadPct <= 5.0:
		return 9
	case spreadPct <= 8.0:
		return 6
	case spreadPct <= 12.0:
		return 3
	default:
		return 0
	}
}

func (s *Scorer) dtePoints(dte int) int {
	switch {
	case dte >= s.cfg.SweetSpotMinDTE && dte <= s.cfg.SweetSpotMaxDTE:
		return 10
	case dte >= 14 && dte <= 90:
		return 6
	case dte >= 7 && dte <= 120:
		return 3
	default:
		return 0
	}
}

func bucketFor(score int) Bucket {
	switch {
	case score >= 80:
		return BucketVeryHigh
	case score >= 60:
		return BucketHigh
	case score >= 40:
		return BucketModerate
	case score >= 20:
		return BucketLow
	default:
		return BucketVeryLow
	}
}

func difficultyFor(score int) Difficulty {
	switch {
	case score >= 70:
		return DifficultyEasy
	case score >= 50:
		return DifficultyModerate
	case score >= 30:
		return DifficultyHard
	default:
		return DifficultyVeryHard
	}
}

func orderTypeFor(score int) OrderType {
	switch {
	case score >= 80:
		return OrderTypeMarket
	case score >= 40:
		return OrderTypeLimit
	default:
		return OrderTypeLimitOnly
	}
}

func sizeMultiplierFor(bucket Bucket) float64 {
	switch bucket {
	case BucketVeryHigh:
		return 1.5
	case BucketHigh:
		return 1.25
	case BucketModerate:
		return 1.0
	case BucketLow:
		return 0.5
	default:
		return 0.25
	}
}
