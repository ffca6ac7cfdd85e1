package optionmodels

import (
	"fmt"
	"time"
)

// QualityVerdict is the outcome of running an opportunity through the
// quality rules: an adjusted rating, hard-reject state, and the reasons
// behind both.
type QualityVerdict struct {
	Rating        int      `json:"rating"` // 0-10
	IsQuality     bool     `json:"is_quality"`
	HardRejected  bool     `json:"hard_rejected"`
	RejectReasons []string `json:"reject_reasons,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
	WinProbPct    float64  `json:"win_prob_pct"`
	RiskReward    float64  `json:"risk_reward"`
}

// Opportunity is one scored calendar-spread candidate: a front/back
// expiration pair with its forward-vol decomposition, liquidity context,
// and (after filtering) a quality verdict.
type Opportunity struct {
	Ticker          StockSymbol     `json:"ticker"`
	UnderlyingPrice float64         `json:"underlying_price"`
	Front           ExpirationGroup `json:"front"`
	Back            ExpirationGroup `json:"back"`
	ForwardVol      float64         `json:"forward_vol"`     // percent
	ForwardFactor   float64         `json:"forward_factor"`  // percent premium of front IV over forward vol
	Signal          Signal          `json:"signal"`
	EarningsSoon    bool            `json:"earnings_soon"` // earnings before front expiration
	IVRank          *float64        `json:"iv_rank,omitempty"`
	Quality         *QualityVerdict `json:"quality,omitempty"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// HasSignal reports whether the pair produced an actionable decomposition.
// Pairs where the forward variance collapsed carry a zero forward factor
// and no signal.
func (o *Opportunity) HasSignal() bool {
	return o.ForwardFactor != 0 && o.Signal != ""
}

// IsInverted reports whether the front expiration trades over the back,
// the shape earnings and event risk produce.
func (o *Opportunity) IsInverted() bool {
	return o.Front.ATMIV > o.Back.ATMIV
}

func (o *Opportunity) Validate() error {
	if o.Ticker == "" {
		return fmt.Errorf("Opportunity.Validate: ticker not set")
	}

	if o.UnderlyingPrice <= 0 {
		return fmt.Errorf("Opportunity.Validate: underlying price must be positive, got %.2f", o.UnderlyingPrice)
	}

	if !o.Back.Expiration.After(o.Front.Expiration) {
		return fmt.Errorf("Opportunity.Validate: back expiration %s must be after front %s", o.Back.Expiration.Format("2006-01-02"), o.Front.Expiration.Format("2006-01-02"))
	}

	if o.Signal != "" {
		if err := o.Signal.Validate(); err != nil {
			return fmt.Errorf("Opportunity.Validate: %w", err)
		}
	}

	return nil
}
