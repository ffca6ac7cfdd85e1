package optionmodels

import (
	"fmt"
	"time"
)

// OptionQuote is a single contract snapshot supplied by the market-data
// collaborator. Quotes are immutable once constructed; optional fields are
// nil when the feed did not provide them.
type OptionQuote struct {
	Underlying   StockSymbol `json:"underlying"`
	Strike       float64     `json:"strike"`
	Expiration   time.Time   `json:"expiration"`
	OptionType   OptionType  `json:"option_type"`
	ImpliedVol   *float64    `json:"implied_vol,omitempty"` // decimal, e.g. 0.35
	Greeks       *Greeks     `json:"greeks,omitempty"`
	Bid          *float64    `json:"bid,omitempty"`
	Ask          *float64    `json:"ask,omitempty"`
	OpenInterest int64       `json:"open_interest"`
	Volume       int64       `json:"volume"`
}

func (q *OptionQuote) Validate() error {
	if q.Strike <= 0 {
		return fmt.Errorf("OptionQuote: Validate: strike must be positive, got %v", q.Strike)
	}

	if q.Expiration.IsZero() {
		return fmt.Errorf("OptionQuote: Validate: missing expiration")
	}

	if err := q.OptionType.Validate(); err != nil {
		return fmt.Errorf("OptionQuote: Validate: %w", err)
	}

	if q.OpenInterest < 0 {
		return fmt.Errorf("OptionQuote: Validate: open interest must be non-negative, got %v", q.OpenInterest)
	}

	if q.Volume < 0 {
		return fmt.Errorf("OptionQuote: Validate: volume must be non-negative, got %v", q.Volume)
	}

	return nil
}

// MidPrice returns the bid/ask midpoint, falling back to whichever side is
// present. ok is false when neither side was quoted.
func (q *OptionQuote) MidPrice() (float64, bool) {
	if q.Bid != nil && q.Ask != nil && *q.Bid > 0 && *q.Ask > 0 {
		return (*q.Bid + *q.Ask) / 2, true
	}

	if q.Ask != nil && *q.Ask > 0 {
		return *q.Ask, true
	}

	if q.Bid != nil && *q.Bid > 0 {
		return *q.Bid, true
	}

	return 0, false
}

// SpreadPct returns the bid/ask spread as a percentage of the midpoint.
func (q *OptionQuote) SpreadPct() (float64, bool) {
	if q.Bid == nil || q.Ask == nil {
		return 0, false
	}

	mid, ok := q.MidPrice()
	if !ok || mid <= 0 {
		return 0, false
	}

	return (*q.Ask - *q.Bid) / mid * 100, true
}

// DTE returns whole days from now until expiration, rounded down. Quotes on
// contracts that expired before now produce negative values; callers exclude
// those before grouping.
func (q *OptionQuote) DTE(now time.Time) int {
	return int(q.Expiration.Sub(now).Hours() / 24)
}
