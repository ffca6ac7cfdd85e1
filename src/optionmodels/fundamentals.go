package optionmodels

import "time"

// TickerFundamentals carries the per-symbol context a scan folds into its
// scoring: dividend yield for pricing, IV rank for the quality rules, and
// the next scheduled earnings date. All fields are optional; a missing IV
// rank skips the rank-alignment rule rather than assuming a neutral value.
type TickerFundamentals struct {
	Ticker        StockSymbol `json:"ticker"`
	DividendYield *float64    `json:"dividend_yield,omitempty"` // annualized, decimal
	IVRank        *float64    `json:"iv_rank,omitempty"`        // 0-100
	NextEarnings  *time.Time  `json:"next_earnings,omitempty"`
}

// DividendYieldOrZero returns the annualized dividend yield, defaulting to
// zero for non-payers and unknown symbols.
func (f *TickerFundamentals) DividendYieldOrZero() float64 {
	if f == nil || f.DividendYield == nil {
		return 0
	}

	return *f.DividendYield
}
