package marketdata

import (
	"context"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

// Provider supplies the already-fetched market data a scan consumes. The
// engine never fetches anything itself: implementations own pagination,
// retries, and rate limits. A provider returning an error for one ticker
// must not prevent other tickers from being served.
type Provider interface {
	// OptionChain returns every option quote for the ticker across all
	// expirations.
	OptionChain(ctx context.Context, ticker optionmodels.StockSymbol) ([]*optionmodels.OptionQuote, error)

	// UnderlyingPrice returns the last trade price. Zero with a nil error
	// means the price is unknown and the caller should estimate one.
	UnderlyingPrice(ctx context.Context, ticker optionmodels.StockSymbol) (float64, error)

	// Fundamentals returns per-ticker context. A nil result with a nil
	// error means none is available.
	Fundamentals(ctx context.Context, ticker optionmodels.StockSymbol) (*optionmodels.TickerFundamentals, error)

	// Calendar returns the scheduled financial events relevant to a scan.
	Calendar(ctx context.Context) (*optionmodels.FinancialCalendar, error)
}

// EstimateUnderlyingPrice brackets a price from the chain's average IV when
// no quote is available. Calm chains tend to belong to large caps trading
// at index-level prices, noisy chains to cheaper single names.
func EstimateUnderlyingPrice(avgIVPct float64) float64 {
	switch {
	case avgIVPct < 20:
		return 450
	case avgIVPct < 35:
		return 350
	case avgIVPct < 60:
		return 250
	default:
		return 150
	}
}
