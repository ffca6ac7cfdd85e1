package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jiaming2012/calendar-scanner/src/eventpubsub"
	"github.com/jiaming2012/calendar-scanner/src/forwardvol"
	"github.com/jiaming2012/calendar-scanner/src/marketdata"
	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
	"github.com/jiaming2012/calendar-scanner/src/quality"
)

// OptionScanner runs the per-ticker pipeline: chain grouping, forward-vol
// decomposition over adjacent expiration pairs, and quality filtering.
// Every candidate that carries a signal is returned with its verdict
// attached; callers decide what an acceptable rating is.
type OptionScanner struct {
	cfg      Config
	provider marketdata.Provider
	filter   *quality.Filter
}

func NewOptionScanner(cfg Config, provider marketdata.Provider) *OptionScanner {
	cfg.ApplyDefaults()

	return &OptionScanner{
		cfg:      cfg,
		provider: provider,
		filter:   quality.NewFilter(cfg.Quality),
	}
}

// ScanTicker evaluates one symbol end to end. Fundamentals and the
// earnings calendar are best-effort: if either is unavailable the scan
// proceeds without them and the derived fields degrade to estimates.
func (s *OptionScanner) ScanTicker(ctx context.Context, ticker optionmodels.StockSymbol) (*optionmodels.TickerScanResult, error) {
	tracer := otel.Tracer("OptionScanner")
	ctx, span := tracer.Start(ctx, "ScanTicker")
	defer span.End()

	span.SetAttributes(attribute.String("ticker", string(ticker)))

	if ticker == "" {
		return nil, fmt.Errorf("OptionScanner.ScanTicker: ticker not set")
	}

	quotes, err := s.provider.OptionChain(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("OptionScanner.ScanTicker: fetch chain for %s: %w", ticker, err)
	}

	if len(quotes) == 0 {
		return nil, fmt.Errorf("OptionScanner.ScanTicker: empty chain for %s", ticker)
	}

	price, err := s.provider.UnderlyingPrice(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("OptionScanner.ScanTicker: fetch price for %s: %w", ticker, err)
	}

	priceEstimated := false
	if price <= 0 {
		price = marketdata.EstimateUnderlyingPrice(averageQuotedIV(quotes))
		priceEstimated = true

		log.Debugf("%s: no underlying price in snapshot, estimated %.0f from chain IV", ticker, price)
	}

	fundamentals, err := s.provider.Fundamentals(ctx, ticker)
	if err != nil {
		log.Warnf("%s: fundamentals unavailable: %v", ticker, err)
		fundamentals = nil
	}

	calendar, err := s.provider.Calendar(ctx)
	if err != nil {
		log.Warnf("%s: earnings calendar unavailable: %v", ticker, err)
		calendar = nil
	}

	now := time.Now().UTC()
	groups := GroupByExpiration(ticker, quotes, price, s.cfg.MinGroupContracts, now)

	result := &optionmodels.TickerScanResult{
		Ticker:          ticker,
		UnderlyingPrice: price,
		PriceEstimated:  priceEstimated,
		Groups:          groups,
		ScannedAt:       now,
	}

	for i := 0; i+1 < len(groups); i++ {
		opp, ok := s.evaluatePair(ticker, price, groups, i, fundamentals, calendar, now)
		if !ok {
			continue
		}

		result.Opportunities = append(result.Opportunities, opp)
	}

	span.SetAttributes(
		attribute.Int("expirations", len(groups)),
		attribute.Int("opportunities", len(result.Opportunities)),
	)

	return result, nil
}

// evaluatePair decomposes one adjacent expiration pair. Nothing here is
// fatal to the scan: pairs that fail to decompose or carry no signal are
// skipped, and the reason is surfaced as a diagnostic.
func (s *OptionScanner) evaluatePair(ticker optionmodels.StockSymbol, price float64, groups []optionmodels.ExpirationGroup, i int, fundamentals *optionmodels.TickerFundamentals, calendar *optionmodels.FinancialCalendar, now time.Time) (*optionmodels.Opportunity, bool) {
	front, back := groups[i], groups[i+1]
	earningsSoon := earningsBeforeFront(ticker, front, fundamentals, calendar, now)

	var d forwardvol.Decomposition
	var err error

	if earningsSoon {
		d, err = forwardvol.DecomposeExEarnings(front.ATMIV, back.ATMIV, front.DTE, back.DTE, s.cfg.ForwardVol.EarningsCrushPoints)
	} else {
		d, err = forwardvol.DecomposePair(front, back)
	}

	if err != nil {
		log.Warnf("%s: decompose %s/%s: %v", ticker, front.Expiration.Format("2006-01-02"), back.Expiration.Format("2006-01-02"), err)
		return nil, false
	}

	if !d.HasSignal() {
		eventpubsub.Publish("OptionScanner", eventpubsub.DiagnosticEvent, eventpubsub.Diagnostic{
			Source:  "scanner",
			Message: "pair carries no forward signal",
			Fields: map[string]interface{}{
				"ticker": string(ticker),
				"front":  front.Expiration.Format("2006-01-02"),
				"back":   back.Expiration.Format("2006-01-02"),
			},
		})

		return nil, false
	}

	opp := &optionmodels.Opportunity{
		Ticker:          ticker,
		UnderlyingPrice: price,
		Front:           front,
		Back:            back,
		ForwardVol:      d.ForwardVol,
		ForwardFactor:   d.ForwardFactor,
		Signal:          d.Signal,
		EarningsSoon:    earningsSoon,
		IVRank:          s.ivRank(groups, front, fundamentals),
		GeneratedAt:     now,
	}

	verdict, err := s.filter.Evaluate(opp)
	if err != nil {
		log.Warnf("%s: quality evaluation for %s/%s: %v", ticker, front.Expiration.Format("2006-01-02"), back.Expiration.Format("2006-01-02"), err)
		return nil, false
	}

	opp.Quality = &verdict

	return opp, true
}

// ivRank prefers the provider's historical rank and falls back to the
// snapshot estimate. Nil propagates when neither is available, so the
// filter skips the regime rule instead of scoring a made-up rank.
func (s *OptionScanner) ivRank(groups []optionmodels.ExpirationGroup, front optionmodels.ExpirationGroup, fundamentals *optionmodels.TickerFundamentals) *float64 {
	if fundamentals != nil && fundamentals.IVRank != nil {
		return fundamentals.IVRank
	}

	return EstimateIVRank(groups, front.ATMIV)
}

// earningsBeforeFront reports whether earnings land inside the front
// expiration's window, from either the calendar or the fundamentals feed.
func earningsBeforeFront(ticker optionmodels.StockSymbol, front optionmodels.ExpirationGroup, fundamentals *optionmodels.TickerFundamentals, calendar *optionmodels.FinancialCalendar, now time.Time) bool {
	if calendar != nil && calendar.HasEarningsBetween(ticker, now, front.Expiration) {
		return true
	}

	if fundamentals != nil && fundamentals.NextEarnings != nil {
		e := *fundamentals.NextEarnings
		return !e.Before(now) && !e.After(front.Expiration)
	}

	return false
}

// averageQuotedIV is the blind-estimate input when the snapshot carries no
// underlying price: the mean quoted IV across the whole chain, in percent.
func averageQuotedIV(quotes []*optionmodels.OptionQuote) float64 {
	ivs := make([]float64, 0, len(quotes))

	for _, q := range quotes {
		if q.ImpliedVol != nil && *q.ImpliedVol > 0 {
			ivs = append(ivs, *q.ImpliedVol)
		}
	}

	if len(ivs) == 0 {
		return 0
	}

	mean, err := stats.Mean(ivs)
	if err != nil {
		return 0
	}

	return mean * 100
}
