package scanner

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/calendar-scanner/src/eventpubsub"
	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
	"github.com/jiaming2012/calendar-scanner/src/utils"
)

// ScanBatch runs every ticker through ScanTicker in fixed-size concurrent
// batches with a pause in between, sized for whatever rate limit sits
// behind the provider. A failed ticker is recorded on the result and never
// aborts the run; the only error is an empty ticker list.
func (s *OptionScanner) ScanBatch(ctx context.Context, tickers []optionmodels.StockSymbol) (*optionmodels.BatchScanResult, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("OptionScanner.ScanBatch: no tickers")
	}

	tracer := otel.Tracer("OptionScanner")
	ctx, span := tracer.Start(ctx, "ScanBatch")
	defer span.End()

	span.SetAttributes(attribute.Int("tickers", len(tickers)))

	result := optionmodels.NewBatchScanResult()

	var spanContext []byte
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		data, err := utils.SerializeTraceContext(sc)
		if err != nil {
			log.Warnf("ScanBatch: serialize trace context: %v", err)
		} else {
			spanContext = data
		}
	}

	eventpubsub.Publish("OptionScanner", eventpubsub.ScanStartedEvent, eventpubsub.ScanStarted{
		ScanID:      result.ScanID,
		Tickers:     tickers,
		SpanContext: spanContext,
		At:          result.StartedAt,
	})

	log.Infof("scan %s: %d tickers in batches of %d", result.ScanID, len(tickers), s.cfg.TickersPerBatch)

	var mu sync.Mutex

	for start := 0; start < len(tickers); start += s.cfg.TickersPerBatch {
		if start > 0 && s.cfg.BatchPauseSeconds > 0 {
			time.Sleep(s.cfg.BatchPause())
		}

		end := start + s.cfg.TickersPerBatch
		if end > len(tickers) {
			end = len(tickers)
		}

		var wg sync.WaitGroup

		for _, ticker := range tickers[start:end] {
			wg.Add(1)

			go func(ticker optionmodels.StockSymbol) {
				defer wg.Done()

				res, err := s.ScanTicker(ctx, ticker)

				mu.Lock()
				defer mu.Unlock()

				if err != nil {
					log.Errorf("scan %s: %s failed: %v", result.ScanID, ticker, err)
					result.Failed[ticker] = err.Error()

					eventpubsub.Publish("OptionScanner", eventpubsub.TickerScanFailedEvent, eventpubsub.TickerScanFailed{
						ScanID: result.ScanID,
						Ticker: ticker,
						Reason: err.Error(),
					})

					return
				}

				result.Results[ticker] = res

				eventpubsub.Publish("OptionScanner", eventpubsub.TickerScannedEvent, eventpubsub.TickerScanned{
					ScanID:        result.ScanID,
					Ticker:        ticker,
					Expirations:   len(res.Groups),
					Opportunities: len(res.Opportunities),
				})
			}(ticker)
		}

		wg.Wait()
	}

	result.Opportunities = rankOpportunities(result.Results, s.cfg.TopN)
	result.FinishedAt = time.Now().UTC()

	for _, opp := range result.Opportunities {
		eventpubsub.Publish("OptionScanner", eventpubsub.OpportunityFoundEvent, eventpubsub.OpportunityFound{
			ScanID:      result.ScanID,
			Opportunity: opp,
		})
	}

	eventpubsub.Publish("OptionScanner", eventpubsub.ScanCompletedEvent, eventpubsub.ScanCompleted{
		ScanID:   result.ScanID,
		Scanned:  len(result.Results),
		Failed:   len(result.Failed),
		Signals:  len(result.Opportunities),
		Duration: result.FinishedAt.Sub(result.StartedAt),
	})

	span.SetAttributes(
		attribute.Int("scanned", len(result.Results)),
		attribute.Int("failed", len(result.Failed)),
		attribute.Int("signals", len(result.Opportunities)),
	)

	log.Infof("scan %s: %d scanned, %d failed, %d quality signals in %s",
		result.ScanID, len(result.Results), len(result.Failed), len(result.Opportunities), result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))

	return result, nil
}

// rankOpportunities collects the accepted candidates across tickers and
// orders them strongest absolute forward factor first. TopN of zero keeps
// them all.
func rankOpportunities(results map[optionmodels.StockSymbol]*optionmodels.TickerScanResult, topN int) []*optionmodels.Opportunity {
	var accepted []*optionmodels.Opportunity

	for _, res := range results {
		for _, opp := range res.Opportunities {
			if opp.Quality != nil && opp.Quality.IsQuality {
				accepted = append(accepted, opp)
			}
		}
	}

	sort.Slice(accepted, func(i, j int) bool {
		return math.Abs(accepted[i].ForwardFactor) > math.Abs(accepted[j].ForwardFactor)
	})

	if topN > 0 && len(accepted) > topN {
		accepted = accepted[:topN]
	}

	return accepted
}
