package scanner

import (
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/calendar-scanner/src/eventpubsub"
	"github.com/jiaming2012/calendar-scanner/src/liquidity"
	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

// GroupByExpiration folds a raw chain into per-expiration groups sorted by
// expiry, dropping expirations that cannot support a decomposition: already
// expired, fewer than minContracts quotes, or no resolvable ATM IV.
// Exclusions are diagnostics, not errors; a sparse chain is normal data.
func GroupByExpiration(ticker optionmodels.StockSymbol, quotes []*optionmodels.OptionQuote, underlyingPrice float64, minContracts int, now time.Time) []optionmodels.ExpirationGroup {
	if minContracts <= 0 {
		minContracts = 3
	}

	byExpiry := make(map[string][]*optionmodels.OptionQuote)
	for _, q := range quotes {
		key := q.Expiration.Format("2006-01-02")
		byExpiry[key] = append(byExpiry[key], q)
	}

	groups := make([]optionmodels.ExpirationGroup, 0, len(byExpiry))

	for _, chain := range byExpiry {
		group, ok := buildGroup(ticker, chain, underlyingPrice, minContracts, now)
		if !ok {
			continue
		}

		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Expiration.Before(groups[j].Expiration)
	})

	return groups
}

func buildGroup(ticker optionmodels.StockSymbol, chain []*optionmodels.OptionQuote, underlyingPrice float64, minContracts int, now time.Time) (optionmodels.ExpirationGroup, bool) {
	expiration := chain[0].Expiration

	if len(chain) < minContracts {
		excludeGroup(ticker, expiration, fmt.Sprintf("%d contracts, need at least %d", len(chain), minContracts))
		return optionmodels.ExpirationGroup{}, false
	}

	dte := chain[0].DTE(now)
	if dte <= 0 {
		excludeGroup(ticker, expiration, "already expired")
		return optionmodels.ExpirationGroup{}, false
	}

	metrics, err := liquidity.ComputeStrikeMetrics(chain, underlyingPrice)
	if err != nil {
		excludeGroup(ticker, expiration, err.Error())
		return optionmodels.ExpirationGroup{}, false
	}

	atmIV := atmImpliedVol(chain, metrics.ATMStrike)
	if atmIV <= 0 {
		excludeGroup(ticker, expiration, "no resolvable ATM IV")
		return optionmodels.ExpirationGroup{}, false
	}

	var totalVolume int64
	for _, q := range chain {
		totalVolume += q.Volume
	}

	return optionmodels.ExpirationGroup{
		Expiration:   expiration,
		DTE:          dte,
		ATMStrike:    metrics.ATMStrike,
		ATMIV:        atmIV,
		ATMCallOI:    metrics.ATMCallOI,
		ATMPutOI:     metrics.ATMPutOI,
		StraddleOI:   metrics.StraddleOI,
		PutCallRatio: metrics.PutCallRatio,
		Liquidity:    metrics.Tier,
		TotalVolume:  totalVolume,
		Contracts:    len(chain),
	}, true
}

// atmImpliedVol averages the quoted vols at the ATM strike and converts to
// percent. Zero means no contract at the strike carried a usable IV.
func atmImpliedVol(chain []*optionmodels.OptionQuote, atmStrike float64) float64 {
	ivs := make([]float64, 0, 2)

	for _, q := range chain {
		if q.Strike != atmStrike || q.ImpliedVol == nil || *q.ImpliedVol <= 0 {
			continue
		}

		ivs = append(ivs, *q.ImpliedVol)
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

func excludeGroup(ticker optionmodels.StockSymbol, expiration time.Time, reason string) {
	date := expiration.Format("2006-01-02")

	log.Debugf("%s: excluding expiration %s: %s", ticker, date, reason)

	eventpubsub.Publish("OptionScanner", eventpubsub.DiagnosticEvent, eventpubsub.Diagnostic{
		Source:  "scanner",
		Message: "expiration excluded",
		Fields: map[string]interface{}{
			"ticker":     string(ticker),
			"expiration": date,
			"reason":     reason,
		},
	})
}
