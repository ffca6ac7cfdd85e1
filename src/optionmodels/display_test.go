package optionmodels

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDisplayStrings(t *testing.T) {
	front := ExpirationGroup{
		Expiration: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		DTE:        30,
		ATMStrike:  100,
		ATMIV:      50,
		StraddleOI: 1200,
		Liquidity:  8,
	}

	back := ExpirationGroup{
		Expiration: time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		DTE:        90,
		ATMStrike:  100,
		ATMIV:      35,
		StraddleOI: 1000,
		Liquidity:  7,
	}

	t.Run("ticker result renders the term structure", func(t *testing.T) {
		result := &TickerScanResult{
			Ticker:          "AAPL",
			UnderlyingPrice: 100,
			PriceEstimated:  true,
			Groups:          []ExpirationGroup{front, back},
		}

		out := result.String()

		assert.Contains(t, out, "AAPL term structure")
		assert.Contains(t, out, "(estimated)")
		assert.Contains(t, out, "2026-03-20")
		assert.Contains(t, out, "IV 50.0%")
		assert.Contains(t, out, "straddle OI 1,200")
	})

	t.Run("batch result renders the ranking", func(t *testing.T) {
		ivr := 82.0
		result := &BatchScanResult{
			ScanID:  uuid.New(),
			Results: map[StockSymbol]*TickerScanResult{"AAPL": {Ticker: "AAPL"}},
			Failed:  map[StockSymbol]string{"ZYX": "quote feed offline"},
			Opportunities: []*Opportunity{
				{
					Ticker:        "AAPL",
					Front:         front,
					Back:          back,
					ForwardVol:    24.24,
					ForwardFactor: 106.28,
					Signal:        SignalSell,
					EarningsSoon:  true,
					IVRank:        &ivr,
					Quality:       &QualityVerdict{Rating: 10, IsQuality: true, WinProbPct: 76.5},
				},
			},
		}

		out := result.String()

		assert.Contains(t, out, "1 scanned, 1 failed, 1 ranked")
		assert.Contains(t, out, "SELL 106.3%")
		assert.Contains(t, out, "rating 10/10")
		assert.Contains(t, out, "earnings, IVR 82")
	})

	t.Run("payoff analysis renders curves and summary", func(t *testing.T) {
		analysis := &PayoffAnalysis{
			Ticker:        "AAPL",
			Signal:        SignalSell,
			Strike:        100,
			FrontDTE:      30,
			BackDTE:       90,
			NetCost:       1.03,
			MaxProfit:     3.40,
			MaxLoss:       1.03,
			BreakevenLow:  94.40,
			BreakevenHigh: 105.60,
			ProfitProbPct: 68.27,
			Greeks:        Greeks{Delta: 0.001, Vega: 9.31, Theta: -2.05},
			Curves: []PayoffCurve{
				{Label: "Current", DaysToFrontExpiry: 30, Points: []PayoffPoint{
					{UnderlyingPrice: 50, PnL: -1.0},
					{UnderlyingPrice: 100, PnL: 0},
					{UnderlyingPrice: 150, PnL: -0.8},
				}},
			},
		}

		out := analysis.String()

		assert.Contains(t, out, "AAPL SELL calendar @ strike $100.00")
		assert.Contains(t, out, "Current")
		assert.Contains(t, out, "30d left")
		assert.Contains(t, out, "worst $-1.00")
		assert.Contains(t, out, "entry debit $1.03")
		assert.Contains(t, out, "breakevens $94.40 to $105.60")
	})
}
