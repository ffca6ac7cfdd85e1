package optionmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptionQuoteValidate(t *testing.T) {
	expiration := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	t.Run("valid quote", func(t *testing.T) {
		iv := 32.5
		q := OptionQuote{
			Underlying: NewStockSymbol("aapl"),
			Strike:     180,
			Expiration: expiration,
			OptionType: OptionTypeCall,
			ImpliedVol: &iv,
		}

		assert.NoError(t, q.Validate())
		assert.Equal(t, StockSymbol("AAPL"), q.Underlying)
	})

	t.Run("missing strike", func(t *testing.T) {
		q := OptionQuote{
			Underlying: NewStockSymbol("aapl"),
			Expiration: expiration,
			OptionType: OptionTypePut,
		}

		assert.Error(t, q.Validate())
	})

	t.Run("invalid option type", func(t *testing.T) {
		q := OptionQuote{
			Underlying: NewStockSymbol("aapl"),
			Strike:     180,
			Expiration: expiration,
			OptionType: OptionType("straddle"),
		}

		assert.Error(t, q.Validate())
	})
}

func TestOptionQuoteMidPrice(t *testing.T) {
	t.Run("mid of bid and ask", func(t *testing.T) {
		bid := 2.40
		ask := 2.60
		q := OptionQuote{Bid: &bid, Ask: &ask}

		mid, ok := q.MidPrice()
		assert.True(t, ok)
		assert.InDelta(t, 2.50, mid, 1e-9)
	})

	t.Run("missing ask falls back to bid", func(t *testing.T) {
		bid := 2.40
		q := OptionQuote{Bid: &bid}

		mid, ok := q.MidPrice()
		assert.True(t, ok)
		assert.InDelta(t, 2.40, mid, 1e-9)
	})

	t.Run("zero bid and ask", func(t *testing.T) {
		bid := 0.0
		ask := 0.0
		q := OptionQuote{Bid: &bid, Ask: &ask}

		_, ok := q.MidPrice()
		assert.False(t, ok)
	})
}

func TestOptionQuoteDTE(t *testing.T) {
	now := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)

	t.Run("thirty days out", func(t *testing.T) {
		q := OptionQuote{Expiration: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)}
		assert.Equal(t, 30, q.DTE(now))
	})

	t.Run("expired goes negative", func(t *testing.T) {
		q := OptionQuote{Expiration: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)}
		assert.Equal(t, -6, q.DTE(now))
	})
}

func TestSignalFromForwardFactor(t *testing.T) {
	t.Run("positive factor sells front vol", func(t *testing.T) {
		signal, ok := SignalFromForwardFactor(35.2)
		assert.True(t, ok)
		assert.Equal(t, SignalSell, signal)
	})

	t.Run("negative factor buys front vol", func(t *testing.T) {
		signal, ok := SignalFromForwardFactor(-12.8)
		assert.True(t, ok)
		assert.Equal(t, SignalBuy, signal)
	})

	t.Run("zero factor has no signal", func(t *testing.T) {
		_, ok := SignalFromForwardFactor(0)
		assert.False(t, ok)
	})
}

func TestFinancialCalendarNextEarnings(t *testing.T) {
	calendar := FinancialCalendar{
		Events: []FinancialEvent{
			{Ticker: "AAPL", EventType: FinancialEventTypeEarnings, Date: time.Date(2026, 10, 29, 0, 0, 0, 0, time.UTC)},
			{Ticker: "AAPL", EventType: FinancialEventTypeEarnings, Date: time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)},
			{Ticker: "AAPL", EventType: FinancialEventTypeDividend, Date: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)},
			{Ticker: "MSFT", EventType: FinancialEventTypeEarnings, Date: time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)},
		},
	}

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("earliest upcoming earnings", func(t *testing.T) {
		next, found := calendar.NextEarnings("AAPL", from)
		assert.True(t, found)
		assert.Equal(t, time.Date(2026, 10, 29, 0, 0, 0, 0, time.UTC), next)
	})

	t.Run("dividends are not earnings", func(t *testing.T) {
		next, found := calendar.NextEarnings("MSFT", from)
		assert.True(t, found)
		assert.Equal(t, time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), next)
	})

	t.Run("no earnings scheduled", func(t *testing.T) {
		_, found := calendar.NextEarnings("TSLA", from)
		assert.False(t, found)
	})

	t.Run("earnings inside window", func(t *testing.T) {
		to := time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC)
		assert.True(t, calendar.HasEarningsBetween("AAPL", from, to))
		assert.False(t, calendar.HasEarningsBetween("AAPL", from, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))
	})
}

func TestOptionQuoteDTOToModel(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		dto := OptionQuoteDTO{
			Underlying:   "aapl",
			Strike:       180,
			Expiration:   "2026-10-16",
			OptionType:   "call",
			ImpliedVol:   "32.5",
			Delta:        "0.52",
			Gamma:        "0.031",
			Theta:        "-0.045",
			Vega:         "0.21",
			Rho:          "0.08",
			Bid:          "2.40",
			Ask:          "2.60",
			OpenInterest: 1500,
			Volume:       320,
		}

		q, err := dto.ToModel()
		assert.NoError(t, err)
		assert.Equal(t, StockSymbol("AAPL"), q.Underlying)
		assert.Equal(t, OptionTypeCall, q.OptionType)
		assert.NotNil(t, q.ImpliedVol)
		assert.InDelta(t, 32.5, *q.ImpliedVol, 1e-9)
		assert.NotNil(t, q.Greeks)
		assert.InDelta(t, 0.52, q.Greeks.Delta, 1e-9)
		assert.Equal(t, int64(1500), q.OpenInterest)
	})

	t.Run("missing optional columns", func(t *testing.T) {
		dto := OptionQuoteDTO{
			Underlying: "spy",
			Strike:     450,
			Expiration: "2026-11-20",
			OptionType: "put",
		}

		q, err := dto.ToModel()
		assert.NoError(t, err)
		assert.Nil(t, q.ImpliedVol)
		assert.Nil(t, q.Greeks)
		assert.Nil(t, q.Bid)
	})

	t.Run("bad expiration", func(t *testing.T) {
		dto := OptionQuoteDTO{
			Underlying: "spy",
			Strike:     450,
			Expiration: "11/20/2026",
			OptionType: "put",
		}

		_, err := dto.ToModel()
		assert.Error(t, err)
	})
}
