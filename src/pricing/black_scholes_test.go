package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

func TestNormCDF(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		assert.InDelta(t, 0.5, NormCDF(0), 1e-7)
		assert.InDelta(t, 0.8413447, NormCDF(1), 1e-6)
		assert.InDelta(t, 0.9750021, NormCDF(1.96), 1e-6)
		assert.InDelta(t, 0.0249979, NormCDF(-1.96), 1e-6)
	})

	t.Run("symmetry", func(t *testing.T) {
		for _, x := range []float64{0.1, 0.75, 1.5, 2.33, 4.0} {
			assert.InDelta(t, 1, NormCDF(x)+NormCDF(-x), 1e-12)
		}
	})

	t.Run("tails", func(t *testing.T) {
		assert.InDelta(t, 1, NormCDF(8), 1e-9)
		assert.InDelta(t, 0, NormCDF(-8), 1e-9)
	})
}

func TestPrice(t *testing.T) {
	atm := Inputs{
		UnderlyingPrice: 100,
		Strike:          100,
		TimeToExpiry:    30.0 / 365.0,
		RiskFreeRate:    0.05,
		Volatility:      0.30,
	}

	t.Run("atm call thirty days", func(t *testing.T) {
		call, err := Price(atm, optionmodels.OptionTypeCall)
		assert.NoError(t, err)
		assert.InDelta(t, 3.63, call, 0.01)
	})

	t.Run("atm put thirty days", func(t *testing.T) {
		put, err := Price(atm, optionmodels.OptionTypePut)
		assert.NoError(t, err)
		assert.InDelta(t, 3.22, put, 0.01)
	})

	t.Run("put call parity", func(t *testing.T) {
		inputs := []Inputs{
			atm,
			{UnderlyingPrice: 100, Strike: 90, TimeToExpiry: 0.5, RiskFreeRate: 0.05, Volatility: 0.25},
			{UnderlyingPrice: 100, Strike: 120, TimeToExpiry: 1.0, RiskFreeRate: 0.03, DividendYield: 0.02, Volatility: 0.45},
			{UnderlyingPrice: 350, Strike: 340, TimeToExpiry: 7.0 / 365.0, RiskFreeRate: 0.05, DividendYield: 0.014, Volatility: 0.80},
		}

		for _, in := range inputs {
			call, err := Price(in, optionmodels.OptionTypeCall)
			assert.NoError(t, err)

			put, err := Price(in, optionmodels.OptionTypePut)
			assert.NoError(t, err)

			// call - put = S*exp(-qT) - K*exp(-rT)
			forward := in.UnderlyingPrice*math.Exp(-in.DividendYield*in.TimeToExpiry) - in.Strike*math.Exp(-in.RiskFreeRate*in.TimeToExpiry)
			assert.InDelta(t, forward, call-put, 1e-6)
		}
	})

	t.Run("expired prices at intrinsic", func(t *testing.T) {
		in := Inputs{UnderlyingPrice: 110, Strike: 100, TimeToExpiry: 0, Volatility: 0.30}

		call, err := Price(in, optionmodels.OptionTypeCall)
		assert.NoError(t, err)
		assert.Equal(t, 10.0, call)

		put, err := Price(in, optionmodels.OptionTypePut)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, put)
	})

	t.Run("dividend yield lowers the call", func(t *testing.T) {
		withDiv := atm
		withDiv.DividendYield = 0.03

		base, err := Price(atm, optionmodels.OptionTypeCall)
		assert.NoError(t, err)

		carried, err := Price(withDiv, optionmodels.OptionTypeCall)
		assert.NoError(t, err)

		assert.Less(t, carried, base)
	})

	t.Run("rejects non-positive underlying", func(t *testing.T) {
		in := atm
		in.UnderlyingPrice = 0

		_, err := Price(in, optionmodels.OptionTypeCall)
		assert.Error(t, err)
	})

	t.Run("rejects invalid option type", func(t *testing.T) {
		_, err := Price(atm, optionmodels.OptionType("butterfly"))
		assert.Error(t, err)
	})
}

func TestComputeGreeks(t *testing.T) {
	atm := Inputs{
		UnderlyingPrice: 100,
		Strike:          100,
		TimeToExpiry:    30.0 / 365.0,
		RiskFreeRate:    0.05,
		Volatility:      0.30,
	}

	t.Run("atm call delta near half", func(t *testing.T) {
		greeks, err := ComputeGreeks(atm, optionmodels.OptionTypeCall)
		assert.NoError(t, err)
		assert.InDelta(t, 0.54, greeks.Delta, 0.02)
		assert.Greater(t, greeks.Gamma, 0.0)
		assert.Less(t, greeks.Theta, 0.0)
		assert.Greater(t, greeks.Vega, 0.0)
		assert.Greater(t, greeks.Rho, 0.0)
	})

	t.Run("call and put gamma match", func(t *testing.T) {
		callGreeks, err := ComputeGreeks(atm, optionmodels.OptionTypeCall)
		assert.NoError(t, err)

		putGreeks, err := ComputeGreeks(atm, optionmodels.OptionTypePut)
		assert.NoError(t, err)

		assert.InDelta(t, callGreeks.Gamma, putGreeks.Gamma, 1e-12)
		assert.InDelta(t, callGreeks.Vega, putGreeks.Vega, 1e-12)
	})

	t.Run("delta parity", func(t *testing.T) {
		callGreeks, err := ComputeGreeks(atm, optionmodels.OptionTypeCall)
		assert.NoError(t, err)

		putGreeks, err := ComputeGreeks(atm, optionmodels.OptionTypePut)
		assert.NoError(t, err)

		// callDelta - putDelta = exp(-qT)
		assert.InDelta(t, 1.0, callGreeks.Delta-putGreeks.Delta, 1e-9)
	})

	t.Run("vega is per vol point", func(t *testing.T) {
		greeks, err := ComputeGreeks(atm, optionmodels.OptionTypeCall)
		assert.NoError(t, err)

		bumped := atm
		bumped.Volatility += 0.01

		base, err := Price(atm, optionmodels.OptionTypeCall)
		assert.NoError(t, err)

		moved, err := Price(bumped, optionmodels.OptionTypeCall)
		assert.NoError(t, err)

		assert.InDelta(t, moved-base, greeks.Vega, 1e-3)
	})

	t.Run("theta is per day", func(t *testing.T) {
		greeks, err := ComputeGreeks(atm, optionmodels.OptionTypeCall)
		assert.NoError(t, err)

		aged := atm
		aged.TimeToExpiry -= 1.0 / 365.0

		base, err := Price(atm, optionmodels.OptionTypeCall)
		assert.NoError(t, err)

		decayed, err := Price(aged, optionmodels.OptionTypeCall)
		assert.NoError(t, err)

		assert.InDelta(t, decayed-base, greeks.Theta, 2e-3)
	})

	t.Run("expired in the money call", func(t *testing.T) {
		in := Inputs{UnderlyingPrice: 120, Strike: 100, TimeToExpiry: 0, Volatility: 0.30}

		greeks, err := ComputeGreeks(in, optionmodels.OptionTypeCall)
		assert.NoError(t, err)
		assert.Equal(t, 1.0, greeks.Delta)
		assert.Equal(t, 0.0, greeks.Gamma)
	})
}

func TestStraddle(t *testing.T) {
	atm := Inputs{
		UnderlyingPrice: 100,
		Strike:          100,
		TimeToExpiry:    30.0 / 365.0,
		RiskFreeRate:    0.05,
		Volatility:      0.30,
	}

	t.Run("price is call plus put", func(t *testing.T) {
		quote, err := Straddle(atm)
		assert.NoError(t, err)

		call, err := Price(atm, optionmodels.OptionTypeCall)
		assert.NoError(t, err)

		put, err := Price(atm, optionmodels.OptionTypePut)
		assert.NoError(t, err)

		assert.InDelta(t, call+put, quote.Price, 1e-12)
	})

	t.Run("gamma and vega double up", func(t *testing.T) {
		quote, err := Straddle(atm)
		assert.NoError(t, err)

		callGreeks, err := ComputeGreeks(atm, optionmodels.OptionTypeCall)
		assert.NoError(t, err)

		assert.InDelta(t, 2*callGreeks.Gamma, quote.Greeks.Gamma, 1e-12)
		assert.InDelta(t, 2*callGreeks.Vega, quote.Greeks.Vega, 1e-12)
	})

	t.Run("expiry value is distance from strike", func(t *testing.T) {
		for _, s := range []float64{80, 95, 100, 107, 130} {
			in := Inputs{UnderlyingPrice: s, Strike: 100, TimeToExpiry: 0, Volatility: 0.30}

			quote, err := Straddle(in)
			assert.NoError(t, err)
			assert.InDelta(t, math.Abs(s-100), quote.Price, 1e-12)
		}
	})
}
