package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

func TestImpliedVolatility(t *testing.T) {
	t.Run("round trips the pricing model", func(t *testing.T) {
		base := Inputs{
			UnderlyingPrice: 100,
			Strike:          100,
			TimeToExpiry:    30.0 / 365.0,
			RiskFreeRate:    0.05,
		}

		for _, sigma := range []float64{0.05, 0.15, 0.30, 0.60, 1.0, 2.0, 3.0} {
			in := base
			in.Volatility = sigma

			marketPrice, err := Price(in, optionmodels.OptionTypeCall)
			assert.NoError(t, err)

			solved, err := ImpliedVolatility(base, optionmodels.OptionTypeCall, marketPrice)
			assert.NoError(t, err)
			assert.InDelta(t, sigma, solved, 1e-3)
		}
	})

	t.Run("round trips away from the money", func(t *testing.T) {
		in := Inputs{
			UnderlyingPrice: 100,
			Strike:          120,
			TimeToExpiry:    0.25,
			RiskFreeRate:    0.05,
			DividendYield:   0.015,
			Volatility:      0.45,
		}

		marketPrice, err := Price(in, optionmodels.OptionTypePut)
		assert.NoError(t, err)

		unsolved := in
		unsolved.Volatility = 0

		solved, err := ImpliedVolatility(unsolved, optionmodels.OptionTypePut, marketPrice)
		assert.NoError(t, err)
		assert.InDelta(t, 0.45, solved, 1e-3)
	})

	t.Run("stays inside the vol bounds on junk prices", func(t *testing.T) {
		in := Inputs{
			UnderlyingPrice: 100,
			Strike:          100,
			TimeToExpiry:    30.0 / 365.0,
			RiskFreeRate:    0.05,
		}

		// Nearly the full underlying value: unreachable by any sane vol.
		solved, err := ImpliedVolatility(in, optionmodels.OptionTypeCall, 99.9)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, solved, 0.001)
		assert.LessOrEqual(t, solved, 5.0)

		// Below the intrinsic floor.
		deepITM := in
		deepITM.Strike = 50

		solved, err = ImpliedVolatility(deepITM, optionmodels.OptionTypeCall, 1.00)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, solved, 0.001)
		assert.LessOrEqual(t, solved, 5.0)
	})

	t.Run("rejects expired options", func(t *testing.T) {
		in := Inputs{UnderlyingPrice: 100, Strike: 100, TimeToExpiry: 0}

		_, err := ImpliedVolatility(in, optionmodels.OptionTypeCall, 2.50)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive market price", func(t *testing.T) {
		in := Inputs{UnderlyingPrice: 100, Strike: 100, TimeToExpiry: 0.25}

		_, err := ImpliedVolatility(in, optionmodels.OptionTypeCall, 0)
		assert.Error(t, err)
	})
}
