package pricing

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

const (
	ivInitialGuess  = 0.30
	ivPriceTol      = 1e-5
	ivMaxIterations = 100
	ivMinVol        = 0.001
	ivMaxVol        = 5.0
	ivMinVega       = 1e-10
)

// ImpliedVolatility inverts the pricing model with Newton-Raphson, seeded
// at 30% vol and iterating until the theoretical price lands within 1e-5 of
// the market price. The solver never gives up on a valid quote: when it
// runs out of iterations, or vega flattens out on a deep wing, it returns
// the last iterate as a best-effort estimate. The Volatility field on in is
// ignored.
func ImpliedVolatility(in Inputs, optionType optionmodels.OptionType, marketPrice float64) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, fmt.Errorf("ImpliedVolatility: %w", err)
	}

	if err := optionType.Validate(); err != nil {
		return 0, fmt.Errorf("ImpliedVolatility: %w", err)
	}

	if marketPrice <= 0 || math.IsNaN(marketPrice) || math.IsInf(marketPrice, 0) {
		return 0, fmt.Errorf("ImpliedVolatility: market price must be positive and finite, got %v", marketPrice)
	}

	if in.TimeToExpiry <= 0 {
		return 0, fmt.Errorf("ImpliedVolatility: option already expired")
	}

	sigma := ivInitialGuess

	for i := 0; i < ivMaxIterations; i++ {
		in.Volatility = sigma
		diff := price(in, optionType) - marketPrice

		if math.Abs(diff) < ivPriceTol {
			return sigma, nil
		}

		vega := rawVega(in)
		if vega < ivMinVega {
			// Flat vega means the next step would blow up. Keep the iterate.
			break
		}

		sigma -= diff / vega

		if sigma < ivMinVol {
			sigma = ivMinVol
		} else if sigma > ivMaxVol {
			sigma = ivMaxVol
		}
	}

	log.Debugf("ImpliedVolatility: no convergence for strike %.2f at price %.4f, keeping %.4f", in.Strike, marketPrice, sigma)

	return sigma, nil
}
