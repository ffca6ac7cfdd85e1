package pricing

import (
	"fmt"
	"math"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

// Inputs are the Black-Scholes parameters for a single European option on a
// dividend-paying underlying. Volatility and DividendYield are decimals
// (0.30 means 30%), TimeToExpiry is in years.
type Inputs struct {
	UnderlyingPrice float64
	Strike          float64
	TimeToExpiry    float64
	RiskFreeRate    float64
	DividendYield   float64
	Volatility      float64
}

func (in Inputs) Validate() error {
	if in.UnderlyingPrice <= 0 || math.IsNaN(in.UnderlyingPrice) || math.IsInf(in.UnderlyingPrice, 0) {
		return fmt.Errorf("Inputs: Validate: underlying price must be positive and finite, got %v", in.UnderlyingPrice)
	}

	if in.Strike <= 0 || math.IsNaN(in.Strike) || math.IsInf(in.Strike, 0) {
		return fmt.Errorf("Inputs: Validate: strike must be positive and finite, got %v", in.Strike)
	}

	if in.Volatility < 0 || math.IsNaN(in.Volatility) {
		return fmt.Errorf("Inputs: Validate: volatility must be non-negative, got %v", in.Volatility)
	}

	if math.IsNaN(in.TimeToExpiry) || math.IsInf(in.TimeToExpiry, 0) {
		return fmt.Errorf("Inputs: Validate: time to expiry must be finite, got %v", in.TimeToExpiry)
	}

	return nil
}

// Zelen & Severo rational polynomial approximation of the standard normal
// CDF (Abramowitz & Stegun 26.2.17). Absolute error stays below 7.5e-8
// across the real line, which keeps solved vols stable well past the
// tolerance the implied-vol solver works to.
const (
	cdfP  = 0.2316419
	cdfB1 = 0.319381530
	cdfB2 = -0.356563782
	cdfB3 = 1.781477937
	cdfB4 = -1.821255978
	cdfB5 = 1.330274429
)

// NormCDF returns P(Z <= x) for a standard normal Z.
// For x >= 0: N(x) = 1 - phi(x) * (b1*t + b2*t^2 + b3*t^3 + b4*t^4 + b5*t^5)
// with t = 1 / (1 + p*x); negative x uses the symmetry N(x) = 1 - N(-x).
func NormCDF(x float64) float64 {
	if x < 0 {
		return 1 - NormCDF(-x)
	}

	t := 1 / (1 + cdfP*x)
	poly := t * (cdfB1 + t*(cdfB2+t*(cdfB3+t*(cdfB4+t*cdfB5))))

	return 1 - normPDF(x)*poly
}

// normPDF returns the standard normal density at x.
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// d1 = (ln(S/K) + (r - q + 0.5*v^2)*T) / (v*sqrt(T)), d2 = d1 - v*sqrt(T)
func d1d2(in Inputs) (float64, float64) {
	volSqrtT := in.Volatility * math.Sqrt(in.TimeToExpiry)
	d1 := (math.Log(in.UnderlyingPrice/in.Strike) + (in.RiskFreeRate-in.DividendYield+0.5*in.Volatility*in.Volatility)*in.TimeToExpiry) / volSqrtT
	return d1, d1 - volSqrtT
}

func intrinsic(in Inputs, optionType optionmodels.OptionType) float64 {
	if optionType == optionmodels.OptionTypeCall {
		return math.Max(0, in.UnderlyingPrice-in.Strike)
	}

	return math.Max(0, in.Strike-in.UnderlyingPrice)
}

// Price returns the Black-Scholes value of a European option. Expired
// inputs price at intrinsic value rather than erroring so that payoff
// sweeps can walk straight through expiration.
func Price(in Inputs, optionType optionmodels.OptionType) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, fmt.Errorf("Price: %w", err)
	}

	if err := optionType.Validate(); err != nil {
		return 0, fmt.Errorf("Price: %w", err)
	}

	return price(in, optionType), nil
}

func price(in Inputs, optionType optionmodels.OptionType) float64 {
	if in.TimeToExpiry <= 0 {
		return intrinsic(in, optionType)
	}

	discS := in.UnderlyingPrice * math.Exp(-in.DividendYield*in.TimeToExpiry)
	discK := in.Strike * math.Exp(-in.RiskFreeRate*in.TimeToExpiry)

	// Zero vol collapses to the discounted forward intrinsic.
	if in.Volatility <= 0 {
		if optionType == optionmodels.OptionTypeCall {
			return math.Max(0, discS-discK)
		}

		return math.Max(0, discK-discS)
	}

	d1, d2 := d1d2(in)

	// Call = S*exp(-qT)*N(d1) - K*exp(-rT)*N(d2)
	// Put  = K*exp(-rT)*N(-d2) - S*exp(-qT)*N(-d1)
	if optionType == optionmodels.OptionTypeCall {
		return discS*NormCDF(d1) - discK*NormCDF(d2)
	}

	return discK*NormCDF(-d2) - discS*NormCDF(-d1)
}

// ComputeGreeks returns the option's sensitivities in reporting
// conventions: theta is decay per calendar day, vega is per one volatility
// point, rho is per one percentage point of rate.
func ComputeGreeks(in Inputs, optionType optionmodels.OptionType) (optionmodels.Greeks, error) {
	if err := in.Validate(); err != nil {
		return optionmodels.Greeks{}, fmt.Errorf("ComputeGreeks: %w", err)
	}

	if err := optionType.Validate(); err != nil {
		return optionmodels.Greeks{}, fmt.Errorf("ComputeGreeks: %w", err)
	}

	return computeGreeks(in, optionType), nil
}

func computeGreeks(in Inputs, optionType optionmodels.OptionType) optionmodels.Greeks {
	if in.TimeToExpiry <= 0 || in.Volatility <= 0 {
		return expiryGreeks(in, optionType)
	}

	d1, d2 := d1d2(in)

	discQ := math.Exp(-in.DividendYield * in.TimeToExpiry)
	discR := math.Exp(-in.RiskFreeRate * in.TimeToExpiry)
	sqrtT := math.Sqrt(in.TimeToExpiry)

	var delta float64
	if optionType == optionmodels.OptionTypeCall {
		delta = discQ * NormCDF(d1)
	} else {
		delta = discQ * (NormCDF(d1) - 1)
	}

	gamma := discQ * normPDF(d1) / (in.UnderlyingPrice * in.Volatility * sqrtT)

	// Theta per calendar day: shared decay term plus the carry legs.
	decay := -(in.UnderlyingPrice * discQ * normPDF(d1) * in.Volatility) / (2 * sqrtT)

	var theta float64
	if optionType == optionmodels.OptionTypeCall {
		theta = (decay - in.RiskFreeRate*in.Strike*discR*NormCDF(d2) + in.DividendYield*in.UnderlyingPrice*discQ*NormCDF(d1)) / 365
	} else {
		theta = (decay + in.RiskFreeRate*in.Strike*discR*NormCDF(-d2) - in.DividendYield*in.UnderlyingPrice*discQ*NormCDF(-d1)) / 365
	}

	vega := rawVega(in) / 100

	var rho float64
	if optionType == optionmodels.OptionTypeCall {
		rho = in.Strike * in.TimeToExpiry * discR * NormCDF(d2) / 100
	} else {
		rho = -in.Strike * in.TimeToExpiry * discR * NormCDF(-d2) / 100
	}

	return optionmodels.Greeks{
		Delta: delta,
		Gamma: gamma,
		Theta: theta,
		Vega:  vega,
		Rho:   rho,
	}
}

// expiryGreeks degrades to intrinsic-style deltas when time or vol has run
// out; the second-order exposures are gone at that point.
func expiryGreeks(in Inputs, optionType optionmodels.OptionType) optionmodels.Greeks {
	var delta float64

	switch {
	case in.UnderlyingPrice > in.Strike:
		if optionType == optionmodels.OptionTypeCall {
			delta = 1
		}
	case in.UnderlyingPrice < in.Strike:
		if optionType == optionmodels.OptionTypePut {
			delta = -1
		}
	default:
		if optionType == optionmodels.OptionTypeCall {
			delta = 0.5
		} else {
			delta = -0.5
		}
	}

	return optionmodels.Greeks{Delta: delta}
}

// rawVega is dPrice/dSigma with sigma in decimals: S*exp(-qT)*phi(d1)*sqrt(T).
// The implied-vol solver divides by this directly; reported vega scales it
// down to a one-point move.
func rawVega(in Inputs) float64 {
	if in.TimeToExpiry <= 0 || in.Volatility <= 0 {
		return 0
	}

	d1, _ := d1d2(in)

	return in.UnderlyingPrice * math.Exp(-in.DividendYield*in.TimeToExpiry) * normPDF(d1) * math.Sqrt(in.TimeToExpiry)
}

// StraddleQuote is the combined value and sensitivities of a same-strike
// call plus put.
type StraddleQuote struct {
	Price  float64
	Greeks optionmodels.Greeks
}

// Straddle prices both legs at the same strike and expiry and sums their
// exposures. At expiry the straddle is worth |S - K|.
func Straddle(in Inputs) (StraddleQuote, error) {
	if err := in.Validate(); err != nil {
		return StraddleQuote{}, fmt.Errorf("Straddle: %w", err)
	}

	return straddle(in), nil
}

func straddle(in Inputs) StraddleQuote {
	call := price(in, optionmodels.OptionTypeCall)
	put := price(in, optionmodels.OptionTypePut)

	callGreeks := computeGreeks(in, optionmodels.OptionTypeCall)
	putGreeks := computeGreeks(in, optionmodels.OptionTypePut)

	return StraddleQuote{
		Price:  call + put,
		Greeks: callGreeks.Add(putGreeks),
	}
}
