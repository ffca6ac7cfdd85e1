package payoff

import (
	"fmt"
	"math"
	"time"

	"github.com/jiaming2012/calendar-scanner/src/marketdata"
	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
	"github.com/jiaming2012/calendar-scanner/src/pricing"
)

const (
	// The grid walks 101 prices across +/-50% of the entry price, at five
	// time slices from entry to front expiration.
	gridPoints = 101
	gridSpan   = 0.5
)

// Config carries the calibrated knobs of the simulation. ProfitZonePct and
// BuyMoveCapture mirror the reference calibration: the breakeven band is a
// share of the back leg's remaining value, and a long front leg is assumed
// to capture 80% of its implied expected move at best.
type Config struct {
	RiskFreeRate   float64 `yaml:"risk_free_rate"`
	ProfitZonePct  float64 `yaml:"profit_zone_pct"`
	BuyMoveCapture float64 `yaml:"buy_move_capture"`
	BuyProbScale   float64 `yaml:"buy_prob_scale"`
}

func (c *Config) ApplyDefaults() {
	if c.RiskFreeRate <= 0 {
		c.RiskFreeRate = 0.05
	}

	if c.ProfitZonePct <= 0 {
		c.ProfitZonePct = 0.15
	}

	if c.BuyMoveCapture <= 0 {
		c.BuyMoveCapture = 0.8
	}

	if c.BuyProbScale <= 0 {
		c.BuyProbScale = 0.7
	}
}

type Generator struct {
	cfg Config
}

func NewGenerator(cfg Config) *Generator {
	cfg.ApplyDefaults()

	return &Generator{cfg: cfg}
}

// Generate simulates the calendar position implied by the opportunity's
// signal over price and time. underlyingPrice overrides the scan-time
// price when positive; zero falls back to the opportunity's own price and
// finally to the IV-bracket estimate. dividendYield is a decimal.
func (g *Generator) Generate(o *optionmodels.Opportunity, underlyingPrice, dividendYield float64) (*optionmodels.PayoffAnalysis, error) {
	if o.Ticker == "" {
		return nil, fmt.Errorf("Generator: Generate: ticker not set")
	}

	if !o.HasSignal() {
		return nil, fmt.Errorf("Generator: Generate: opportunity carries no signal")
	}

	if err := o.Signal.Validate(); err != nil {
		return nil, fmt.Errorf("Generator: Generate: %w", err)
	}

	if o.Front.DTE <= 0 || o.Back.DTE <= o.Front.DTE {
		return nil, fmt.Errorf("Generator: Generate: need 0 < front DTE < back DTE, got %d/%d", o.Front.DTE, o.Back.DTE)
	}

	if o.Front.ATMIV <= 0 || o.Back.ATMIV <= 0 {
		return nil, fmt.Errorf("Generator: Generate: both legs need a positive ATM IV, got %.2f/%.2f", o.Front.ATMIV, o.Back.ATMIV)
	}

	s0 := underlyingPrice
	if s0 <= 0 {
		s0 = o.UnderlyingPrice
	}

	if s0 <= 0 {
		s0 = marketdata.EstimateUnderlyingPrice((o.Front.ATMIV + o.Back.ATMIV) / 2)
	}

	// The position is struck at the money.
	strike := s0
	frontIV := o.Front.ATMIV / 100
	backIV := o.Back.ATMIV / 100

	frontEntry, err := pricing.Straddle(g.legInputs(s0, strike, float64(o.Front.DTE), frontIV, dividendYield))
	if err != nil {
		return nil, fmt.Errorf("Generator: Generate: front leg: %w", err)
	}

	backEntry, err := pricing.Straddle(g.legInputs(s0, strike, float64(o.Back.DTE), backIV, dividendYield))
	if err != nil {
		return nil, fmt.Errorf("Generator: Generate: back leg: %w", err)
	}

	// Net cost keeps its sign: negative means the position opens for a
	// credit. BUY is long front/short back, SELL the reverse.
	var rawNetCost float64
	if o.Signal == optionmodels.SignalBuy {
		rawNetCost = frontEntry.Price - backEntry.Price
	} else {
		rawNetCost = backEntry.Price - frontEntry.Price
	}

	curves, err := g.buildCurves(o, s0, strike, frontIV, backIV, dividendYield, rawNetCost)
	if err != nil {
		return nil, fmt.Errorf("Generator: Generate: %w", err)
	}

	// Back leg marked at the front expiration, at the strike: the anchor
	// for the profit heuristics below.
	backAtFrontExp, err := pricing.Straddle(g.legInputs(strike, strike, float64(o.Back.DTE-o.Front.DTE), backIV, dividendYield))
	if err != nil {
		return nil, fmt.Errorf("Generator: Generate: back leg at front expiration: %w", err)
	}

	maxLoss := math.Abs(rawNetCost)

	// Approximations by calibration, not curve optima. The BUY side
	// assumes the front leg captures a fixed share of its expected move.
	var maxProfit float64
	if o.Signal == optionmodels.SignalSell {
		maxProfit = backAtFrontExp.Price - maxLoss
	} else {
		expectedMove := s0 * frontIV * math.Sqrt(float64(o.Front.DTE)/365)
		maxProfit = g.cfg.BuyMoveCapture*expectedMove - maxLoss
	}

	zone := g.cfg.ProfitZonePct * backAtFrontExp.Price

	return &optionmodels.PayoffAnalysis{
		Ticker:        o.Ticker,
		Signal:        o.Signal,
		Strike:        strike,
		FrontDTE:      o.Front.DTE,
		BackDTE:       o.Back.DTE,
		NetCost:       rawNetCost,
		MaxProfit:     maxProfit,
		MaxLoss:       maxLoss,
		BreakevenLow:  strike - zone,
		BreakevenHigh: strike + zone,
		ProfitProbPct: g.profitProbability(o.Signal),
		Greeks:        positionGreeks(o.Signal, frontEntry.Greeks, backEntry.Greeks),
		Curves:        curves,
		GeneratedAt:   time.Now().UTC(),
	}, nil
}

func (g *Generator) legInputs(s, strike, dte, iv, dividendYield float64) pricing.Inputs {
	return pricing.Inputs{
		UnderlyingPrice: s,
		Strike:          strike,
		TimeToExpiry:    dte / 365,
		RiskFreeRate:    g.cfg.RiskFreeRate,
		DividendYield:   dividendYield,
		Volatility:      iv,
	}
}

func (g *Generator) buildCurves(o *optionmodels.Opportunity, s0, strike, frontIV, backIV, dividendYield, rawNetCost float64) ([]optionmodels.PayoffCurve, error) {
	checkpoints := []struct {
		label     string
		remaining float64 // fraction of front DTE still on the clock
	}{
		{"Current", 1.0},
		{"25% to Front Exp", 0.75},
		{"50% to Front Exp", 0.50},
		{"75% to Front Exp", 0.25},
		{"Front Expiration", 0.0},
	}

	step := s0 * (2 * gridSpan) / float64(gridPoints-1)
	curves := make([]optionmodels.PayoffCurve, 0, len(checkpoints))

	for _, cp := range checkpoints {
		remainingFront := float64(o.Front.DTE) * cp.remaining
		elapsed := float64(o.Front.DTE) - remainingFront
		remainingBack := float64(o.Back.DTE) - elapsed

		curve := optionmodels.PayoffCurve{
			Label:             cp.label,
			DaysToFrontExpiry: int(math.Round(remainingFront)),
			Points:            make([]optionmodels.PayoffPoint, 0, gridPoints),
		}

		for i := 0; i < gridPoints; i++ {
			s := s0*(1-gridSpan) + float64(i)*step

			front, err := pricing.Straddle(g.legInputs(s, strike, remainingFront, frontIV, dividendYield))
			if err != nil {
				return nil, fmt.Errorf("buildCurves: front leg at %.2f: %w", s, err)
			}

			var backValue float64
			if remainingBack > 0 {
				back, err := pricing.Straddle(g.legInputs(s, strike, remainingBack, backIV, dividendYield))
				if err != nil {
					return nil, fmt.Errorf("buildCurves: back leg at %.2f: %w", s, err)
				}

				backValue = back.Price
			}

			var positionValue float64
			if o.Signal == optionmodels.SignalBuy {
				positionValue = front.Price - backValue
			} else {
				positionValue = backValue - front.Price
			}

			curve.Points = append(curve.Points, optionmodels.PayoffPoint{
				UnderlyingPrice: s,
				PercentMove:     (s - s0) / s0 * 100,
				PositionValue:   positionValue,
				PnL:             positionValue - rawNetCost,
			})
		}

		curves = append(curves, curve)
	}

	return curves, nil
}

// profitProbability is the mass of a standard normal inside (SELL) or
// outside (BUY, haircut) a one-sigma band around the strike, clipped to
// [10, 90].
func (g *Generator) profitProbability(signal optionmodels.Signal) float64 {
	inside := pricing.NormCDF(1) - pricing.NormCDF(-1)

	var prob float64
	if signal == optionmodels.SignalSell {
		prob = inside * 100
	} else {
		prob = (1 - inside) * g.cfg.BuyProbScale * 100
	}

	if prob < 10 {
		prob = 10
	}

	if prob > 90 {
		prob = 90
	}

	return prob
}

func positionGreeks(signal optionmodels.Signal, front, back optionmodels.Greeks) optionmodels.Greeks {
	if signal == optionmodels.SignalBuy {
		return front.Add(back.Scale(-1))
	}

	return back.Add(front.Scale(-1))
}
