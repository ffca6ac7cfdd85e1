package optionmodels

import "time"

// PayoffPoint is the simulated P&L of a position at one underlying price
// and one point in time. PercentMove is the underlying's move from the
// entry price.
type PayoffPoint struct {
	UnderlyingPrice float64 `json:"underlying_price"`
	PercentMove     float64 `json:"percent_move"`
	PositionValue   float64 `json:"position_value"`
	PnL             float64 `json:"pnl"`
}

// PayoffCurve is a full price sweep at a fixed number of days remaining on
// the front leg. DaysToFrontExpiry of zero is the front-expiration curve.
type PayoffCurve struct {
	Label             string        `json:"label"` // e.g. "Current", "Front Expiration"
	DaysToFrontExpiry int           `json:"days_to_front_expiry"`
	Points            []PayoffPoint `json:"points"`
}

// PnLRange returns the lowest and highest P&L across the curve's sweep.
func (c *PayoffCurve) PnLRange() (float64, float64) {
	if len(c.Points) == 0 {
		return 0, 0
	}

	lo, hi := c.Points[0].PnL, c.Points[0].PnL

	for _, pt := range c.Points[1:] {
		if pt.PnL < lo {
			lo = pt.PnL
		}

		if pt.PnL > hi {
			hi = pt.PnL
		}
	}

	return lo, hi
}

// PnLAtEntryPrice returns the P&L at the grid midpoint, where the
// underlying has not moved.
func (c *PayoffCurve) PnLAtEntryPrice() float64 {
	if len(c.Points) == 0 {
		return 0
	}

	return c.Points[len(c.Points)/2].PnL
}

// PayoffAnalysis is the simulated economics of one calendar spread: entry
// cost, the time-lapse curves, and the summary risk numbers derived from
// the front-expiration curve.
type PayoffAnalysis struct {
	Ticker        StockSymbol   `json:"ticker"`
	Signal        Signal        `json:"signal"`
	Strike        float64       `json:"strike"`
	FrontDTE      int           `json:"front_dte"`
	BackDTE       int           `json:"back_dte"`
	NetCost       float64       `json:"net_cost"` // signed: negative when the position is opened for a credit
	MaxProfit     float64       `json:"max_profit"`
	MaxLoss       float64       `json:"max_loss"`
	BreakevenLow  float64       `json:"breakeven_low"`
	BreakevenHigh float64       `json:"breakeven_high"`
	ProfitProbPct float64       `json:"profit_prob_pct"`
	Greeks        Greeks        `json:"greeks"` // signed position greeks at entry
	Curves        []PayoffCurve `json:"curves"`
	GeneratedAt   time.Time     `json:"generated_at"`
}

// EntryDebit is the absolute capital at risk on entry.
func (a *PayoffAnalysis) EntryDebit() float64 {
	if a.NetCost < 0 {
		return -a.NetCost
	}

	return a.NetCost
}
