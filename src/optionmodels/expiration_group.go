package optionmodels

import "time"

// ExpirationGroup aggregates one expiration's chain into the inputs the
// forward-volatility decomposition and liquidity scoring need. Groups are
// derived per scan and never persisted.
type ExpirationGroup struct {
	Expiration   time.Time `json:"expiration"`
	DTE          int       `json:"dte"`
	ATMStrike    float64   `json:"atm_strike"`
	ATMIV        float64   `json:"atm_iv"` // percent; 0 means undeterminable
	ATMCallOI    int64     `json:"atm_call_oi"`
	ATMPutOI     int64     `json:"atm_put_oi"`
	StraddleOI   int64     `json:"straddle_oi"`
	PutCallRatio float64   `json:"put_call_ratio"`
	Liquidity    int       `json:"liquidity"` // 1-10 tier
	TotalVolume  int64     `json:"total_volume"`
	Contracts    int       `json:"contracts"`
}

// HasUsableIV reports whether the group resolved an at-the-money implied
// volatility. Groups without one are excluded from pair evaluation.
func (g *ExpirationGroup) HasUsableIV() bool {
	return g.ATMIV > 0
}
