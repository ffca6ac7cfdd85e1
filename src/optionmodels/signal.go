package optionmodels

import "fmt"

// Signal is the trade direction implied by the forward factor: SELL means the
// front month is rich (sell front / buy back calendar), BUY means the front
// month is cheap (buy front / sell back, i.e. a reverse calendar).
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
)

func (s Signal) Validate() error {
	if s != SignalBuy && s != SignalSell {
		return fmt.Errorf("Signal: Validate: invalid signal: %s", s)
	}

	return nil
}

// SignalFromForwardFactor maps a non-zero forward factor to its trade
// direction. A zero forward factor means no candidate and returns ok=false.
func SignalFromForwardFactor(forwardFactor float64) (Signal, bool) {
	if forwardFactor > 0 {
		return SignalSell, true
	}

	if forwardFactor < 0 {
		return SignalBuy, true
	}

	return "", false
}
