package optionmodels

import (
	"fmt"
	"time"
)

type FinancialEventType string

const (
	FinancialEventTypeEarnings FinancialEventType = "earnings"
	FinancialEventTypeDividend FinancialEventType = "dividend"
	FinancialEventTypeMacro    FinancialEventType = "macro"
)

func (t FinancialEventType) Validate() error {
	switch t {
	case FinancialEventTypeEarnings, FinancialEventTypeDividend, FinancialEventTypeMacro:
		return nil
	default:
		return fmt.Errorf("FinancialEventType.Validate: invalid event type: %s", t)
	}
}

// FinancialEvent is one dated item on a ticker's calendar. Macro events
// carry an empty ticker and apply to every symbol in a scan.
type FinancialEvent struct {
	Ticker      StockSymbol        `json:"ticker,omitempty"`
	EventType   FinancialEventType `json:"event_type"`
	Date        time.Time          `json:"date"`
	Description string             `json:"description,omitempty"`
}

// FinancialCalendar holds the scheduled events a scan consults when it
// decides whether a front expiration straddles an earnings report.
type FinancialCalendar struct {
	Events []FinancialEvent `json:"events"`
}

// NextEarnings returns the first earnings date for ticker at or after from,
// or false when none is scheduled.
func (c *FinancialCalendar) NextEarnings(ticker StockSymbol, from time.Time) (time.Time, bool) {
	var next time.Time
	found := false

	for _, ev := range c.Events {
		if ev.EventType != FinancialEventTypeEarnings {
			continue
		}

		if ev.Ticker != ticker {
			continue
		}

		if ev.Date.Before(from) {
			continue
		}

		if !found || ev.Date.Before(next) {
			next = ev.Date
			found = true
		}
	}

	return next, found
}

// HasEarningsBetween reports whether ticker reports earnings in [from, to].
func (c *FinancialCalendar) HasEarningsBetween(ticker StockSymbol, from, to time.Time) bool {
	next, found := c.NextEarnings(ticker, from)
	if !found {
		return false
	}

	return !next.After(to)
}
