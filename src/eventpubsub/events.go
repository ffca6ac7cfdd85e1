package eventpubsub

import (
	"time"

	"github.com/google/uuid"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

// ScanStarted announces a batch run before any ticker work begins.
// SpanContext carries the serialized trace context of the run so
// subscribers can link their own spans to it.
type ScanStarted struct {
	ScanID      uuid.UUID
	Tickers     []optionmodels.StockSymbol
	SpanContext []byte
	At          time.Time
}

// TickerScanned reports one finished ticker with its chain and candidate
// counts.
type TickerScanned struct {
	ScanID        uuid.UUID
	Ticker        optionmodels.StockSymbol
	Expirations   int
	Opportunities int
}

// TickerScanFailed reports a ticker that could not be scanned. Failures are
// isolated per ticker and never abort the batch.
type TickerScanFailed struct {
	ScanID uuid.UUID
	Ticker optionmodels.StockSymbol
	Reason string
}

type OpportunityFound struct {
	ScanID      uuid.UUID
	Opportunity *optionmodels.Opportunity
}

type ScanCompleted struct {
	ScanID   uuid.UUID
	Scanned  int
	Failed   int
	Signals  int
	Duration time.Duration
}

// Diagnostic is a structured breadcrumb from inside calculation code.
// Components publish these instead of printing; callers subscribe or
// ignore.
type Diagnostic struct {
	Source  string
	Message string
	Fields  map[string]interface{}
}
