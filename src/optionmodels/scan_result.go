package optionmodels

import (
	"time"

	"github.com/google/uuid"
)

// TickerScanResult is the outcome of scanning one symbol: the chain-wide
// context plus every expiration pair that produced a signal.
type TickerScanResult struct {
	Ticker          StockSymbol       `json:"ticker"`
	UnderlyingPrice float64           `json:"underlying_price"`
	PriceEstimated  bool              `json:"price_estimated"`
	Groups          []ExpirationGroup `json:"groups"`
	Opportunities   []*Opportunity    `json:"opportunities"`
	ScannedAt       time.Time         `json:"scanned_at"`
}

// BatchScanResult is a full multi-ticker run. Failed tickers are recorded
// and skipped rather than failing the batch.
type BatchScanResult struct {
	ScanID        uuid.UUID                         `json:"scan_id"`
	Results       map[StockSymbol]*TickerScanResult `json:"results"`
	Failed        map[StockSymbol]string            `json:"failed,omitempty"`
	Opportunities []*Opportunity                    `json:"opportunities"` // ranked across all tickers
	StartedAt     time.Time                         `json:"started_at"`
	FinishedAt    time.Time                         `json:"finished_at"`
}

func NewBatchScanResult() *BatchScanResult {
	return &BatchScanResult{
		ScanID:    uuid.New(),
		Results:   make(map[StockSymbol]*TickerScanResult),
		Failed:    make(map[StockSymbol]string),
		StartedAt: time.Now().UTC(),
	}
}
