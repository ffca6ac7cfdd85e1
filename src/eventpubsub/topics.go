package eventpubsub

const (
	ScanStartedEvent      = "ScanStartedEvent"
	TickerScannedEvent    = "TickerScannedEvent"
	TickerScanFailedEvent = "TickerScanFailedEvent"
	OpportunityFoundEvent = "OpportunityFoundEvent"
	ScanCompletedEvent    = "ScanCompletedEvent"
	DiagnosticEvent       = "DiagnosticEvent"
	Error                 = "DefaultError"
)
