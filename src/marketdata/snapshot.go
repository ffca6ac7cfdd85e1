package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

// SnapshotProvider serves scans from a directory of CSV exports, the format
// the fetch tooling writes:
//
//	<dir>/<TICKER>.csv          option chain rows, one contract per line
//	<dir>/underlying_prices.csv ticker,price
//	<dir>/fundamentals.csv      ticker,dividend_yield,iv_rank,next_earnings
//	<dir>/calendar.csv          ticker,event_type,date,description
//
// Everything except the chain files is optional.
type SnapshotProvider struct {
	dir string
}

func NewSnapshotProvider(dir string) (*SnapshotProvider, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("NewSnapshotProvider: failed to stat %s: %w", dir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("NewSnapshotProvider: %s is not a directory", dir)
	}

	return &SnapshotProvider{dir: dir}, nil
}

func (p *SnapshotProvider) OptionChain(ctx context.Context, ticker optionmodels.StockSymbol) ([]*optionmodels.OptionQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("SnapshotProvider: OptionChain: %w", err)
	}

	path := filepath.Join(p.dir, fmt.Sprintf("%s.csv", ticker.String()))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("SnapshotProvider: OptionChain: failed to open snapshot for %s: %w", ticker, err)
	}

	defer f.Close()

	var dtos []optionmodels.OptionQuoteDTO
	if err := gocsv.UnmarshalFile(f, &dtos); err != nil {
		return nil, fmt.Errorf("SnapshotProvider: OptionChain: failed to unmarshal %s: %w", path, err)
	}

	quotes := make([]*optionmodels.OptionQuote, 0, len(dtos))
	for i, dto := range dtos {
		quote, err := dto.ToModel()
		if err != nil {
			// One malformed row should not discard the whole chain.
			log.Warnf("SnapshotProvider: OptionChain: skipping row %d of %s: %v", i+2, path, err)
			continue
		}

		quotes = append(quotes, quote)
	}

	return quotes, nil
}

type underlyingPriceDTO struct {
	Ticker string  `csv:"ticker"`
	Price  float64 `csv:"price"`
}

func (p *SnapshotProvider) UnderlyingPrice(ctx context.Context, ticker optionmodels.StockSymbol) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("SnapshotProvider: UnderlyingPrice: %w", err)
	}

	path := filepath.Join(p.dir, "underlying_prices.csv")

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}

		return 0, fmt.Errorf("SnapshotProvider: UnderlyingPrice: failed to open %s: %w", path, err)
	}

	defer f.Close()

	var dtos []underlyingPriceDTO
	if err := gocsv.UnmarshalFile(f, &dtos); err != nil {
		return 0, fmt.Errorf("SnapshotProvider: UnderlyingPrice: failed to unmarshal %s: %w", path, err)
	}

	for _, dto := range dtos {
		if optionmodels.NewStockSymbol(dto.Ticker) == ticker {
			return dto.Price, nil
		}
	}

	return 0, nil
}

type fundamentalsDTO struct {
	Ticker        string `csv:"ticker"`
	DividendYield string `csv:"dividend_yield"`
	IVRank        string `csv:"iv_rank"`
	NextEarnings  string `csv:"next_earnings"`
}

func (dto *fundamentalsDTO) toModel() (*optionmodels.TickerFundamentals, error) {
	f := &optionmodels.TickerFundamentals{Ticker: optionmodels.NewStockSymbol(dto.Ticker)}

	if dto.DividendYield != "" {
		var v float64
		if _, err := fmt.Sscanf(dto.DividendYield, "%f", &v); err != nil {
			return nil, fmt.Errorf("invalid dividend_yield %q: %w", dto.DividendYield, err)
		}

		f.DividendYield = &v
	}

	if dto.IVRank != "" {
		var v float64
		if _, err := fmt.Sscanf(dto.IVRank, "%f", &v); err != nil {
			return nil, fmt.Errorf("invalid iv_rank %q: %w", dto.IVRank, err)
		}

		f.IVRank = &v
	}

	if dto.NextEarnings != "" {
		d, err := time.Parse("2006-01-02", dto.NextEarnings)
		if err != nil {
			return nil, fmt.Errorf("invalid next_earnings %q: %w", dto.NextEarnings, err)
		}

		f.NextEarnings = &d
	}

	return f, nil
}

func (p *SnapshotProvider) Fundamentals(ctx context.Context, ticker optionmodels.StockSymbol) (*optionmodels.TickerFundamentals, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("SnapshotProvider: Fundamentals: %w", err)
	}

	path := filepath.Join(p.dir, "fundamentals.csv")

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("SnapshotProvider: Fundamentals: failed to open %s: %w", path, err)
	}

	defer f.Close()

	var dtos []fundamentalsDTO
	if err := gocsv.UnmarshalFile(f, &dtos); err != nil {
		return nil, fmt.Errorf("SnapshotProvider: Fundamentals: failed to unmarshal %s: %w", path, err)
	}

	for _, dto := range dtos {
		if optionmodels.NewStockSymbol(dto.Ticker) != ticker {
			continue
		}

		model, err := dto.toModel()
		if err != nil {
			return nil, fmt.Errorf("SnapshotProvider: Fundamentals: row for %s: %w", ticker, err)
		}

		return model, nil
	}

	return nil, nil
}

type financialEventDTO struct {
	Ticker      string `csv:"ticker"`
	EventType   string `csv:"event_type"`
	Date        string `csv:"date"`
	Description string `csv:"description"`
}

func (p *SnapshotProvider) Calendar(ctx context.Context) (*optionmodels.FinancialCalendar, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("SnapshotProvider: Calendar: %w", err)
	}

	path := filepath.Join(p.dir, "calendar.csv")

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &optionmodels.FinancialCalendar{}, nil
		}

		return nil, fmt.Errorf("SnapshotProvider: Calendar: failed to open %s: %w", path, err)
	}

	defer f.Close()

	var dtos []financialEventDTO
	if err := gocsv.UnmarshalFile(f, &dtos); err != nil {
		return nil, fmt.Errorf("SnapshotProvider: Calendar: failed to unmarshal %s: %w", path, err)
	}

	calendar := &optionmodels.FinancialCalendar{}

	for i, dto := range dtos {
		eventType := optionmodels.FinancialEventType(dto.EventType)
		if err := eventType.Validate(); err != nil {
			return nil, fmt.Errorf("SnapshotProvider: Calendar: row %d: %w", i+2, err)
		}

		date, err := time.Parse("2006-01-02", dto.Date)
		if err != nil {
			return nil, fmt.Errorf("SnapshotProvider: Calendar: row %d: invalid date %q: %w", i+2, dto.Date, err)
		}

		calendar.Events = append(calendar.Events, optionmodels.FinancialEvent{
			Ticker:      optionmodels.NewStockSymbol(dto.Ticker),
			EventType:   eventType,
			Date:        date,
			Description: dto.Description,
		})
	}

	return calendar, nil
}
