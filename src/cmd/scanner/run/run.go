package run

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/calendar-scanner/src/eventpubsub"
	"github.com/jiaming2012/calendar-scanner/src/liquidity"
	"github.com/jiaming2012/calendar-scanner/src/logger"
	"github.com/jiaming2012/calendar-scanner/src/marketdata"
	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
	"github.com/jiaming2012/calendar-scanner/src/payoff"
	"github.com/jiaming2012/calendar-scanner/src/scanner"
	"github.com/jiaming2012/calendar-scanner/src/utils"
)

type RunArgs struct {
	SnapshotDir string
	Tickers     []optionmodels.StockSymbol
	ConfigPath  string
	TopN        int
	ExportDir   string
}

type PayoffArgs struct {
	SnapshotDir string
	Ticker      optionmodels.StockSymbol
	FrontDate   string
	BackDate    string
	ConfigPath  string
}

// ParseTickers splits a comma separated ticker list, trimming and upper
// casing each symbol.
func ParseTickers(s string) []optionmodels.StockSymbol {
	var tickers []optionmodels.StockSymbol

	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part == "" {
			continue
		}

		tickers = append(tickers, optionmodels.StockSymbol(part))
	}

	return tickers
}

func bootstrap(snapshotDir, configPath string) (scanner.Config, marketdata.Provider, error) {
	projectDir := os.Getenv("PROJECTS_DIR")
	if projectDir == "" {
		projectDir = "."
	}

	if err := utils.InitEnvironmentVariables(projectDir); err != nil {
		return scanner.Config{}, nil, fmt.Errorf("bootstrap: %w", err)
	}

	logger.Init()

	cfg := scanner.DefaultConfig()

	if configPath != "" {
		loaded, err := scanner.LoadConfig(configPath)
		if err != nil {
			return scanner.Config{}, nil, fmt.Errorf("bootstrap: %w", err)
		}

		cfg = loaded
	}

	provider, err := marketdata.NewSnapshotProvider(snapshotDir)
	if err != nil {
		return scanner.Config{}, nil, fmt.Errorf("bootstrap: %w", err)
	}

	return cfg, provider, nil
}

func Run(args RunArgs) error {
	cfg, provider, err := bootstrap(args.SnapshotDir, args.ConfigPath)
	if err != nil {
		return fmt.Errorf("Run: %w", err)
	}

	if args.TopN > 0 {
		cfg.TopN = args.TopN
	}

	tickers := args.Tickers
	if len(tickers) == 0 {
		line, err := utils.PromptLine("Enter tickers (comma separated): ")
		if err != nil {
			return fmt.Errorf("Run: read tickers: %w", err)
		}

		tickers = ParseTickers(line)
	}

	if len(tickers) == 0 {
		return fmt.Errorf("Run: no tickers to scan")
	}

	eventpubsub.Init()

	if err := eventpubsub.Subscribe("ScannerCLI", eventpubsub.TickerScanFailedEvent, func(ev eventpubsub.TickerScanFailed) {
		log.Warnf("%s: %s", ev.Ticker, ev.Reason)
	}); err != nil {
		return fmt.Errorf("Run: %w", err)
	}

	s := scanner.NewOptionScanner(cfg, provider)

	result, err := s.ScanBatch(context.Background(), tickers)
	if err != nil {
		return fmt.Errorf("Run: %w", err)
	}

	eventpubsub.Flush()

	fmt.Println(result.String())

	printExecutionProfiles(cfg, result)

	if args.ExportDir != "" && len(result.Opportunities) > 0 {
		outPath, err := utils.ExportOpportunitiesCSV(result.Opportunities, args.ExportDir, fmt.Sprintf("scan-%s", result.ScanID))
		if err != nil {
			return fmt.Errorf("Run: %w", err)
		}

		fmt.Printf("exported %s\n", outPath)
	}

	return nil
}

// printExecutionProfiles renders the front-leg execution guidance for each
// ranked opportunity.
func printExecutionProfiles(cfg scanner.Config, result *optionmodels.BatchScanResult) {
	if len(result.Opportunities) == 0 {
		return
	}

	scorer := liquidity.NewScorer(cfg.Liquidity)

	for _, o := range result.Opportunities {
		profile := scorer.ComputeProfile(liquidity.ProfileInputs{
			StraddleOI:   o.Front.StraddleOI,
			TotalVolume:  o.Front.TotalVolume,
			PutCallRatio: o.Front.PutCallRatio,
			DTE:          o.Front.DTE,
		})

		fmt.Printf("%s execution: score %d/100 (%s), est spread %.1f%%, %s, size %.2fx\n",
			o.Ticker, profile.Score, profile.Bucket, profile.EstSpreadPct, profile.OrderType, profile.SizeMultiplier)
	}
}

func RunPayoff(args PayoffArgs) error {
	cfg, provider, err := bootstrap(args.SnapshotDir, args.ConfigPath)
	if err != nil {
		return fmt.Errorf("RunPayoff: %w", err)
	}

	eventpubsub.Init()

	s := scanner.NewOptionScanner(cfg, provider)
	ctx := context.Background()

	result, err := s.ScanTicker(ctx, args.Ticker)
	if err != nil {
		return fmt.Errorf("RunPayoff: %w", err)
	}

	eventpubsub.Flush()

	fmt.Println(result.String())

	opp, err := pickOpportunity(result, args.FrontDate, args.BackDate)
	if err != nil {
		return fmt.Errorf("RunPayoff: %w", err)
	}

	dividendYield := 0.0
	if fundamentals, err := provider.Fundamentals(ctx, args.Ticker); err == nil {
		dividendYield = fundamentals.DividendYieldOrZero()
	}

	gen := payoff.NewGenerator(cfg.Payoff)

	analysis, err := gen.Generate(opp, result.UnderlyingPrice, dividendYield)
	if err != nil {
		return fmt.Errorf("RunPayoff: %w", err)
	}

	fmt.Println(analysis.String())

	return nil
}

// pickOpportunity takes the dated pair when dates are given, otherwise the
// strongest signal the scan produced.
func pickOpportunity(result *optionmodels.TickerScanResult, frontDate, backDate string) (*optionmodels.Opportunity, error) {
	if len(result.Opportunities) == 0 {
		return nil, fmt.Errorf("pickOpportunity: %s produced no candidates", result.Ticker)
	}

	if frontDate != "" || backDate != "" {
		for _, opp := range result.Opportunities {
			if frontDate != "" && opp.Front.Expiration.Format("2006-01-02") != frontDate {
				continue
			}

			if backDate != "" && opp.Back.Expiration.Format("2006-01-02") != backDate {
				continue
			}

			return opp, nil
		}

		return nil, fmt.Errorf("pickOpportunity: no candidate expiring %s/%s", frontDate, backDate)
	}

	best := result.Opportunities[0]
	for _, opp := range result.Opportunities[1:] {
		if math.Abs(opp.ForwardFactor) > math.Abs(best.ForwardFactor) {
			best = opp
		}
	}

	return best, nil
}
