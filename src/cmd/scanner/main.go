package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/jiaming2012/calendar-scanner/src/cmd/scanner/run"
	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

var rootCmd = &cobra.Command{
	Use:   "scanner",
	Short: "Scans option chains for calendar spread mispricings",
	Long: `Scans option chain snapshots for implied volatility term structure mispricings:
1.) Groups each ticker's chain by expiration and resolves the at-the-money IV per group
2.) Decomposes adjacent expiration pairs into forward volatility and flags rich or cheap front months
3.) Filters the candidates through the quality rules and ranks the survivors by signal strength
	`,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scans tickers for forward volatility signals and ranks the survivors",
	Run: func(cmd *cobra.Command, args []string) {
		snapshotDir, err := cmd.Flags().GetString("snapshot-dir")
		if err != nil {
			log.Fatalf("error getting snapshot-dir: %v", err)
		}

		tickers, err := cmd.Flags().GetString("tickers")
		if err != nil {
			log.Fatalf("error getting tickers: %v", err)
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		topN, err := cmd.Flags().GetInt("top-n")
		if err != nil {
			log.Fatalf("error getting top-n: %v", err)
		}

		exportDir, err := cmd.Flags().GetString("export-dir")
		if err != nil {
			log.Fatalf("error getting export-dir: %v", err)
		}

		if err := run.Run(run.RunArgs{
			SnapshotDir: snapshotDir,
			Tickers:     run.ParseTickers(tickers),
			ConfigPath:  configPath,
			TopN:        topN,
			ExportDir:   exportDir,
		}); err != nil {
			log.Fatalf("error running scan: %v", err)
		}
	},
}

var payoffCmd = &cobra.Command{
	Use:   "payoff",
	Short: "Simulates the P&L of a calendar spread candidate for one ticker",
	Run: func(cmd *cobra.Command, args []string) {
		snapshotDir, err := cmd.Flags().GetString("snapshot-dir")
		if err != nil {
			log.Fatalf("error getting snapshot-dir: %v", err)
		}

		ticker, err := cmd.Flags().GetString("ticker")
		if err != nil {
			log.Fatalf("error getting ticker: %v", err)
		}

		frontDate, err := cmd.Flags().GetString("front")
		if err != nil {
			log.Fatalf("error getting front: %v", err)
		}

		backDate, err := cmd.Flags().GetString("back")
		if err != nil {
			log.Fatalf("error getting back: %v", err)
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		if err := run.RunPayoff(run.PayoffArgs{
			SnapshotDir: snapshotDir,
			Ticker:      optionmodels.StockSymbol(ticker),
			FrontDate:   frontDate,
			BackDate:    backDate,
			ConfigPath:  configPath,
		}); err != nil {
			log.Fatalf("error running payoff: %v", err)
		}
	},
}

func main() {
	scanCmd.Flags().StringVarP(new(string), "snapshot-dir", "d", "", "Directory holding the option chain snapshot CSV files. This flag is required.")
	scanCmd.Flags().StringVarP(new(string), "tickers", "t", "", "Comma-separated tickers to scan, e.g. 'AAPL,MSFT'. Prompts when omitted.")
	scanCmd.Flags().StringVarP(new(string), "config", "c", "", "Path to a YAML calibration file. Built-in defaults apply when omitted.")
	scanCmd.Flags().IntVarP(new(int), "top-n", "n", 0, "Keep only the strongest N ranked opportunities. 0 keeps all of them.")
	scanCmd.Flags().StringVar(new(string), "export-dir", "", "Directory to export the ranked opportunities CSV into.")
	scanCmd.MarkFlagRequired("snapshot-dir")

	payoffCmd.Flags().StringVarP(new(string), "snapshot-dir", "d", "", "Directory holding the option chain snapshot CSV files. This flag is required.")
	payoffCmd.Flags().StringVarP(new(string), "ticker", "t", "", "Ticker to simulate, e.g. 'AAPL'. This flag is required.")
	payoffCmd.Flags().StringVar(new(string), "front", "", "Front expiration date as 'YYYY-MM-DD'. Defaults to the strongest ranked pair.")
	payoffCmd.Flags().StringVar(new(string), "back", "", "Back expiration date as 'YYYY-MM-DD'. Defaults to the strongest ranked pair.")
	payoffCmd.Flags().StringVarP(new(string), "config", "c", "", "Path to a YAML calibration file. Built-in defaults apply when omitted.")
	payoffCmd.MarkFlagRequired("snapshot-dir")
	payoffCmd.MarkFlagRequired("ticker")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(payoffCmd)

	cobra.CheckErr(rootCmd.Execute())
}
