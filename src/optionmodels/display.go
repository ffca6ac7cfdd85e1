package optionmodels

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func (r *TickerScanResult) String() string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)

	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnSeparator("")

	priceNote := ""
	if r.PriceEstimated {
		priceNote = " (estimated)"
	}

	display.WriteString(p.Sprintf("%s term structure @ $%.2f%s:\n", r.Ticker, r.UnderlyingPrice, priceNote))

	for _, g := range r.Groups {
		expiration := g.Expiration.Format("2006-01-02")
		dte := fmt.Sprintf("%dd", g.DTE)
		atm := p.Sprintf("ATM $%.2f", g.ATMStrike)
		iv := fmt.Sprintf("IV %.1f%%", g.ATMIV)
		oi := p.Sprintf("straddle OI %d", g.StraddleOI)
		tier := fmt.Sprintf("tier %d", g.Liquidity)

		table.Append([]string{expiration, dte, atm, iv, oi, tier})
	}

	table.Render()
	return display.String()
}

func (r *BatchScanResult) String() string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)

	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnSeparator("")

	display.WriteString(p.Sprintf("Scan %s: %d scanned, %d failed, %d ranked:\n",
		r.ScanID, len(r.Results), len(r.Failed), len(r.Opportunities)))

	for i, o := range r.Opportunities {
		rank := fmt.Sprintf("#%d", i+1)
		signal := fmt.Sprintf("%s %.1f%%", o.Signal, o.ForwardFactor)
		window := fmt.Sprintf("%s/%s (%dd/%dd)",
			o.Front.Expiration.Format("Jan 02"), o.Back.Expiration.Format("Jan 02"), o.Front.DTE, o.Back.DTE)
		ivs := fmt.Sprintf("IV %.1f to %.1f, fwd %.1f", o.Front.ATMIV, o.Back.ATMIV, o.ForwardVol)
		oi := p.Sprintf("OI %d/%d", o.Front.StraddleOI, o.Back.StraddleOI)

		verdict := "unrated"
		if o.Quality != nil {
			verdict = fmt.Sprintf("rating %d/10, win %.0f%%", o.Quality.Rating, o.Quality.WinProbPct)
		}

		var flags []string
		if o.EarningsSoon {
			flags = append(flags, "earnings")
		}

		if o.IVRank != nil {
			flags = append(flags, fmt.Sprintf("IVR %.0f", *o.IVRank))
		}

		note := strings.Join(flags, ", ")
		if note == "" {
			note = "-"
		}

		table.Append([]string{rank, string(o.Ticker), signal, window, ivs, oi, verdict, note})
	}

	table.Render()
	return display.String()
}

func (a *PayoffAnalysis) String() string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)

	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnSeparator("")

	display.WriteString(p.Sprintf("%s %s calendar @ strike $%.2f (%dd/%dd):\n",
		a.Ticker, a.Signal, a.Strike, a.FrontDTE, a.BackDTE))

	for _, curve := range a.Curves {
		lo, hi := curve.PnLRange()
		mid := curve.PnLAtEntryPrice()

		table.Append([]string{
			curve.Label,
			fmt.Sprintf("%dd left", curve.DaysToFrontExpiry),
			p.Sprintf("flat $%.2f", mid),
			p.Sprintf("worst $%.2f", lo),
			p.Sprintf("best $%.2f", hi),
		})
	}

	table.Render()

	entry := "debit"
	if a.NetCost < 0 {
		entry = "credit"
	}

	display.WriteString(p.Sprintf("entry %s $%.2f, max profit $%.2f, max loss $%.2f\n",
		entry, a.EntryDebit(), a.MaxProfit, a.MaxLoss))
	display.WriteString(p.Sprintf("breakevens $%.2f to $%.2f, win prob %.0f%%\n",
		a.BreakevenLow, a.BreakevenHigh, a.ProfitProbPct))
	display.WriteString(p.Sprintf("position greeks: delta %+.3f, vega %+.3f, theta %+.3f/day\n",
		a.Greeks.Delta, a.Greeks.Vega, a.Greeks.Theta))

	return display.String()
}
