package utils

import (
	"fmt"
	"os"
	"path"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

type opportunityRow struct {
	Ticker        string  `csv:"ticker"`
	Price         float64 `csv:"underlying_price"`
	Front         string  `csv:"front_expiration"`
	FrontDTE      int     `csv:"front_dte"`
	FrontIV       float64 `csv:"front_iv"`
	Back          string  `csv:"back_expiration"`
	BackDTE       int     `csv:"back_dte"`
	BackIV        float64 `csv:"back_iv"`
	ForwardVol    float64 `csv:"forward_vol"`
	ForwardFactor float64 `csv:"forward_factor"`
	Signal        string  `csv:"signal"`
	EarningsSoon  bool    `csv:"earnings_soon"`
	IVRank        string  `csv:"iv_rank"`        // empty when unknown
	Rating        string  `csv:"quality_rating"` // empty when unfiltered
	WinProbPct    string  `csv:"win_prob_pct"`
}

func newOpportunityRow(o *optionmodels.Opportunity) opportunityRow {
	row := opportunityRow{
		Ticker:        string(o.Ticker),
		Price:         o.UnderlyingPrice,
		Front:         o.Front.Expiration.Format("2006-01-02"),
		FrontDTE:      o.Front.DTE,
		FrontIV:       o.Front.ATMIV,
		Back:          o.Back.Expiration.Format("2006-01-02"),
		BackDTE:       o.Back.DTE,
		BackIV:        o.Back.ATMIV,
		ForwardVol:    o.ForwardVol,
		ForwardFactor: o.ForwardFactor,
		Signal:        string(o.Signal),
		EarningsSoon:  o.EarningsSoon,
	}

	if o.IVRank != nil {
		row.IVRank = fmt.Sprintf("%.1f", *o.IVRank)
	}

	if o.Quality != nil {
		row.Rating = fmt.Sprintf("%d", o.Quality.Rating)
		row.WinProbPct = fmt.Sprintf("%.0f", o.Quality.WinProbPct)
	}

	return row
}

// ExportOpportunitiesCSV writes the ranked opportunities to
// <outDir>/<fname>.csv, creating the directory when missing. Optional
// fields export as empty cells rather than zeros.
func ExportOpportunitiesCSV(opportunities []*optionmodels.Opportunity, outDir, fname string) (string, error) {
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return "", fmt.Errorf("ExportOpportunitiesCSV: create %s: %w", outDir, err)
		}
	}

	rows := make([]opportunityRow, 0, len(opportunities))
	for _, o := range opportunities {
		rows = append(rows, newOpportunityRow(o))
	}

	outFile := path.Join(outDir, fmt.Sprintf("%s.csv", fname))

	file, err := os.Create(outFile)
	if err != nil {
		return "", fmt.Errorf("ExportOpportunitiesCSV: create %s: %w", outFile, err)
	}

	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return "", fmt.Errorf("ExportOpportunitiesCSV: write %s: %w", outFile, err)
	}

	log.Infof("Exported %d opportunities to %s", len(rows), outFile)

	return outFile, nil
}
