package scanner

import (
	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

// EstimateIVRank places the front IV inside the scan's own term-structure
// range, scaled 0-100. A true IV rank compares against a year of history;
// a single snapshot only has the cross-expiration range to rank against,
// so the estimate is context, not calibration. Nil means the structure is
// too thin or too flat to rank.
func EstimateIVRank(groups []optionmodels.ExpirationGroup, frontIV float64) *float64 {
	if frontIV <= 0 {
		return nil
	}

	ivs := make([]float64, 0, len(groups))

	for i := range groups {
		if groups[i].HasUsableIV() {
			ivs = append(ivs, groups[i].ATMIV)
		}
	}

	if len(ivs) < 2 {
		return nil
	}

	lo, err := stats.Min(ivs)
	if err != nil {
		return nil
	}

	hi, err := stats.Max(ivs)
	if err != nil {
		return nil
	}

	if hi <= lo {
		return nil
	}

	rank := (frontIV - lo) / (hi - lo) * 100

	if rank < 0 {
		rank = 0
	}

	if rank > 100 {
		rank = 100
	}

	return &rank
}
