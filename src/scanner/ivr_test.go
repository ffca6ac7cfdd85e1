package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

func ivGroups(ivs ...float64) []optionmodels.ExpirationGroup {
	groups := make([]optionmodels.ExpirationGroup, len(ivs))
	for i, iv := range ivs {
		groups[i] = optionmodels.ExpirationGroup{ATMIV: iv}
	}

	return groups
}

func TestEstimateIVRank(t *testing.T) {
	t.Run("front iv ranks inside the structure range", func(t *testing.T) {
		rank := EstimateIVRank(ivGroups(30, 40, 50), 40)

		if assert.NotNil(t, rank) {
			assert.InDelta(t, 50.0, *rank, 1e-9)
		}
	})

	t.Run("range extremes pin to the scale ends", func(t *testing.T) {
		lo := EstimateIVRank(ivGroups(30, 50), 30)
		hi := EstimateIVRank(ivGroups(30, 50), 50)

		if assert.NotNil(t, lo) {
			assert.InDelta(t, 0.0, *lo, 1e-9)
		}

		if assert.NotNil(t, hi) {
			assert.InDelta(t, 100.0, *hi, 1e-9)
		}
	})

	t.Run("out of range clamps", func(t *testing.T) {
		rank := EstimateIVRank(ivGroups(30, 50), 55)

		if assert.NotNil(t, rank) {
			assert.InDelta(t, 100.0, *rank, 1e-9)
		}
	})

	t.Run("flat structure cannot rank", func(t *testing.T) {
		assert.Nil(t, EstimateIVRank(ivGroups(40, 40), 40))
	})

	t.Run("single expiration cannot rank", func(t *testing.T) {
		assert.Nil(t, EstimateIVRank(ivGroups(40), 40))
	})

	t.Run("unusable groups are skipped", func(t *testing.T) {
		assert.Nil(t, EstimateIVRank(ivGroups(0, 0, 40), 40))
	})

	t.Run("zero front iv cannot rank", func(t *testing.T) {
		assert.Nil(t, EstimateIVRank(ivGroups(30, 50), 0))
	})
}
