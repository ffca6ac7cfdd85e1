package scanner

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5, cfg.TickersPerBatch)
	assert.Equal(t, 2, cfg.BatchPauseSeconds)
	assert.Equal(t, 3, cfg.MinGroupContracts)
	assert.Equal(t, 0, cfg.TopN)
	assert.Equal(t, 2*time.Second, cfg.BatchPause())

	assert.Equal(t, 15.0, cfg.ForwardVol.EarningsCrushPoints)
	assert.Equal(t, 21, cfg.Liquidity.SweetSpotMinDTE)
	assert.Equal(t, 6, cfg.Quality.MinRating)
	assert.Equal(t, 0.05, cfg.Payoff.RiskFreeRate)
}

func TestLoadConfig(t *testing.T) {
	t.Run("file overrides layer over defaults", func(t *testing.T) {
		file := path.Join(t.TempDir(), "scanner.yaml")
		data := []byte("tickers_per_batch: 3\ntop_n: 10\nquality:\n  min_rating: 7\npayoff:\n  risk_free_rate: 0.03\n")
		assert.NoError(t, os.WriteFile(file, data, 0644))

		cfg, err := LoadConfig(file)
		assert.NoError(t, err)

		assert.Equal(t, 3, cfg.TickersPerBatch)
		assert.Equal(t, 10, cfg.TopN)
		assert.Equal(t, 7, cfg.Quality.MinRating)
		assert.Equal(t, 0.03, cfg.Payoff.RiskFreeRate)

		// Everything the file does not mention keeps its default.
		assert.Equal(t, 2, cfg.BatchPauseSeconds)
		assert.Equal(t, 30.0, cfg.Quality.WeakAbsFactor)
		assert.Equal(t, 0.15, cfg.Payoff.ProfitZonePct)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadConfig(path.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		file := path.Join(t.TempDir(), "scanner.yaml")
		assert.NoError(t, os.WriteFile(file, []byte("tickers_per_batch: [not a number"), 0644))

		_, err := LoadConfig(file)
		assert.Error(t, err)
	})
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, 5, cfg.TickersPerBatch)
	assert.Equal(t, 0, cfg.BatchPauseSeconds)
	assert.Equal(t, 3, cfg.MinGroupContracts)
	assert.Equal(t, 15.0, cfg.ForwardVol.EarningsCrushPoints)
	assert.Equal(t, 6, cfg.Quality.MinRating)
}
