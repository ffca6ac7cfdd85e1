package scanner

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/calendar-scanner/src/forwardvol"
	"github.com/jiaming2012/calendar-scanner/src/liquidity"
	"github.com/jiaming2012/calendar-scanner/src/payoff"
	"github.com/jiaming2012/calendar-scanner/src/quality"
)

// Config carries the batch knobs plus every component calibration, so one
// YAML file retunes the whole pipeline without code changes.
type Config struct {
	TickersPerBatch   int `yaml:"tickers_per_batch"`
	BatchPauseSeconds int `yaml:"batch_pause_seconds"`
	MinGroupContracts int `yaml:"min_group_contracts"`
	TopN              int `yaml:"top_n"` // 0 keeps every accepted candidate

	ForwardVol forwardvol.Config `yaml:"forward_vol"`
	Liquidity  liquidity.Config  `yaml:"liquidity"`
	Quality    quality.Policy    `yaml:"quality"`
	Payoff     payoff.Config     `yaml:"payoff"`
}

// DefaultConfig is the production calibration: batches of five tickers with
// a two second pause in between, sized for snapshot providers that sit
// behind rate-limited APIs.
func DefaultConfig() Config {
	var fv forwardvol.Config
	fv.ApplyDefaults()

	var liq liquidity.Config
	liq.ApplyDefaults()

	var po payoff.Config
	po.ApplyDefaults()

	return Config{
		TickersPerBatch:   5,
		BatchPauseSeconds: 2,
		MinGroupContracts: 3,
		ForwardVol:        fv,
		Liquidity:         liq,
		Quality:           quality.DefaultPolicy(),
		Payoff:            po,
	}
}

// ApplyDefaults repairs structurally unusable values. A zero pause is valid
// and means no inter-batch wait; only the batch shape and the nested
// calibrations are defaulted.
func (c *Config) ApplyDefaults() {
	if c.TickersPerBatch <= 0 {
		c.TickersPerBatch = 5
	}

	if c.BatchPauseSeconds < 0 {
		c.BatchPauseSeconds = 0
	}

	if c.MinGroupContracts <= 0 {
		c.MinGroupContracts = 3
	}

	if c.TopN < 0 {
		c.TopN = 0
	}

	c.ForwardVol.ApplyDefaults()
	c.Liquidity.ApplyDefaults()
	c.Payoff.ApplyDefaults()

	if c.Quality == (quality.Policy{}) {
		c.Quality = quality.DefaultPolicy()
	}
}

func (c Config) BatchPause() time.Duration {
	return time.Duration(c.BatchPauseSeconds) * time.Second
}

// LoadConfig reads a YAML calibration over the defaults, so a file only
// needs the fields it overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("LoadConfig: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("LoadConfig: parse %s: %w", path, err)
	}

	cfg.ApplyDefaults()

	return cfg, nil
}
