// Package config holds runtime settings for the gateway CLI. Values are
// resolved in three layers, later ones winning: defaults, a JSON config file
// (-c/-config), command-line flags.
package config

import (
	"time"

	"focusd/internal/common"
)

// Config holds runtime settings for the focusd gateway.
//
// Fields:
//   - DatabasePath: sqlite file holding templates, consent flags, encrypted
//     api-key records, and journal entries.
//   - ProviderTimeout: per-HTTP-call timeout for generation flows.
//   - StoreWorkers: admission bound for concurrent blocking store calls.
//   - LogLevel: debug | info | warn | error.
type Config struct {
	DatabasePath    string
	ProviderTimeout time.Duration
	StoreWorkers    int64
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "focusd.db"
	c.ProviderTimeout = common.DefaultProviderTimeout
	c.StoreWorkers = 4
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
