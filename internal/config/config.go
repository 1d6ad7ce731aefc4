package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Service    *svcConfig
	Estimation *estimationConfig
}

type svcConfig struct {
	LogLevel  string `envconfig:"POND_CALC_LOG_LEVEL" default:"info"`
	RulesFile string `envconfig:"POND_CALC_RULES_FILE" default:""`
}

type estimationConfig struct {
	// Efficiency is applied uniformly to every equipment rate.
	Efficiency float64 `envconfig:"POND_CALC_EFFICIENCY" default:"0.85"`
	// DebounceWindow is how long input must stay quiet before a recalculation runs.
	DebounceWindow time.Duration `envconfig:"POND_CALC_DEBOUNCE_WINDOW" default:"300ms"`
	// CacheSize bounds the number of memoised estimates. Zero disables the cache.
	CacheSize int `envconfig:"POND_CALC_CACHE_SIZE" default:"128"`
}

// New returns the process configuration, reading the environment on first use only.
func New() (*Config, error) {
	if singleConfig == nil {
		cfg, err := Load()
		if err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// Load reads the configuration from the environment without caching it.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
