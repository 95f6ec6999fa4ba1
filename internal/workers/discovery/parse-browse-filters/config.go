// internal/workers/discovery/parse-browse-filters/config.go
package parsebrowsefilters

import (
	"time"

	"github.com/ThanushaGali/CaConnect/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}

// ConfigFrom takes the job timeout from the worker section when one is set.
func ConfigFrom(wcfg config.WorkerConfig) *Config {
	cfg := LoadConfig()
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	return cfg
}
