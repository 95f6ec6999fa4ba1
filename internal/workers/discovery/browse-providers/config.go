// internal/workers/discovery/browse-providers/config.go
package browseproviders

import (
	"time"

	"github.com/ThanushaGali/CaConnect/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// MaxResults caps the summaries returned in job variables. Zero means no cap.
	MaxResults int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		MaxResults: 100,
	}
}

func ConfigFrom(wcfg config.WorkerConfig) *Config {
	cfg := LoadConfig()
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	return cfg
}
