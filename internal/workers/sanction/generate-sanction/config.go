// internal/workers/sanction/generate-sanction/config.go
package generatesanction

import (
	"time"

	"loan-assistant/internal/common/config"
	"loan-assistant/pkg/registry"
)

type Config struct {
	Activity registry.Activity
	Timeout  time.Duration
	// ValidFor is how long the sanction stays open for acceptance.
	ValidFor time.Duration
}

func LoadConfig(appCfg *config.Config) *Config {
	c := &Config{
		Activity: registry.MustDefault().MustLookup(TaskType),
		Timeout:  10 * time.Second,
		ValidFor: 30 * 24 * time.Hour,
	}
	if wc, ok := config.GetWorkerConfig(appCfg, TaskType); ok {
		c.Activity = c.Activity.WithLatency(wc.Latency)
		if wc.Timeout > 0 {
			c.Timeout = config.GetDuration(wc.Timeout)
		}
	}
	return c
}
