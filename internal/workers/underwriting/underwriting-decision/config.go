// internal/workers/underwriting/underwriting-decision/config.go
package underwritingdecision

import (
	"time"

	"loan-assistant/internal/common/config"
	"loan-assistant/internal/lending"
	"loan-assistant/pkg/registry"
)

type Config struct {
	Activity       registry.Activity
	Timeout        time.Duration
	ScoreThreshold int
}

func LoadConfig(appCfg *config.Config) *Config {
	c := &Config{
		Activity:       registry.MustDefault().MustLookup(TaskType),
		Timeout:        10 * time.Second,
		ScoreThreshold: lending.ScoreThreshold,
	}
	if appCfg != nil && appCfg.Conversation.ScoreThreshold > 0 {
		c.ScoreThreshold = appCfg.Conversation.ScoreThreshold
	}
	if wc, ok := config.GetWorkerConfig(appCfg, TaskType); ok {
		c.Activity = c.Activity.WithLatency(wc.Latency)
		if wc.Timeout > 0 {
			c.Timeout = config.GetDuration(wc.Timeout)
		}
	}
	return c
}
