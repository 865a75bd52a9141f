// internal/common/database/retry.go
package database

import (
	"context"
	"time"

	"loan-assistant/internal/common/logger"
)

// RetryWithBackoff runs operation up to maxRetries times, doubling the delay
// between attempts. It stops early when ctx is done.
func RetryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		if err = operation(); err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(operationName+" failed, retrying", map[string]interface{}{
				"error":      err.Error(),
				"attempt":    i + 1,
				"maxRetries": maxRetries,
				"nextDelay":  delay.String(),
			})
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return err
}
