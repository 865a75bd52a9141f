// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/models"
)

const scoreKeyPrefix = "score:"

// CachedScores is a read-through redis cache in front of a CreditScoreTable.
// Redis failures are logged and fall back to the underlying table.
type CachedScores struct {
	next   CreditScoreTable
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedScores(next CreditScoreTable, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedScores {
	return &CachedScores{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"table": TableCreditScores}),
	}
}

func (c *CachedScores) CreditScore(ctx context.Context, customerID string) (models.CreditScoreRecord, error) {
	key := scoreKeyPrefix + customerID

	val, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var rec models.CreditScoreRecord
		if jsonErr := json.Unmarshal([]byte(val), &rec); jsonErr == nil {
			return rec, nil
		}
		c.logger.Warn("discarding corrupt cache entry", map[string]interface{}{"key": key})
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("score cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	rec, err := c.next.CreditScore(ctx, customerID)
	if err != nil {
		return rec, err
	}

	data, _ := json.Marshal(rec)
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("score cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return rec, nil
}
