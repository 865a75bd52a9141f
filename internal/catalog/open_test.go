// internal/catalog/open_test.go
package catalog

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-assistant/internal/common/config"
	"loan-assistant/internal/common/logger"
)

func TestOpen_Static(t *testing.T) {
	cfg := config.Default()

	cat, closeFn, err := Open(context.Background(), cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	defer closeFn()

	_, isStatic := cat.(*Static)
	assert.True(t, isStatic)
}

func TestOpen_WithRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Database.Redis.Enabled = true
	cfg.Database.Redis.Address = mr.Addr()

	cat, closeFn, err := Open(context.Background(), cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	defer closeFn()

	composite, ok := cat.(Composite)
	require.True(t, ok)
	_, cached := composite.CreditScoreTable.(*CachedScores)
	assert.True(t, cached)

	rec, err := cat.CreditScore(context.Background(), "CUST001")
	require.NoError(t, err)
	assert.Equal(t, 780, rec.Score)
	assert.True(t, mr.Exists("score:CUST001"))
}

func TestOpen_RedisUnreachableFallsBack(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.Database.Redis.Enabled = true
	cfg.Database.Redis.Address = addr

	cat, closeFn, err := Open(context.Background(), cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	defer closeFn()

	_, isStatic := cat.(*Static)
	assert.True(t, isStatic)
}
