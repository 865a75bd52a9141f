// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// ==========================
// Loading
// ==========================

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: loan-assistant
workers:
  credit-bureau-check:
    latency: 1500
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "loan-assistant", cfg.App.Name)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 36, cfg.Conversation.DefaultTenureMonths)
	assert.Equal(t, 700, cfg.Conversation.ScoreThreshold)
	assert.Equal(t, 2000, cfg.Status.AutoDismiss)
	assert.Equal(t, CatalogSourceStatic, cfg.Catalog.Source)
	assert.Equal(t, "CUST001", cfg.Identity.UserID)

	wc, ok := GetWorkerConfig(cfg, "credit-bureau-check")
	require.True(t, ok)
	assert.Equal(t, 1500, wc.Latency)
	assert.Equal(t, 10000, wc.Timeout)

	_, ok = GetWorkerConfig(cfg, "unknown")
	assert.False(t, ok)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("LOAN_PG_HOST", "db.internal")
	path := writeConfig(t, `
catalog:
  source: postgres
database:
  postgres:
    host: ${LOAN_PG_HOST}
    database: loans
    user: svc
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, "host=db.internal port=5432 user=svc password= dbname=loans sslmode=disable",
		cfg.Database.Postgres.GetDSN())
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// ==========================
// Validation
// ==========================

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"unknown catalog source", func(c *Config) { c.Catalog.Source = "s3" }, "catalog.source"},
		{"postgres without host", func(c *Config) { c.Catalog.Source = CatalogSourcePostgres }, "database.postgres.host"},
		{"redis without address", func(c *Config) { c.Database.Redis.Enabled = true }, "database.redis.address"},
		{"tenure too short", func(c *Config) { c.Conversation.DefaultTenureMonths = 6 }, "default_tenure_months"},
		{"negative latency", func(c *Config) {
			c.Workers["fetch-offers"] = WorkerConfig{Latency: -1}
		}, "workers.fetch-offers.latency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 2*time.Second, GetDuration(2000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
