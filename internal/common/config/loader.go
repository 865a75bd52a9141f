// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	CatalogSourceStatic   = "static"
	CatalogSourcePostgres = "postgres"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top,
// expands ${VAR} placeholders and validates the result. A missing base file is
// not an error; every field has a default.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a validated configuration built only from defaults.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills credentials that are commonly supplied only via env.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "loan-assistant"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	if cfg.Conversation.DefaultTenureMonths == 0 {
		cfg.Conversation.DefaultTenureMonths = 36
	}
	if cfg.Conversation.FallbackInterestRate == 0 {
		cfg.Conversation.FallbackInterestRate = 10.5
	}
	if cfg.Conversation.FallbackProcessingFee == 0 {
		cfg.Conversation.FallbackProcessingFee = 1.5
	}
	if cfg.Conversation.ScoreThreshold == 0 {
		cfg.Conversation.ScoreThreshold = 700
	}

	if cfg.Status.AutoDismiss == 0 {
		cfg.Status.AutoDismiss = 2000
	}

	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = CatalogSourceStatic
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 2
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Redis.TTL == 0 {
		cfg.Database.Redis.TTL = 300000
	}

	if cfg.Workers == nil {
		cfg.Workers = make(map[string]WorkerConfig)
	}
	for key, worker := range cfg.Workers {
		if worker.Timeout == 0 {
			worker.Timeout = 10000
		}
		cfg.Workers[key] = worker
	}

	if cfg.Identity.UserID == "" {
		cfg.Identity = IdentityConfig{
			UserID:       "CUST001",
			Name:         "John Smith",
			Email:        "john.smith@example.com",
			Phone:        "9876543210",
			KYCCompleted: true,
		}
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9090"
	}
	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	switch cfg.Catalog.Source {
	case CatalogSourceStatic:
	case CatalogSourcePostgres:
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required when catalog.source is postgres")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required when catalog.source is postgres")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required when catalog.source is postgres")
		}
	default:
		return fmt.Errorf("catalog.source must be %q or %q, got %q",
			CatalogSourceStatic, CatalogSourcePostgres, cfg.Catalog.Source)
	}

	if cfg.Database.Redis.Enabled && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required when redis is enabled")
	}

	if cfg.Status.AutoDismiss < 0 {
		return fmt.Errorf("status.auto_dismiss must be positive")
	}

	if t := cfg.Conversation.DefaultTenureMonths; t < 12 || t > 72 {
		return fmt.Errorf("conversation.default_tenure_months must be within [12, 72], got %d", t)
	}

	for name, w := range cfg.Workers {
		if w.Latency < 0 {
			return fmt.Errorf("workers.%s.latency must not be negative", name)
		}
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves agent-specific configuration. ok is false when the
// agent has no entry, in which case callers keep their built-in defaults.
func GetWorkerConfig(cfg *Config, workerName string) (WorkerConfig, bool) {
	if cfg == nil {
		return WorkerConfig{}, false
	}
	worker, exists := cfg.Workers[workerName]
	return worker, exists
}
