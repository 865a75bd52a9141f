// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Conversation  ConversationConfig      `mapstructure:"conversation"`
	Status        StatusConfig            `mapstructure:"status"`
	Catalog       CatalogConfig           `mapstructure:"catalog"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Identity      IdentityConfig          `mapstructure:"identity"`
	Metrics       MetricsConfig           `mapstructure:"metrics"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ConversationConfig tunes the loan conversation.
type ConversationConfig struct {
	// DefaultTenureMonths is used when the applicant short-circuits with "search".
	DefaultTenureMonths int `mapstructure:"default_tenure_months"`
	// Instant approvals with no catalog match fall back to these terms.
	FallbackInterestRate  float64 `mapstructure:"fallback_interest_rate"`
	FallbackProcessingFee float64 `mapstructure:"fallback_processing_fee"`
	ScoreThreshold        int     `mapstructure:"score_threshold"`
}

type StatusConfig struct {
	AutoDismiss int `mapstructure:"auto_dismiss"` // milliseconds
}

// CatalogConfig selects where reference tables are read from.
type CatalogConfig struct {
	Source  string `mapstructure:"source"` // static | postgres
	DataDir string `mapstructure:"data_dir"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // milliseconds
}

// WorkerConfig holds the settings applicable to every simulated agent.
type WorkerConfig struct {
	Latency int `mapstructure:"latency"` // milliseconds
	Timeout int `mapstructure:"timeout"` // milliseconds
}

// IdentityConfig describes the demo applicant used by the CLI.
type IdentityConfig struct {
	UserID       string `mapstructure:"user_id"`
	Name         string `mapstructure:"name"`
	Email        string `mapstructure:"email"`
	Phone        string `mapstructure:"phone"`
	KYCCompleted bool   `mapstructure:"kyc_completed"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

type ObservabilityConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TraceStdout bool   `mapstructure:"trace_stdout"`
}
