package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the process-level configuration. The engine itself never reads
// it; callers translate the relevant sections into plain values handed to
// the constructors.
type Config struct {
	Database      DatabaseConfig      `mapstructure:"database"`
	Ledger        LedgerConfig        `mapstructure:"ledger"`
	Cache         CacheConfig         `mapstructure:"cache"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host" validate:"required"`
	Port            int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	User            string        `mapstructure:"user" validate:"required"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database" validate:"required"`
	MaxConnections  int           `mapstructure:"max_connections" validate:"gte=1"`
	MinConnections  int           `mapstructure:"min_connections" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gt=0"`
	SSLMode         string        `mapstructure:"ssl_mode" validate:"oneof=disable require verify-ca verify-full"`
}

type LedgerConfig struct {
	// RequireActiveAccounts selects the strict transfer eligibility rule.
	RequireActiveAccounts bool `mapstructure:"require_active_accounts"`

	// MaxTxAttempts bounds serialization-conflict replays per operation.
	MaxTxAttempts     uint          `mapstructure:"max_tx_attempts" validate:"gte=1"`
	RetryInitialDelay time.Duration `mapstructure:"retry_initial_delay" validate:"gt=0"`
	RetryMaxDelay     time.Duration `mapstructure:"retry_max_delay" validate:"gt=0"`
}

type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port     int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	Password string `mapstructure:"password"`

	// StalenessBound is both the cache TTL and the documented maximum lag of
	// a cached read.
	StalenessBound time.Duration `mapstructure:"staleness_bound" validate:"gt=0"`
}

type ObservabilityConfig struct {
	LogLevel       string `mapstructure:"log_level" validate:"oneof=debug info warn warning error fatal"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	EnableMetrics  bool   `mapstructure:"enable_metrics"`
	EnableTracing  bool   `mapstructure:"enable_tracing"`
}

// Load reads configuration from the environment (prefix FINLEDGER) and an
// optional yaml file.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("FINLEDGER")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/finledger")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks structural constraints declared on the config structs.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return err
	}
	if c.Ledger.RetryMaxDelay < c.Ledger.RetryInitialDelay {
		return fmt.Errorf("ledger.retry_max_delay must not be below ledger.retry_initial_delay")
	}
	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database.min_connections must not exceed database.max_connections")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "finledger")
	v.SetDefault("database.database", "finledger")
	v.SetDefault("database.max_connections", 25)
	v.SetDefault("database.min_connections", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("ledger.require_active_accounts", true)
	v.SetDefault("ledger.max_tx_attempts", 5)
	v.SetDefault("ledger.retry_initial_delay", "5ms")
	v.SetDefault("ledger.retry_max_delay", "500ms")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.host", "localhost")
	v.SetDefault("cache.port", 6379)
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.staleness_bound", "5s")

	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("observability.enable_metrics", true)
	v.SetDefault("observability.enable_tracing", false)
}

func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func (c *CacheConfig) CacheAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
