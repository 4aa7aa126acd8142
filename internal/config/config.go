// Package config loads service settings from the environment and an optional
// config file.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds every setting of the storefront service.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT" validate:"required"`
	LogLevel string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	APIBaseURL       string        `mapstructure:"API_BASE_URL" validate:"omitempty,url"`
	APITimeout       time.Duration `mapstructure:"API_TIMEOUT" validate:"gt=0"`
	APIRetryAttempts int           `mapstructure:"API_RETRY_ATTEMPTS" validate:"gte=1"`

	DatabaseDriver string `mapstructure:"DATABASE_DRIVER" validate:"oneof=sqlite postgres"`
	DatabaseDSN    string `mapstructure:"DATABASE_DSN" validate:"required"`

	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
	RabbitMQExchange string `mapstructure:"RABBITMQ_EXCHANGE" validate:"required"`

	SessionSecret string        `mapstructure:"SESSION_SECRET" validate:"required"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL" validate:"gt=0"`
	// Sessions unused for SESSION_IDLE_TIMEOUT are dropped from memory; their
	// persisted state stays.
	SessionIdleTimeout   time.Duration `mapstructure:"SESSION_IDLE_TIMEOUT" validate:"gt=0"`
	SessionSweepInterval time.Duration `mapstructure:"SESSION_SWEEP_INTERVAL" validate:"gt=0"`

	ShippingFlatFee       float64 `mapstructure:"SHIPPING_FLAT_FEE" validate:"gte=0"`
	FreeShippingThreshold float64 `mapstructure:"FREE_SHIPPING_THRESHOLD" validate:"gte=0"`
	TaxRate               float64 `mapstructure:"TAX_RATE" validate:"gte=0,lt=1"`

	StorageMaxValueBytes int `mapstructure:"STORAGE_MAX_VALUE_BYTES" validate:"gt=0"`
	PopularProductsLimit int `mapstructure:"POPULAR_PRODUCTS_LIMIT" validate:"gt=0"`
}

// SetDefaults registers the default of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_BASE_URL", "")
	v.SetDefault("API_TIMEOUT", 10*time.Second)
	v.SetDefault("API_RETRY_ATTEMPTS", 3)
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "petstore.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "petstore")
	v.SetDefault("SESSION_SECRET", "change-me")
	v.SetDefault("SESSION_TTL", 720*time.Hour)
	v.SetDefault("SESSION_IDLE_TIMEOUT", 30*time.Minute)
	v.SetDefault("SESSION_SWEEP_INTERVAL", time.Minute)
	v.SetDefault("SHIPPING_FLAT_FEE", 9.99)
	v.SetDefault("FREE_SHIPPING_THRESHOLD", 0)
	v.SetDefault("TAX_RATE", 0.08)
	v.SetDefault("STORAGE_MAX_VALUE_BYTES", 5<<20)
	v.SetDefault("POPULAR_PRODUCTS_LIMIT", 5)
}

// Load reads the settings from v. Environment variables override the config
// file, which overrides the defaults.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
