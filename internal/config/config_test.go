package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"petstore/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 3, cfg.APIRetryAttempts)
	assert.Equal(t, config.DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, time.Minute, cfg.SessionSweepInterval)
	assert.Equal(t, 9.99, cfg.ShippingFlatFee)
	assert.Equal(t, 0.08, cfg.TaxRate)
	assert.Equal(t, 5<<20, cfg.StorageMaxValueBytes)
	assert.Equal(t, 5, cfg.PopularProductsLimit)
	assert.Empty(t, cfg.APIBaseURL)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("API_TIMEOUT", "2s")
	t.Setenv("TAX_RATE", "0.2")
	t.Setenv("DATABASE_DRIVER", "postgres")

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, 2*time.Second, cfg.APITimeout)
	assert.Equal(t, 0.2, cfg.TaxRate)
	assert.Equal(t, config.DriverPostgres, cfg.DatabaseDriver)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("API_BASE_URL: https://api.example.com\nPOPULAR_PRODUCTS_LIMIT: 8\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 8, cfg.PopularProductsLimit)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")

	_, err := config.Load(viper.New())
	assert.ErrorContains(t, err, "invalid config")
}
