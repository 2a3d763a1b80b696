package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartpos-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.SMTP.Enabled())
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 2*time.Minute, cfg.Notify.DispatchLockTTL)
	assert.Equal(t, "₹", cfg.Notify.CurrencySymbol)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("NOTIFY_DISPATCH_LOCK_TTL", "30s")
	t.Setenv("DB_MIGRATE_ON_START", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Notify.DispatchLockTTL)
	assert.False(t, cfg.DB.MigrateOnStart)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := config.Load()
	require.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss", DBName: "smartpos", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss@db:5432/smartpos?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
