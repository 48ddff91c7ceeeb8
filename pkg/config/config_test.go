package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "emergency_routing", cfg.Database.Database)
	assert.Equal(t, "heuristic", cfg.Traffic.Provider)
	assert.Equal(t, 50, cfg.Traffic.StaticDensity)
	assert.Equal(t, 50.0, cfg.Dispatch.RadiusKm)
	assert.Equal(t, "emergency-routing", cfg.OTEL.ServiceName)
	assert.False(t, cfg.OTEL.Enabled)
	assert.Equal(t, "development", cfg.Env)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TRAFFIC_PROVIDER", "static")
	t.Setenv("TRAFFIC_STATIC_DENSITY", "80")
	t.Setenv("DISPATCH_RADIUS_KM", "25.5")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "static", cfg.Traffic.Provider)
	assert.Equal(t, 80, cfg.Traffic.StaticDensity)
	assert.Equal(t, 25.5, cfg.Dispatch.RadiusKm)
	assert.True(t, cfg.OTEL.Enabled)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("DISPATCH_RADIUS_KM", "wide")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 50.0, cfg.Dispatch.RadiusKm)
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: 5433, User: "routing", Password: "secret",
		Database: "er", SSLMode: "require",
	}
	assert.Equal(t, "host=db port=5433 user=routing password=secret dbname=er sslmode=require", c.DatabaseDSN())
}

func TestRedisAddr(t *testing.T) {
	c := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", c.RedisAddr())
}
