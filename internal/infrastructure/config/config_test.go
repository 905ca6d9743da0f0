package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shoestore-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "shoestore", cfg.Database.DBName)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 6379, cfg.Redis.Port)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SHOP_DATABASE_HOST", "db.internal")
	t.Setenv("SHOP_APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestValidate_ProductionRequirements(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.App.Env = "production"

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")

	cfg.JWT.Secret = strings.Repeat("s", 32)
	cfg.Database.Password = "secret"
	cfg.Database.SSLMode = "require"
	assert.NoError(t, cfg.validate())
}

func TestValidate_PoolSettings(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Database.MaxIdleConns = 50
	cfg.Database.MaxOpenConns = 10

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_idle_conns")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "shoestore",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
