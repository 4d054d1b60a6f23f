package db

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magallanes/coursecatalog/internal/config"
)

func postgresConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverPostgres
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5432"
	cfg.Database.User = "catalog"
	cfg.Database.Password = "secret"
	cfg.Database.DBName = "MAGALLANES"
	cfg.Database.MaxIdleConns = 1
	cfg.Database.MaxOpenConns = 5
	cfg.Database.ConnMaxLifetime = "45m"
	return cfg
}

func TestNewPoolConfig(t *testing.T) {
	pc, err := newPoolConfig(postgresConfig(), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, int32(5), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns)
	assert.Equal(t, 45*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, "db.internal", pc.ConnConfig.Host)
	assert.Equal(t, "MAGALLANES", pc.ConnConfig.Database)
	assert.NotNil(t, pc.BeforeAcquire)
}

func TestNewPoolConfig_BadLifetime(t *testing.T) {
	cfg := postgresConfig()
	cfg.Database.ConnMaxLifetime = "forever"

	_, err := newPoolConfig(cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conn_max_lifetime")
}
