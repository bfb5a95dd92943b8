package database

import (
	"testing"

	"github.com/damoang/angple-notes/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{
		Env:      "test",
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"},
	}

	db, err := Open(cfg, gormlogger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, LogLevel(&config.Config{Env: "local"}))
	assert.Equal(t, gormlogger.Warn, LogLevel(&config.Config{Env: "production"}))
}
