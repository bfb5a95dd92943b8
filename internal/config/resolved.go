package config

import (
	"github.com/damoang/angple-notes/pkg/logger"
	mysqldriver "github.com/go-sql-driver/mysql"
)

// LogResolved logs the effective configuration with secrets masked
func LogResolved(cfg *Config) {
	logger.GetLogger().Info().
		Str("env", cfg.Env).
		Int("port", cfg.Server.Port).
		Str("db_driver", cfg.Database.Driver).
		Str("db_target", MaskedDSN(&cfg.Database)).
		Bool("auto_migrate", cfg.Database.AutoMigrate).
		Str("cors_allow_origin", cfg.CORS.AllowOrigin).
		Msg("config resolved")
}

// MaskedDSN returns the DSN with the password replaced
func MaskedDSN(d *DatabaseConfig) string {
	dsn := d.GetDSN()
	if d.Driver == DriverSQLite {
		return dsn
	}
	mc, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "<invalid dsn>"
	}
	if mc.Passwd != "" {
		mc.Passwd = "****"
	}
	return mc.FormatDSN()
}
