package main

import (
	"flag"
	"os"

	"github.com/damoang/angple-notes/internal/config"
	"github.com/damoang/angple-notes/internal/database"
	"github.com/damoang/angple-notes/internal/migration"
	pkglogger "github.com/damoang/angple-notes/pkg/logger"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	dotenvFiles := config.LoadDotEnv(".")

	// CLI flags
	configPath := flag.String("config", config.ConfigPath(), "config file path")
	verify := flag.Bool("verify", false, "report schema state without changing it")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		pkglogger.InitStructured("local", "info")
		pkglogger.GetLogger().Fatal().Err(err).Str("config", *configPath).Msg("Failed to load config")
	}
	pkglogger.InitStructured(cfg.Env, cfg.Log.Level)
	pkglogger.Info("[migrate] config=%s, loaded env files: %v", *configPath, dotenvFiles)

	logLevel := gormlogger.Warn
	if *verbose {
		logLevel = gormlogger.Info
	}

	db, err := database.Open(cfg, logLevel)
	if err != nil {
		pkglogger.GetLogger().Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if *verify {
		report, err := migration.Inspect(db)
		if err != nil {
			pkglogger.Error(err, "[migrate] verify failed")
			os.Exit(1)
		}
		pkglogger.GetLogger().Info().
			Bool("table_exists", report.TableExists).
			Strs("missing_columns", report.MissingColumns).
			Int64("rows", report.Rows).
			Msg("[migrate] notes schema")
		if !report.UpToDate() {
			os.Exit(2)
		}
		return
	}

	if err := migration.Run(db); err != nil {
		pkglogger.Error(err, "[migrate] FAILED")
		os.Exit(1)
	}
	pkglogger.Info("[migrate] notes schema is up to date")
}
