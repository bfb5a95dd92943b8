package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damoang/angple-notes/internal/config"
	"github.com/damoang/angple-notes/internal/database"
	"github.com/damoang/angple-notes/internal/handler"
	"github.com/damoang/angple-notes/internal/middleware"
	"github.com/damoang/angple-notes/internal/migration"
	"github.com/damoang/angple-notes/internal/repository"
	"github.com/damoang/angple-notes/internal/routes"
	"github.com/damoang/angple-notes/internal/service"
	pkglogger "github.com/damoang/angple-notes/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title           Angple Notes API
// @version         1.0
// @description     Notes gateway: list, search, create, update and delete short text notes
//
// @host            localhost:3001
// @BasePath        /api

func main() {
	dotenvFiles := config.LoadDotEnv(".")

	// 설정 로드
	configPath := config.ConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 로거 초기화
	pkglogger.InitStructured(cfg.Env, cfg.Log.Level)
	pkglogger.Info("APP_ENV=%s, config=%s, loaded env files: %v", cfg.Env, configPath, dotenvFiles)
	config.LogResolved(cfg)

	db, err := database.Open(cfg, database.LogLevel(cfg))
	if err != nil {
		pkglogger.GetLogger().Fatal().Err(err).Msg("Failed to connect to database")
	}
	pkglogger.Info("Connected to %s", cfg.Database.Driver)

	if cfg.Database.AutoMigrate {
		if err := migration.Run(db); err != nil {
			pkglogger.GetLogger().Fatal().Err(err).Msg("Migration failed")
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		pkglogger.GetLogger().Fatal().Err(err).Msg("Failed to access connection pool")
	}
	defer sqlDB.Close()

	noteRepo := repository.NewNoteRepository(db)
	noteService := service.NewNoteService(noteRepo)
	noteHandler := handler.NewNoteHandler(noteService)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := routes.NewRouter(noteHandler, routes.Options{
		AllowOrigin: cfg.CORS.AllowOrigin,
		Health:      handler.NewHealthHandler(sqlDB),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	middleware.ObserveDBPool(sqlDB.Stats)

	go func() {
		pkglogger.Info("API server is running on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			pkglogger.GetLogger().Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	pkglogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		pkglogger.Error(err, "Server forced to shutdown")
	}
}
