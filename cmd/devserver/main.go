package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/yatter-client/config"
	"github.com/oksasatya/yatter-client/internal/infrastructure/sqlite"
	"github.com/oksasatya/yatter-client/internal/router"
	"github.com/oksasatya/yatter-client/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-devserver", cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	dsn := sqlite.MemoryDSN()
	if cfg.DBPath != "" {
		dsn = sqlite.FileDSN(cfg.DBPath)
	}
	store, err := sqlite.Open(dsn)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer func() { _ = store.Close() }()

	r := router.New(store, router.Options{
		Logger:         logger,
		HTTPLogEnabled: cfg.HTTPLogEnabled || cfg.Env == "development",
		RateLimit:      cfg.RateLimit,
		CORSOrigins:    cfg.CORSOrigins(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("dev server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
