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

	"github.com/vparedes/menuadmin/internal/config"
	"github.com/vparedes/menuadmin/internal/logging"
	"github.com/vparedes/menuadmin/internal/stub/api"
	"github.com/vparedes/menuadmin/internal/stub/db"
	"github.com/vparedes/menuadmin/internal/stub/store"
)

func main() {
	cfg, err := config.LoadStub()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, cleanup, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiServer := api.New(cfg, store.NewMenuStore(database), logger)
	defer apiServer.Close()

	if err := apiServer.Seed(context.Background()); err != nil {
		logger.Error("failed to seed menu", "error", err)
		return
	}

	srv := &http.Server{
		Addr:        cfg.ListenAddr,
		Handler:     apiServer,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("starting menu stub backend", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down cleanly", "error", err)
	}
}
