package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codernaccotax/quizdrill/internal/api"
	"github.com/codernaccotax/quizdrill/internal/config"
	"github.com/codernaccotax/quizdrill/internal/db"
	"github.com/codernaccotax/quizdrill/internal/logger"
	"github.com/codernaccotax/quizdrill/internal/pool"
	"github.com/codernaccotax/quizdrill/internal/repository"
	"github.com/codernaccotax/quizdrill/internal/repository/memory"
	"github.com/codernaccotax/quizdrill/internal/repository/sqlite"
	"github.com/codernaccotax/quizdrill/internal/session"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("QuizDrill Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("quiz_dir=%s", cfg.QuizDir)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("default_question_count=%d", cfg.DefaultQuestionCount)
	log.Debug("countdown_seconds=%d", cfg.CountdownSeconds)

	// Load question pools
	library, err := pool.LoadDir(cfg.QuizDir)
	if err != nil {
		log.Error("failed to load quiz library: %v", err)
		os.Exit(1)
	}

	// Open database; fall back to in-memory repositories so the engine still
	// runs (without resume across restarts) when storage is unavailable.
	var snapshots repository.SnapshotRepository
	var attempts repository.AttemptRepository

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Warn("database unavailable, sessions will not survive restarts: %v", err)
		snapshots = memory.NewSnapshotRepository()
		attempts = memory.NewAttemptRepository()
	} else {
		defer func() {
			log.Debug("closing database connection")
			database.Close()
		}()
		snapshots = sqlite.NewSnapshotRepository(database.DB)
		attempts = sqlite.NewAttemptRepository(database.DB)
	}

	// Load templates
	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates()
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	log.Debug("templates loaded successfully")

	sessions := session.NewManager(library, snapshots, attempts, cfg.DefaultQuestionCount, cfg.CountdownSeconds)

	srv := &api.Server{
		Library:   library,
		Sessions:  sessions,
		Attempts:  attempts,
		Templates: tmpl,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping session timers")
	sessions.Close()

	log.Info("===========================================")
	log.Info("QuizDrill Server Stopped")
	log.Info("===========================================")
}
