package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/laundromart-api/internal/app"
	"github.com/sangkips/laundromart-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and scheduled jobs",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "Run auto-migrations before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if serveMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		if err := database.SeedDefaultData(db); err != nil {
			log.Warn("failed to seed default data", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, app.Options{Config: cfg, DB: db, Log: log})
	if err != nil {
		return err
	}
	if cfg.Jobs.Enabled {
		a.Scheduler.Start()
		log.Info("scheduler started", zap.Int("jobs", a.Scheduler.Entries()))
	}

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("name", cfg.App.Name),
			zap.String("env", cfg.App.Env),
			zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	a.Shutdown(shutdownCtx)
	return nil
}
