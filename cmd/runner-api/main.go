// @title Runner Dashboard API
// @version 1.0
// @description Upload running logs as CSV and read overall and per-runner statistics.
// @host localhost:8080
// @BasePath /api/v1
package main

import (
	"fmt"
	"os"

	"runner-dashboard/internal/api"
	"runner-dashboard/internal/api/handler"
	"runner-dashboard/internal/config"
	"runner-dashboard/internal/pipeline"
	"runner-dashboard/internal/store"
	"runner-dashboard/pkg/router"
	"runner-dashboard/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		utils.NewLogger("info").Error("%v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := utils.NewLogger(cfg.LogLevel)

	// Init DB
	db, err := store.New(cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()

	var (
		exporter *pipeline.Exporter
		output   *utils.OutputManager
	)
	if cfg.ExportEnabled {
		output = utils.NewOutputManager(cfg.OutputDir)
		if err := output.EnsureOutputDirExists(); err != nil {
			return fmt.Errorf("failed to create output dir %s: %w", cfg.OutputDir, err)
		}
		exporter = pipeline.NewExporter(output, logger)
		logger.Info("Exports enabled, writing to %s", cfg.OutputDir)
	}

	processor := pipeline.NewProcessor(db, exporter, logger)
	h := handler.NewUploadHandler(processor, db, output, logger, handler.Options{
		MaxUploadBytes:   cfg.MaxUploadBytes,
		MaxDisplayErrors: cfg.MaxDisplayErrors,
		RequestTimeout:   cfg.RequestTimeout,
	})

	// Create router
	r := router.New()

	// Register API routes
	api.RegisterRoutes(r, h)

	// Start server
	if err := r.Start(cfg.HTTPAddr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
