package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"equipment-tracker-backend/internal/api"
	"equipment-tracker-backend/internal/db"
	"equipment-tracker-backend/internal/service"
	"equipment-tracker-backend/internal/store"
)

var seedOnServe bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		gin.SetMode(gin.ReleaseMode)

		gormDB, err := db.Init(&cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		logger.Info("database initialized")

		if seedOnServe {
			if err := seedTypes(cmd.Context(), gormDB); err != nil {
				return err
			}
		}

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: newRouter(gormDB),
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("HTTP server starting", "port", cfg.Server.Port)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("HTTP server ListenAndServe: %w", err)
		case sig := <-stop:
			logger.Info("shutdown signal received", "signal", sig.String())
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server Shutdown: %w", err)
		}

		if sqlDB, err := gormDB.DB(); err == nil {
			sqlDB.Close()
		}
		logger.Info("server gracefully stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&seedOnServe, "seed", false, "insert the configured equipment types before serving")
}

func newRouter(gormDB *gorm.DB) http.Handler {
	appStore := store.NewGormStore(gormDB)

	rule := service.NewActivationRule(service.Rules{
		MaxDaysSinceCleaning: cfg.Lifecycle.MaxDaysSinceCleaning,
		Location:             cfg.Lifecycle.Location,
	}, nil)
	types := service.NewTypeService(appStore)
	equipment := service.NewEquipmentService(appStore, types, rule, cfg.Pagination.MaxSize, logger)
	maintenance := service.NewMaintenanceService(appStore, equipment, logger)

	handler := api.NewHandler(appStore, api.Services{
		Types:       types,
		Equipment:   equipment,
		Maintenance: maintenance,
	}, cfg.Pagination.DefaultSize, logger)
	return api.NewRouter(handler, &cfg.Server, logger)
}
