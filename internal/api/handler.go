package api

import (
	"log/slog"

	"equipment-tracker-backend/internal/service"
	"equipment-tracker-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store           store.Store
	types           *service.TypeService
	equipment       *service.EquipmentService
	maintenance     *service.MaintenanceService
	defaultPageSize int
	log             *slog.Logger
}

// Services bundles what the handlers call into.
type Services struct {
	Types       *service.TypeService
	Equipment   *service.EquipmentService
	Maintenance *service.MaintenanceService
}

// NewHandler creates a new API handler. s is only used for health checks.
func NewHandler(s store.Store, svc Services, defaultPageSize int, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		store:           s,
		types:           svc.Types,
		equipment:       svc.Equipment,
		maintenance:     svc.Maintenance,
		defaultPageSize: defaultPageSize,
		log:             log,
	}
}
