package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"equipment-tracker-backend/config"
	"equipment-tracker-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.ServerConfig, log *slog.Logger) *gin.Engine {
	registerValidations()

	r := gin.New()
	r.Use(mw.RequestLogger(log), mw.Recovery(log), ErrorHandler(log))

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)

	// The type catalog has no write path, so its responses can be cached.
	ttl := cfg.CacheTTL()
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)

	api := r.Group("/api")
	api.GET("/health", h.Health)

	api.Use(rateLimiter)
	{
		api.GET("/equipment", h.ListEquipment)
		api.POST("/equipment", h.CreateEquipment)
		api.GET("/equipment/:id", h.GetEquipment)
		api.PUT("/equipment/:id", h.UpdateEquipment)
		api.DELETE("/equipment/:id", h.DeleteEquipment)
		api.GET("/equipment/:id/maintenance", h.GetMaintenanceHistory)

		api.GET("/equipment-types", caching, h.ListEquipmentTypes)

		api.POST("/maintenance", h.LogMaintenance)
	}

	return r
}
