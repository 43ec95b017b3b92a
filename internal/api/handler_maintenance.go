package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment-tracker-backend/internal/parse"
	"equipment-tracker-backend/internal/service"
)

// LogMaintenance handles POST /api/maintenance.
func (h *Handler) LogMaintenance(c *gin.Context) {
	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	l, err := h.maintenance.LogMaintenance(c.Request.Context(), service.MaintenanceInput{
		EquipmentID:     req.EquipmentID,
		MaintenanceDate: *req.MaintenanceDate,
		Notes:           req.Notes,
		PerformedBy:     req.PerformedBy,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, newMaintenanceLogResponse(l))
}

// GetMaintenanceHistory handles GET /api/equipment/:id/maintenance.
func (h *Handler) GetMaintenanceHistory(c *gin.Context) {
	id, err := parse.ID(c.Param("id"), "id")
	if err != nil {
		c.Error(err)
		return
	}

	logs, err := h.maintenance.GetHistory(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	responses := make([]MaintenanceLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, newMaintenanceLogResponse(&logs[i]))
	}
	c.JSON(http.StatusOK, responses)
}
