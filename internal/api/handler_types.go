package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListEquipmentTypes handles GET /api/equipment-types.
func (h *Handler) ListEquipmentTypes(c *gin.Context) {
	types, err := h.types.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	responses := make([]EquipmentTypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, EquipmentTypeResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt})
	}
	c.JSON(http.StatusOK, responses)
}
