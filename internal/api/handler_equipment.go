package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment-tracker-backend/internal/parse"
)

// ListEquipment handles GET /api/equipment.
func (h *Handler) ListEquipment(c *gin.Context) {
	params, err := parse.ListParams(c.Request.URL.Query(), h.defaultPageSize)
	if err != nil {
		c.Error(err)
		return
	}

	page, err := h.equipment.List(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}

	content := make([]EquipmentResponse, 0, len(page.Content))
	for i := range page.Content {
		content = append(content, newEquipmentResponse(&page.Content[i]))
	}
	c.JSON(http.StatusOK, PageResponse[EquipmentResponse]{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		Last:          page.Last,
	})
}

// GetEquipment handles GET /api/equipment/:id.
func (h *Handler) GetEquipment(c *gin.Context) {
	id, err := parse.ID(c.Param("id"), "id")
	if err != nil {
		c.Error(err)
		return
	}

	e, err := h.equipment.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newEquipmentResponse(e))
}

// CreateEquipment handles POST /api/equipment.
func (h *Handler) CreateEquipment(c *gin.Context) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	e, err := h.equipment.Create(c.Request.Context(), req.input())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, newEquipmentResponse(e))
}

// UpdateEquipment handles PUT /api/equipment/:id.
func (h *Handler) UpdateEquipment(c *gin.Context) {
	id, err := parse.ID(c.Param("id"), "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	e, err := h.equipment.Update(c.Request.Context(), id, req.input())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newEquipmentResponse(e))
}

// DeleteEquipment handles DELETE /api/equipment/:id.
func (h *Handler) DeleteEquipment(c *gin.Context) {
	id, err := parse.ID(c.Param("id"), "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.equipment.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
