package api

import (
	"time"

	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/service"
)

type equipmentRequest struct {
	Name            string       `json:"name" binding:"required,max=255"`
	TypeID          int64        `json:"typeId" binding:"required,gt=0"`
	Status          model.Status `json:"status" binding:"required,equipment_status"`
	LastCleanedDate *model.Date  `json:"lastCleanedDate"`
}

func (r equipmentRequest) input() service.EquipmentInput {
	return service.EquipmentInput{
		Name:            r.Name,
		TypeID:          r.TypeID,
		Status:          r.Status,
		LastCleanedDate: r.LastCleanedDate,
	}
}

type maintenanceRequest struct {
	EquipmentID     int64       `json:"equipmentId" binding:"required,gt=0"`
	MaintenanceDate *model.Date `json:"maintenanceDate" binding:"required"`
	Notes           string      `json:"notes"`
	PerformedBy     string      `json:"performedBy" binding:"required,max=255"`
}

// EquipmentResponse is the wire form of an equipment.
type EquipmentResponse struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	TypeID          int64        `json:"typeId"`
	TypeName        string       `json:"typeName"`
	Status          model.Status `json:"status"`
	LastCleanedDate *model.Date  `json:"lastCleanedDate"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

func newEquipmentResponse(e *model.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:              e.ID,
		Name:            e.Name,
		TypeID:          e.TypeID,
		TypeName:        e.Type.Name,
		Status:          e.Status,
		LastCleanedDate: e.LastCleanedDate,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// EquipmentTypeResponse is the wire form of an equipment type.
type EquipmentTypeResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// MaintenanceLogResponse is the wire form of a maintenance log.
type MaintenanceLogResponse struct {
	ID              int64      `json:"id"`
	EquipmentID     int64      `json:"equipmentId"`
	EquipmentName   string     `json:"equipmentName"`
	MaintenanceDate model.Date `json:"maintenanceDate"`
	Notes           string     `json:"notes"`
	PerformedBy     string     `json:"performedBy"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func newMaintenanceLogResponse(l *model.MaintenanceLog) MaintenanceLogResponse {
	return MaintenanceLogResponse{
		ID:              l.ID,
		EquipmentID:     l.EquipmentID,
		EquipmentName:   l.Equipment.Name,
		MaintenanceDate: l.MaintenanceDate,
		Notes:           l.Notes,
		PerformedBy:     l.PerformedBy,
		CreatedAt:       l.CreatedAt,
	}
}

// PageResponse is one page of a listing.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}
