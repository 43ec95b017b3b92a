package model

import "time"

// MaintenanceLog is an append-only record of a cleaning or maintenance event.
type MaintenanceLog struct {
	ID              int64     `gorm:"primaryKey"`
	EquipmentID     int64     `gorm:"index;not null"`
	MaintenanceDate Date      `gorm:"type:date;not null"`
	Notes           string    `gorm:"type:text"`
	PerformedBy     string    `gorm:"size:255;not null"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime"`

	// Associations
	Equipment Equipment `gorm:"constraint:OnDelete:CASCADE"`
}

func (MaintenanceLog) TableName() string { return "maintenance_logs" }
