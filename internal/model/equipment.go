package model

import "time"

// Equipment represents a physical asset tracked by the facility.
type Equipment struct {
	ID              int64     `gorm:"primaryKey"`
	Name            string    `gorm:"size:255;not null"`
	TypeID          int64     `gorm:"index;not null"`
	Status          Status    `gorm:"size:20;not null;index;check:chk_equipment_status,status IN ('Active','Inactive','Under Maintenance')"`
	LastCleanedDate *Date     `gorm:"type:date"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime"`

	// Associations
	Type EquipmentType `gorm:"foreignKey:TypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Equipment) TableName() string { return "equipment" }
