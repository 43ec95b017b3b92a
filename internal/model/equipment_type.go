package model

import "time"

// EquipmentType is a named category of equipment. Rows are seeded and never
// updated through the API.
type EquipmentType struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:100;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (EquipmentType) TableName() string { return "equipment_types" }
