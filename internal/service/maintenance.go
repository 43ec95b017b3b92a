package service

import (
	"context"
	"log/slog"
	"strings"

	"equipment-tracker-backend/internal/apperr"
	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/store"
)

// lifecycle is the part of EquipmentService the recorder drives. It is
// unexported so a fresh cleaning can only be issued from this package.
type lifecycle interface {
	findOrThrow(ctx context.Context, st store.Store, id int64) (*model.Equipment, error)
	applyFreshCleaning(ctx context.Context, st store.Store, e *model.Equipment, cmd FreshCleaning) error
}

// MaintenanceInput describes one maintenance event.
type MaintenanceInput struct {
	EquipmentID     int64
	MaintenanceDate model.Date
	Notes           string
	PerformedBy     string
}

// MaintenanceService appends maintenance logs and returns equipment to
// service as part of the same transaction.
type MaintenanceService struct {
	store     store.Store
	equipment lifecycle
	log       *slog.Logger
}

func NewMaintenanceService(s store.Store, equipment *EquipmentService, log *slog.Logger) *MaintenanceService {
	if log == nil {
		log = slog.Default()
	}
	return &MaintenanceService{store: s, equipment: equipment, log: log}
}

// LogMaintenance stores a new log and marks the equipment active with the
// maintenance date as its last cleaned date. Either both writes commit or
// neither does. The returned log carries the updated equipment.
func (ms *MaintenanceService) LogMaintenance(ctx context.Context, in MaintenanceInput) (*model.MaintenanceLog, error) {
	in.PerformedBy = strings.TrimSpace(in.PerformedBy)

	fields := map[string]string{}
	if in.EquipmentID <= 0 {
		fields["equipmentId"] = "Equipment ID is required"
	}
	if in.MaintenanceDate.IsZero() {
		fields["maintenanceDate"] = "Maintenance date is required"
	}
	if in.PerformedBy == "" {
		fields["performedBy"] = "Performed by is required"
	}
	if len(fields) > 0 {
		return nil, apperr.Validation("One or more fields are invalid", fields)
	}

	var entry *model.MaintenanceLog
	err := ms.store.Transaction(ctx, func(tx store.Store) error {
		e, err := ms.equipment.findOrThrow(ctx, tx, in.EquipmentID)
		if err != nil {
			return err
		}

		l := &model.MaintenanceLog{
			EquipmentID:     e.ID,
			MaintenanceDate: in.MaintenanceDate,
			Notes:           in.Notes,
			PerformedBy:     in.PerformedBy,
		}
		if err := tx.CreateMaintenanceLog(ctx, l); err != nil {
			return err
		}

		if err := ms.equipment.applyFreshCleaning(ctx, tx, e, FreshCleaning{Date: in.MaintenanceDate}); err != nil {
			return err
		}
		l.Equipment = *e
		entry = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	ms.log.InfoContext(ctx, "maintenance logged",
		"equipment_id", in.EquipmentID,
		"maintenance_log_id", entry.ID,
		"maintenance_date", in.MaintenanceDate.String())
	return entry, nil
}

// GetHistory returns the equipment's logs ordered by maintenance date, newest
// first, ties broken by creation time. Each log carries the equipment.
func (ms *MaintenanceService) GetHistory(ctx context.Context, equipmentID int64) ([]model.MaintenanceLog, error) {
	var logs []model.MaintenanceLog
	err := ms.store.Transaction(ctx, func(tx store.Store) error {
		e, err := ms.equipment.findOrThrow(ctx, tx, equipmentID)
		if err != nil {
			return err
		}
		logs, err = tx.ListMaintenanceLogs(ctx, equipmentID)
		if err != nil {
			return err
		}
		for i := range logs {
			logs[i].Equipment = *e
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}
