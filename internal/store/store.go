package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"equipment-tracker-backend/internal/apperr"
	"equipment-tracker-backend/internal/model"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for all database operations.
type Store interface {
	// Transaction runs fn inside a single database transaction. The Store
	// passed to fn is bound to that transaction; returning an error rolls it back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error

	ListEquipmentTypes(ctx context.Context) ([]model.EquipmentType, error)
	GetEquipmentType(ctx context.Context, id int64) (*model.EquipmentType, error)

	ListEquipment(ctx context.Context, q EquipmentQuery) ([]model.Equipment, int64, error)
	GetEquipment(ctx context.Context, id int64) (*model.Equipment, error)
	CreateEquipment(ctx context.Context, e *model.Equipment) error
	UpdateEquipment(ctx context.Context, e *model.Equipment) error
	DeleteEquipment(ctx context.Context, id int64) error

	CreateMaintenanceLog(ctx context.Context, l *model.MaintenanceLog) error
	ListMaintenanceLogs(ctx context.Context, equipmentID int64) ([]model.MaintenanceLog, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *gormStore) ListEquipmentTypes(ctx context.Context) ([]model.EquipmentType, error) {
	var types []model.EquipmentType
	if err := s.db.WithContext(ctx).Order("id").Find(&types).Error; err != nil {
		return nil, translate("list equipment types", err)
	}
	return types, nil
}

func (s *gormStore) GetEquipmentType(ctx context.Context, id int64) (*model.EquipmentType, error) {
	var t model.EquipmentType
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, translate(fmt.Sprintf("get equipment type %d", id), err)
	}
	return &t, nil
}

// ListEquipment returns one page of equipment matching q together with the
// total number of matching rows.
func (s *gormStore) ListEquipment(ctx context.Context, q EquipmentQuery) ([]model.Equipment, int64, error) {
	column, ok := sortColumns[q.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported sort field %q", q.SortBy)
	}

	filtered := func() *gorm.DB {
		tx := s.db.WithContext(ctx).Model(&model.Equipment{})
		if q.Search != "" {
			tx = tx.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(q.Search))+"%")
		}
		if q.Status != "" {
			tx = tx.Where("status = ?", q.Status)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, translate("count equipment", err)
	}
	if total == 0 || int64(q.Offset) >= total {
		return []model.Equipment{}, total, nil
	}

	desc := q.SortDir == SortDesc
	var items []model.Equipment
	err := filtered().
		Preload("Type").
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: column}, Desc: desc},
			{Column: clause.Column{Name: "id"}, Desc: desc},
		}}).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, translate("list equipment", err)
	}
	return items, total, nil
}

func (s *gormStore) GetEquipment(ctx context.Context, id int64) (*model.Equipment, error) {
	var e model.Equipment
	if err := s.db.WithContext(ctx).Preload("Type").First(&e, id).Error; err != nil {
		return nil, translate(fmt.Sprintf("get equipment %d", id), err)
	}
	return &e, nil
}

func (s *gormStore) CreateEquipment(ctx context.Context, e *model.Equipment) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error; err != nil {
		return translate("create equipment", err)
	}
	return nil
}

// UpdateEquipment writes the mutable columns of e and refreshes updated_at.
func (s *gormStore) UpdateEquipment(ctx context.Context, e *model.Equipment) error {
	result := s.db.WithContext(ctx).
		Model(e).
		Select("name", "type_id", "status", "last_cleaned_date", "updated_at").
		Updates(e)
	if result.Error != nil {
		return translate(fmt.Sprintf("update equipment %d", e.ID), result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update equipment %d: %w", e.ID, ErrNotFound)
	}
	return nil
}

// DeleteEquipment removes the equipment and all of its maintenance logs in
// one transaction, whether or not the schema carries the cascade.
func (s *gormStore) DeleteEquipment(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("equipment_id = ?", id).Delete(&model.MaintenanceLog{}).Error; err != nil {
			return translate(fmt.Sprintf("delete maintenance logs of equipment %d", id), err)
		}
		result := tx.Delete(&model.Equipment{}, id)
		if result.Error != nil {
			return translate(fmt.Sprintf("delete equipment %d", id), result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("delete equipment %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (s *gormStore) CreateMaintenanceLog(ctx context.Context, l *model.MaintenanceLog) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error; err != nil {
		return translate(fmt.Sprintf("create maintenance log for equipment %d", l.EquipmentID), err)
	}
	return nil
}

// ListMaintenanceLogs returns the logs of one equipment, newest first.
func (s *gormStore) ListMaintenanceLogs(ctx context.Context, equipmentID int64) ([]model.MaintenanceLog, error) {
	var logs []model.MaintenanceLog
	err := s.db.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("maintenance_date DESC").
		Order("created_at DESC").
		Order("id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, translate(fmt.Sprintf("list maintenance logs of equipment %d", equipmentID), err)
	}
	return logs, nil
}

// translate classifies a gorm error. Missing rows become ErrNotFound and
// integrity constraint violations become apperr Conflict errors.
func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return apperr.Conflict(fmt.Errorf("%s: %w", op, err))
	}

	// SQLSTATE class 23 is integrity constraint violation.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return apperr.Conflict(fmt.Errorf("%s: %w", op, err))
	}
	// SQLite reports UNIQUE, FOREIGN KEY and CHECK failures this way when the
	// dialector has no translation for the extended code.
	if strings.Contains(err.Error(), "constraint failed") {
		return apperr.Conflict(fmt.Errorf("%s: %w", op, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
