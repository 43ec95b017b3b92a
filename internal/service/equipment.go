package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"equipment-tracker-backend/internal/apperr"
	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/store"
)

// EquipmentInput carries the four mutable equipment fields of a create or
// full-replace update.
type EquipmentInput struct {
	Name            string
	TypeID          int64
	Status          model.Status
	LastCleanedDate *model.Date
}

// ListParams selects one page of equipment. Empty Search and Status mean no
// filter.
type ListParams struct {
	Search  string
	Status  model.Status
	Page    int
	Size    int
	SortBy  store.SortField
	SortDir store.SortDirection
}

// Page is one page of results plus pagination metadata.
type Page[T any] struct {
	Content       []T
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
	Last          bool
}

func newPage[T any](content []T, page, size int, total int64) *Page[T] {
	totalPages := int((total + int64(size) - 1) / int64(size))
	return &Page[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
	}
}

// EquipmentService owns the equipment lifecycle: create, update and delete
// under the activation rule, and the fresh-cleaning mutation issued by
// maintenance logging.
type EquipmentService struct {
	store       store.Store
	types       *TypeService
	rule        ActivationRule
	maxPageSize int
	log         *slog.Logger
}

// NewEquipmentService wires the lifecycle manager. maxPageSize <= 0 means no
// upper bound on page size.
func NewEquipmentService(s store.Store, types *TypeService, rule ActivationRule, maxPageSize int, log *slog.Logger) *EquipmentService {
	if log == nil {
		log = slog.Default()
	}
	return &EquipmentService{
		store:       s,
		types:       types,
		rule:        rule,
		maxPageSize: maxPageSize,
		log:         log,
	}
}

// List returns a filtered, sorted page of equipment.
func (s *EquipmentService) List(ctx context.Context, p ListParams) (*Page[model.Equipment], error) {
	fields := map[string]string{}
	if p.Page < 0 {
		fields["page"] = "Page must be zero or greater"
	}
	if p.Size <= 0 {
		fields["size"] = "Size must be greater than zero"
	} else if s.maxPageSize > 0 && p.Size > s.maxPageSize {
		fields["size"] = "Size must not exceed " + strconv.Itoa(s.maxPageSize)
	}
	if p.Status != "" && !p.Status.Valid() {
		fields["status"] = "Status must be one of: " + model.StatusList()
	}
	sortBy, ok := store.ParseSortField(string(p.SortBy))
	if !ok {
		fields["sortBy"] = "Sort field must be one of: " + sortFieldList()
	}
	sortDir, ok := store.ParseSortDirection(string(p.SortDir))
	if !ok {
		fields["sortDir"] = "Sort direction must be asc or desc"
	}
	if len(fields) > 0 {
		return nil, apperr.Validation("One or more fields are invalid", fields)
	}

	items, total, err := s.store.ListEquipment(ctx, store.EquipmentQuery{
		Search:  strings.TrimSpace(p.Search),
		Status:  p.Status,
		Offset:  offsetOf(p.Page, p.Size),
		Limit:   p.Size,
		SortBy:  sortBy,
		SortDir: sortDir,
	})
	if err != nil {
		return nil, err
	}
	return newPage(items, p.Page, p.Size, total), nil
}

// GetByID returns one equipment with its type.
func (s *EquipmentService) GetByID(ctx context.Context, id int64) (*model.Equipment, error) {
	return s.findOrThrow(ctx, s.store, id)
}

// Create validates in, enforces the activation rule and persists a new
// equipment.
func (s *EquipmentService) Create(ctx context.Context, in EquipmentInput) (*model.Equipment, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	var created *model.Equipment
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		t, err := s.types.resolveOrThrow(ctx, tx, in.TypeID)
		if err != nil {
			return err
		}
		if err := s.rule.Check(in.Status, in.LastCleanedDate); err != nil {
			return err
		}

		e := &model.Equipment{
			Name:            in.Name,
			TypeID:          t.ID,
			Status:          in.Status,
			LastCleanedDate: in.LastCleanedDate,
		}
		if err := tx.CreateEquipment(ctx, e); err != nil {
			return err
		}
		e.Type = *t
		created = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "equipment created", "equipment_id", created.ID, "status", created.Status)
	return created, nil
}

// Update replaces name, type, status and last cleaned date of an existing
// equipment under the same rules as Create.
func (s *EquipmentService) Update(ctx context.Context, id int64, in EquipmentInput) (*model.Equipment, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	var updated *model.Equipment
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		e, err := s.findOrThrow(ctx, tx, id)
		if err != nil {
			return err
		}
		t, err := s.types.resolveOrThrow(ctx, tx, in.TypeID)
		if err != nil {
			return err
		}
		if err := s.rule.Check(in.Status, in.LastCleanedDate); err != nil {
			return err
		}

		e.Name = in.Name
		e.TypeID = t.ID
		e.Status = in.Status
		e.LastCleanedDate = in.LastCleanedDate
		if err := tx.UpdateEquipment(ctx, e); err != nil {
			return notFoundAs(err, "Equipment", id)
		}
		e.Type = *t
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "equipment updated", "equipment_id", id, "status", updated.Status)
	return updated, nil
}

// Delete removes the equipment and all of its maintenance logs.
func (s *EquipmentService) Delete(ctx context.Context, id int64) error {
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		return notFoundAs(tx.DeleteEquipment(ctx, id), "Equipment", id)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "equipment deleted", "equipment_id", id)
	return nil
}

// FreshCleaning records that equipment was cleaned on Date and is back in
// service.
type FreshCleaning struct {
	Date model.Date
}

// applyFreshCleaning sets the activation status and last cleaned date without
// consulting the activation rule: Date is the cleaning just logged.
func (s *EquipmentService) applyFreshCleaning(ctx context.Context, st store.Store, e *model.Equipment, cmd FreshCleaning) error {
	date := cmd.Date
	e.Status = s.rule.rules.ActivationStatus
	e.LastCleanedDate = &date
	return notFoundAs(st.UpdateEquipment(ctx, e), "Equipment", e.ID)
}

// findOrThrow loads the equipment through st, which may be a transaction.
func (s *EquipmentService) findOrThrow(ctx context.Context, st store.Store, id int64) (*model.Equipment, error) {
	e, err := st.GetEquipment(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Equipment", id)
	}
	return e, nil
}

func validateInput(in *EquipmentInput) error {
	in.Name = strings.TrimSpace(in.Name)

	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "Equipment name is required"
	}
	if in.TypeID <= 0 {
		fields["typeId"] = "Equipment type is required"
	}
	if !in.Status.Valid() {
		fields["status"] = "Status must be one of: " + model.StatusList()
	}
	if len(fields) > 0 {
		return apperr.Validation("One or more fields are invalid", fields)
	}
	return nil
}

// offsetOf returns page*size, saturating at math.MaxInt so a huge page index
// lands past the end instead of wrapping negative.
func offsetOf(page, size int) int {
	if page > math.MaxInt/size {
		return math.MaxInt
	}
	return page * size
}

func notFoundAs(err error, entity string, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

func sortFieldList() string {
	names := make([]string, len(store.SortFields))
	for i, f := range store.SortFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
