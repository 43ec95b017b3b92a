package service

import (
	"context"
	"errors"

	"equipment-tracker-backend/internal/apperr"
	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/store"
)

// TypeService is the read-only equipment type catalog.
type TypeService struct {
	store store.Store
}

func NewTypeService(s store.Store) *TypeService {
	return &TypeService{store: s}
}

// List returns every equipment type in id order.
func (ts *TypeService) List(ctx context.Context) ([]model.EquipmentType, error) {
	return ts.store.ListEquipmentTypes(ctx)
}

// resolveOrThrow loads the type through st, which may be a transaction.
func (ts *TypeService) resolveOrThrow(ctx context.Context, st store.Store, id int64) (*model.EquipmentType, error) {
	t, err := st.GetEquipmentType(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("EquipmentType", id)
	}
	return t, err
}
