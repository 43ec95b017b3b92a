package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"gorm.io/gorm"

	"equipment-tracker-backend/internal/db/dbtest"
	"equipment-tracker-backend/internal/store"
)

type testEnv struct {
	db          *gorm.DB
	store       store.Store
	types       *TypeService
	equipment   *EquipmentService
	maintenance *MaintenanceService
}

// newTestEnv wires the services against an in-memory database seeded with
// the types Pump (id 1) and Fan (id 2), with the clock fixed at fixedNow.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gormDB := dbtest.NewSeeded(t, "Pump", "Fan")
	return newTestEnvWithStore(t, gormDB, store.NewGormStore(gormDB))
}

func newTestEnvWithStore(t *testing.T, gormDB *gorm.DB, s store.Store) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rule := NewActivationRule(Rules{MaxDaysSinceCleaning: 30, Location: time.UTC}, fixedClock)
	types := NewTypeService(s)
	equipment := NewEquipmentService(s, types, rule, 100, log)
	return &testEnv{
		db:          gormDB,
		store:       s,
		types:       types,
		equipment:   equipment,
		maintenance: NewMaintenanceService(s, equipment, log),
	}
}
