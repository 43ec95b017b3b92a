// Package dbtest provides isolated in-memory SQLite databases for tests.
package dbtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"equipment-tracker-backend/config"
	"equipment-tracker-backend/internal/db"
)

var counter atomic.Int64

// New returns a migrated in-memory database private to the calling test.
// It is closed when the test finishes.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, counter.Add(1))

	gormDB, err := db.Init(&config.DatabaseConfig{DSN: dsn, MaxOpenConns: 1, LogLevel: "silent"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return gormDB
}

// NewSeeded is New plus the given equipment types, inserted in order so their
// ids are 1..len(types).
func NewSeeded(t testing.TB, types ...string) *gorm.DB {
	t.Helper()

	gormDB := New(t)
	_, err := db.SeedEquipmentTypes(context.Background(), gormDB, types)
	require.NoError(t, err)
	return gormDB
}
