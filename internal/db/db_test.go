package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestSqliteDSN(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"equipment.db", "equipment.db?_foreign_keys=1"},
		{"file:test?mode=memory&cache=shared", "file:test?mode=memory&cache=shared&_foreign_keys=1"},
		{"equipment.db?_foreign_keys=0", "equipment.db?_foreign_keys=0"},
		{"equipment.db?_fk=1", "equipment.db?_fk=1"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, sqliteDSN(tc.in))
		})
	}
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, isPostgres("postgres://user@localhost/db"))
	assert.True(t, isPostgres("postgresql://user@localhost/db"))
	assert.False(t, isPostgres("equipment.db"))
	assert.False(t, isPostgres("file::memory:"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Error, parseLogLevel("ERROR"))
	assert.Equal(t, logger.Info, parseLogLevel("info"))
	assert.Equal(t, logger.Warn, parseLogLevel("warn"))
	assert.Equal(t, logger.Warn, parseLogLevel(""))
}
