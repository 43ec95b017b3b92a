package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_DaysUntil(t *testing.T) {
	testCases := []struct {
		from, to string
		want     int
	}{
		{"2024-06-30", "2024-06-30", 0},
		{"2024-05-31", "2024-06-30", 30},
		{"2024-06-30", "2024-05-31", -30},
		{"2024-02-28", "2024-03-01", 2},
		{"1500-01-01", "2024-06-30", 191568},
		{"0001-01-01", "9999-12-31", 3652058},
	}
	for _, tc := range testCases {
		got := MustParseDate(tc.from).DaysUntil(MustParseDate(tc.to))
		assert.Equal(t, tc.want, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, MustParseDate("2024-06-01"), d)

	require.NoError(t, d.Scan("2024-06-02T00:00:00Z"))
	assert.Equal(t, MustParseDate("2024-06-02"), d)

	require.NoError(t, d.Scan([]byte("2024-06-03")))
	assert.Equal(t, MustParseDate("2024-06-03"), d)

	assert.Error(t, d.Scan(42))
}

func TestDate_JSON(t *testing.T) {
	b, err := json.Marshal(MustParseDate("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-01"`, string(b))

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"01/06/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240601`), &d))
}
