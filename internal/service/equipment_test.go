package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-tracker-backend/internal/apperr"
	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/store"
)

func defaultList() ListParams {
	return ListParams{Page: 0, Size: 10, SortBy: store.SortByID, SortDir: store.SortAsc}
}

func TestEquipmentService_Create(t *testing.T) {
	testCases := []struct {
		name     string
		input    EquipmentInput
		wantKind apperr.Kind
	}{
		{
			name:  "active cleaned 30 days ago",
			input: EquipmentInput{Name: "Pump A", TypeID: 1, Status: model.StatusActive, LastCleanedDate: daysAgo(30)},
		},
		{
			name:  "active cleaned 29 days ago",
			input: EquipmentInput{Name: "Pump A", TypeID: 1, Status: model.StatusActive, LastCleanedDate: daysAgo(29)},
		},
		{
			name:     "active cleaned 31 days ago",
			input:    EquipmentInput{Name: "Pump A", TypeID: 1, Status: model.StatusActive, LastCleanedDate: daysAgo(31)},
			wantKind: apperr.KindBusinessRule,
		},
		{
			name:     "active without date",
			input:    EquipmentInput{Name: "Pump A", TypeID: 1, Status: model.StatusActive},
			wantKind: apperr.KindBusinessRule,
		},
		{
			name:  "inactive without date",
			input: EquipmentInput{Name: "Fan B", TypeID: 2, Status: model.StatusInactive},
		},
		{
			name:  "under maintenance with stale date",
			input: EquipmentInput{Name: "Fan B", TypeID: 2, Status: model.StatusUnderMaintenance, LastCleanedDate: daysAgo(365)},
		},
		{
			name:     "unknown type",
			input:    EquipmentInput{Name: "Pump A", TypeID: 99, Status: model.StatusInactive},
			wantKind: apperr.KindNotFound,
		},
		{
			name:     "blank name",
			input:    EquipmentInput{Name: "   ", TypeID: 1, Status: model.StatusInactive},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "status outside the set",
			input:    EquipmentInput{Name: "Pump A", TypeID: 1, Status: "Retired"},
			wantKind: apperr.KindValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()

			e, err := env.equipment.Create(ctx, tc.input)
			if tc.wantKind != "" {
				assert.True(t, apperr.Is(err, tc.wantKind), "got %v", err)
				var count int64
				env.db.Model(&model.Equipment{}).Count(&count)
				assert.Equal(t, int64(0), count, "rejected create must not write")
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, e.ID)
			assert.Equal(t, tc.input.Status, e.Status)
			assert.NotEmpty(t, e.Type.Name)
			assert.False(t, e.CreatedAt.IsZero())

			got, err := env.equipment.GetByID(ctx, e.ID)
			require.NoError(t, err)
			assert.Equal(t, e.Name, got.Name)
			assert.Equal(t, tc.input.LastCleanedDate, got.LastCleanedDate)
		})
	}
}

func TestEquipmentService_CreateReportsAllInvalidFields(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.equipment.Create(context.Background(), EquipmentInput{})

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "name")
	assert.Contains(t, appErr.Fields, "typeId")
	assert.Contains(t, appErr.Fields, "status")
}

func TestEquipmentService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	original, err := env.equipment.Create(ctx, EquipmentInput{Name: "Pump A", TypeID: 1, Status: model.StatusInactive})
	require.NoError(t, err)

	t.Run("full replace", func(t *testing.T) {
		updated, err := env.equipment.Update(ctx, original.ID, EquipmentInput{
			Name: "Fan A", TypeID: 2, Status: model.StatusActive, LastCleanedDate: daysAgo(1),
		})
		require.NoError(t, err)
		assert.Equal(t, "Fan A", updated.Name)
		assert.Equal(t, "Fan", updated.Type.Name)
		assert.Equal(t, model.StatusActive, updated.Status)
		assert.Equal(t, original.CreatedAt.Unix(), updated.CreatedAt.Unix())
		assert.False(t, updated.UpdatedAt.Before(original.UpdatedAt))
	})

	t.Run("stale activation is rejected and nothing changes", func(t *testing.T) {
		before, err := env.equipment.GetByID(ctx, original.ID)
		require.NoError(t, err)

		_, err = env.equipment.Update(ctx, original.ID, EquipmentInput{
			Name: "Renamed", TypeID: 1, Status: model.StatusActive, LastCleanedDate: daysAgo(31),
		})
		assert.True(t, apperr.Is(err, apperr.KindBusinessRule), "got %v", err)

		after, err := env.equipment.GetByID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, before.Name, after.Name)
		assert.Equal(t, before.Status, after.Status)
	})

	t.Run("unknown type fails not found and leaves the record unchanged", func(t *testing.T) {
		before, err := env.equipment.GetByID(ctx, original.ID)
		require.NoError(t, err)

		_, err = env.equipment.Update(ctx, original.ID, EquipmentInput{
			Name: "Renamed", TypeID: 404, Status: model.StatusInactive,
		})
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperr.KindNotFound, appErr.Kind)
		assert.Contains(t, appErr.Message, "EquipmentType")

		after, err := env.equipment.GetByID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, before.Name, after.Name)
		assert.Equal(t, before.TypeID, after.TypeID)
		assert.Equal(t, before.Status, after.Status)
	})

	t.Run("unknown equipment", func(t *testing.T) {
		_, err := env.equipment.Update(ctx, 9999, EquipmentInput{Name: "X", TypeID: 1, Status: model.StatusInactive})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}

func TestEquipmentService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	e, err := env.equipment.Create(ctx, EquipmentInput{Name: "Pump A", TypeID: 1, Status: model.StatusInactive})
	require.NoError(t, err)

	require.NoError(t, env.equipment.Delete(ctx, e.ID))

	_, err = env.equipment.GetByID(ctx, e.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	err = env.equipment.Delete(ctx, e.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "second delete must fail, got %v", err)
}

func TestEquipmentService_List(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, in := range []EquipmentInput{
		{Name: "Pump A", TypeID: 1, Status: model.StatusActive, LastCleanedDate: daysAgo(2)},
		{Name: "Water Pump", TypeID: 1, Status: model.StatusInactive},
		{Name: "Fan B", TypeID: 2, Status: model.StatusUnderMaintenance},
	} {
		_, err := env.equipment.Create(ctx, in)
		require.NoError(t, err)
	}

	names := func(p *Page[model.Equipment]) []string {
		out := make([]string, 0, len(p.Content))
		for _, e := range p.Content {
			out = append(out, e.Name)
		}
		return out
	}

	t.Run("search is a case-insensitive substring", func(t *testing.T) {
		p := defaultList()
		p.Search = "pump"
		page, err := env.equipment.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, []string{"Pump A", "Water Pump"}, names(page))
		assert.Equal(t, int64(2), page.TotalElements)
	})

	t.Run("status filter", func(t *testing.T) {
		p := defaultList()
		p.Status = model.StatusUnderMaintenance
		page, err := env.equipment.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, []string{"Fan B"}, names(page))
	})

	t.Run("sort by name descending", func(t *testing.T) {
		p := defaultList()
		p.SortBy = store.SortByName
		p.SortDir = store.SortDesc
		page, err := env.equipment.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, []string{"Water Pump", "Pump A", "Fan B"}, names(page))
	})

	t.Run("pagination metadata", func(t *testing.T) {
		p := defaultList()
		p.Size = 2
		page, err := env.equipment.List(ctx, p)
		require.NoError(t, err)
		assert.Len(t, page.Content, 2)
		assert.Equal(t, 2, page.TotalPages)
		assert.False(t, page.Last)

		p.Page = 1
		page, err = env.equipment.List(ctx, p)
		require.NoError(t, err)
		assert.Len(t, page.Content, 1)
		assert.True(t, page.Last)
	})

	t.Run("page out of range", func(t *testing.T) {
		p := defaultList()
		p.Page = 7
		page, err := env.equipment.List(ctx, p)
		require.NoError(t, err)
		assert.Empty(t, page.Content)
		assert.True(t, page.Last)
		assert.Equal(t, int64(3), page.TotalElements)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("huge page index does not wrap around", func(t *testing.T) {
		for _, pageIndex := range []int{math.MaxInt/2 + 1, math.MaxInt} {
			p := defaultList()
			p.Page = pageIndex
			p.Size = 2
			page, err := env.equipment.List(ctx, p)
			require.NoError(t, err)
			assert.Empty(t, page.Content, "page %d", pageIndex)
			assert.True(t, page.Last)
			assert.Equal(t, int64(3), page.TotalElements)
			assert.Equal(t, 2, page.TotalPages)
		}
	})

	t.Run("invalid parameters", func(t *testing.T) {
		for i, p := range []ListParams{
			{Page: -1, Size: 10, SortBy: store.SortByID, SortDir: store.SortAsc},
			{Page: 0, Size: 0, SortBy: store.SortByID, SortDir: store.SortAsc},
			{Page: 0, Size: 101, SortBy: store.SortByID, SortDir: store.SortAsc},
			{Page: 0, Size: 10, SortBy: "type_id", SortDir: store.SortAsc},
			{Page: 0, Size: 10, SortBy: store.SortByID, SortDir: "up"},
			{Page: 0, Size: 10, SortBy: store.SortByID, SortDir: store.SortAsc, Status: "Broken"},
		} {
			t.Run(fmt.Sprint(i), func(t *testing.T) {
				_, err := env.equipment.List(ctx, p)
				assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
			})
		}
	})
}

func TestNewPage(t *testing.T) {
	testCases := []struct {
		page, size     int
		total          int64
		wantTotalPages int
		wantLast       bool
	}{
		{0, 10, 0, 0, true},
		{0, 10, 10, 1, true},
		{0, 10, 11, 2, false},
		{1, 10, 11, 2, true},
		{5, 10, 11, 2, true},
		{math.MaxInt, 10, 11, 2, true},
	}
	for _, tc := range testCases {
		p := newPage([]int{}, tc.page, tc.size, tc.total)
		assert.Equal(t, tc.wantTotalPages, p.TotalPages, "%+v", tc)
		assert.Equal(t, tc.wantLast, p.Last, "%+v", tc)
	}
}
