package store

import (
	"strings"

	"equipment-tracker-backend/internal/model"
)

// SortField is a logical equipment field a list can be ordered by.
type SortField string

const (
	SortByID              SortField = "id"
	SortByName            SortField = "name"
	SortByStatus          SortField = "status"
	SortByTypeID          SortField = "typeId"
	SortByLastCleanedDate SortField = "lastCleanedDate"
	SortByCreatedAt       SortField = "createdAt"
	SortByUpdatedAt       SortField = "updatedAt"
)

// sortColumns translates each SortField to its physical column. Fields not
// listed here cannot reach a query.
var sortColumns = map[SortField]string{
	SortByID:              "id",
	SortByName:            "name",
	SortByStatus:          "status",
	SortByTypeID:          "type_id",
	SortByLastCleanedDate: "last_cleaned_date",
	SortByCreatedAt:       "created_at",
	SortByUpdatedAt:       "updated_at",
}

// SortFields lists the accepted sort fields in a stable order.
var SortFields = []SortField{
	SortByID, SortByName, SortByStatus, SortByTypeID,
	SortByLastCleanedDate, SortByCreatedAt, SortByUpdatedAt,
}

// ParseSortField reports whether raw names a known sort field.
func ParseSortField(raw string) (SortField, bool) {
	f := SortField(raw)
	_, ok := sortColumns[f]
	return f, ok
}

// SortDirection is ascending or descending order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection accepts asc or desc in any case.
func ParseSortDirection(raw string) (SortDirection, bool) {
	switch d := SortDirection(strings.ToLower(strings.TrimSpace(raw))); d {
	case SortAsc, SortDesc:
		return d, true
	}
	return "", false
}

// EquipmentQuery filters and pages an equipment listing. Zero Search and
// Status mean no filter.
type EquipmentQuery struct {
	Search  string
	Status  model.Status
	Offset  int
	Limit   int
	SortBy  SortField
	SortDir SortDirection
}
