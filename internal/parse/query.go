// Package parse turns raw request strings into typed service parameters.
package parse

import (
	"net/url"
	"strconv"
	"strings"

	"equipment-tracker-backend/internal/apperr"
	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/service"
	"equipment-tracker-backend/internal/store"
)

// Defaults applied to absent list parameters.
const (
	DefaultSortBy  = store.SortByCreatedAt
	DefaultSortDir = store.SortDesc
)

// ListParams reads search, status, page, size, sortBy and sortDir from q.
// Absent values take their defaults; page and size must be integers. Range
// and enumeration checks are left to the service.
func ListParams(q url.Values, defaultSize int) (service.ListParams, error) {
	fields := map[string]string{}

	page, err := intParam(q, "page", 0)
	if err != nil {
		fields["page"] = "Page must be an integer"
	}
	size, err := intParam(q, "size", defaultSize)
	if err != nil {
		fields["size"] = "Size must be an integer"
	}
	if len(fields) > 0 {
		return service.ListParams{}, apperr.Validation("One or more fields are invalid", fields)
	}

	p := service.ListParams{
		Search:  strings.TrimSpace(q.Get("search")),
		Status:  model.Status(strings.TrimSpace(q.Get("status"))),
		Page:    page,
		Size:    size,
		SortBy:  DefaultSortBy,
		SortDir: DefaultSortDir,
	}
	if v := strings.TrimSpace(q.Get("sortBy")); v != "" {
		p.SortBy = store.SortField(v)
	}
	if v := strings.TrimSpace(q.Get("sortDir")); v != "" {
		p.SortDir = store.SortDirection(v)
	}
	return p, nil
}

// ID parses a positive int64 path parameter.
func ID(raw, field string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidField(field, "Must be a positive integer")
	}
	return id, nil
}

func intParam(q url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
