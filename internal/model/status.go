package model

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a piece of equipment.
type Status string

const (
	StatusActive           Status = "Active"
	StatusInactive         Status = "Inactive"
	StatusUnderMaintenance Status = "Under Maintenance"
)

// Statuses lists every allowed status in display order.
var Statuses = []Status{StatusActive, StatusInactive, StatusUnderMaintenance}

// Valid reports whether s is one of the allowed statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusUnderMaintenance:
		return true
	}
	return false
}

// ParseStatus returns the Status matching raw exactly (after trimming spaces).
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", fmt.Errorf("status must be one of: %s", StatusList())
	}
	return s, nil
}

// StatusList renders the allowed statuses as a comma separated list.
func StatusList() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
