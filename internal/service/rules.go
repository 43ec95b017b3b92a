package service

import (
	"time"

	"equipment-tracker-backend/internal/apperr"
	"equipment-tracker-backend/internal/model"
)

// Rules holds the tunable parameters of the activation rule.
type Rules struct {
	// ActivationStatus is the status that requires a recent cleaning.
	ActivationStatus model.Status
	// MaxDaysSinceCleaning is the largest allowed whole-day gap between the
	// last cleaning and today. A gap of exactly this many days is allowed.
	MaxDaysSinceCleaning int
	// Location is the service's local clock used to determine "today".
	Location *time.Location
}

// DefaultRules returns the rule set used when nothing is configured.
func DefaultRules() Rules {
	return Rules{
		ActivationStatus:     model.StatusActive,
		MaxDaysSinceCleaning: 30,
		Location:             time.Local,
	}
}

// Clock returns the current time.
type Clock func() time.Time

// ActivationRule decides whether a write may set the activation status.
type ActivationRule struct {
	rules Rules
	now   Clock
}

// NewActivationRule builds the rule. A nil clock means time.Now.
func NewActivationRule(rules Rules, now Clock) ActivationRule {
	if now == nil {
		now = time.Now
	}
	if rules.Location == nil {
		rules.Location = time.Local
	}
	if rules.ActivationStatus == "" {
		rules.ActivationStatus = model.StatusActive
	}
	return ActivationRule{rules: rules, now: now}
}

// Today is the current calendar day in the rule's location.
func (r ActivationRule) Today() model.Date {
	return model.DateOf(r.now().In(r.rules.Location))
}

// Check returns a BusinessRuleViolation when status is the activation status
// and lastCleaned is missing or older than the allowed window. Any other
// status passes.
func (r ActivationRule) Check(status model.Status, lastCleaned *model.Date) error {
	if status != r.rules.ActivationStatus {
		return nil
	}
	if lastCleaned == nil || lastCleaned.IsZero() {
		return apperr.BusinessRule(
			"Cannot set status to '%s': Last Cleaned Date is required when activating equipment.",
			r.rules.ActivationStatus)
	}

	daysSince := lastCleaned.DaysUntil(r.Today())
	if daysSince > r.rules.MaxDaysSinceCleaning {
		return apperr.BusinessRule(
			"Cannot set status to '%s': Last Cleaned Date is %d days ago. Equipment must have been cleaned within the last %d days to be marked %s.",
			r.rules.ActivationStatus, daysSince, r.rules.MaxDaysSinceCleaning, r.rules.ActivationStatus)
	}
	return nil
}
