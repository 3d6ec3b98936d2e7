package hr

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// VALIDATION - Collect all violations, reject once
// =============================================================================

// Violation is one failed input check.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string { return v.Field + ": " + v.Message }

// ValidationError carries every violation found for a request, in check
// order. Callers get all problems at once instead of one per attempt.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// invalid returns a *ValidationError when any violation was collected.
// Returned as a plain error so a nil result stays a nil interface.
func invalid(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// =============================================================================
// CHECKS
// =============================================================================

func checkPositiveID(id payroll.EmployeeID, field string, violations *[]Violation) {
	if id <= 0 {
		*violations = append(*violations, Violation{Field: field, Message: "must be a positive integer"})
	}
}

func checkNotBlank(value, field string, violations *[]Violation) {
	if strings.TrimSpace(value) == "" {
		*violations = append(*violations, Violation{Field: field, Message: "cannot be empty or whitespace"})
	}
}

func checkPositiveAmount(value decimal.Decimal, field string, violations *[]Violation) {
	if !value.IsPositive() {
		*violations = append(*violations, Violation{Field: field, Message: "must be a positive amount"})
	}
}

func checkNotInPast(d, today payroll.Date, field string, violations *[]Violation) {
	if d.Before(today) {
		*violations = append(*violations, Violation{Field: field, Message: "cannot be in the past"})
	}
}

func checkHourRange(hours int, field string, violations *[]Violation) {
	if hours < 0 || hours >= 24 {
		*violations = append(*violations, Violation{Field: field, Message: fmt.Sprintf("%d is outside [0, 24)", hours)})
	}
}

func checkMinuteRange(minutes int, field string, violations *[]Violation) {
	if minutes < 0 || minutes >= 60 {
		*violations = append(*violations, Violation{Field: field, Message: fmt.Sprintf("%d is outside [0, 60)", minutes)})
	}
}
