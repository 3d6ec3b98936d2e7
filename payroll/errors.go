/*
errors.go - Centralized error types for the payroll core

PURPOSE:
  All core error types in one place. Callers match with errors.Is/errors.As;
  domain packages (hr) and the API layer map these to their own surfaces.

ERROR CATEGORIES:
  1. Range errors      - malformed report requests
  2. Transition errors - rate changes / contract closes dated before the
                         interval they would close
  3. Resolution misses - no contract or rate covers a date (soft: reporting
                         turns these into zero values, never an abort)
  4. Write invariants  - duplicate open contract, missing open contract
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRange is returned when a report is requested with
	// periodEnd <= periodStart.
	ErrInvalidRange = errors.New("invalid period: end must be after start")

	// ErrInvalidTransition is returned when a rate change or contract close is
	// dated before the start of the interval it would close.
	ErrInvalidTransition = errors.New("transition date precedes interval start")

	// ErrNoActiveRate is returned when no salary rate covers a date inside a
	// contract. Should not occur while the contiguity invariant holds, but the
	// resolver must survive it (e.g. a date before the contract start).
	ErrNoActiveRate = errors.New("no active salary rate")

	// ErrNotEmployed is returned when no contract covers a date. Distinct from
	// a zero rate: the employee simply isn't employed then.
	ErrNotEmployed = errors.New("no active contract for date")

	// ErrDuplicateActiveContract is returned by the write path when appending
	// a contract for an employee who already has an open one.
	ErrDuplicateActiveContract = errors.New("employee already has an active contract")

	// ErrNoActiveContract is returned when closing a contract for an employee
	// whose latest contract is already closed (or who has none).
	ErrNoActiveContract = errors.New("employee has no active contract")

	// ErrEmployeeNotFound is returned when an operation references an unknown
	// employee on a path that requires one to exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrContractNotFound is returned when an update targets a contract id
	// that is not stored for the employee.
	ErrContractNotFound = errors.New("contract not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// TransitionError details a rejected rate change or contract close.
type TransitionError struct {
	EmployeeID EmployeeID
	Requested  Date
	Start      Date
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition at %s precedes interval start %s (employee %d)",
		e.Requested, e.Start, e.EmployeeID)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error is due to invalid caller input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrDuplicateActiveContract) ||
		errors.Is(err, ErrNoActiveContract)
}

// IsNotFound reports whether the error indicates a missing employee/contract.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrContractNotFound) ||
		errors.Is(err, ErrNotEmployed)
}
