package payroll

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeID identifies one employee across contracts, sessions and reports.
type EmployeeID int

// =============================================================================
// SALARY RATE - One constant hourly rate inside a contract
// =============================================================================

// SalaryRate is a sub-span of a contract during which the hourly rate is
// constant. Rates are owned by their contract: created on a rate change,
// never deleted, only closed.
type SalaryRate struct {
	Interval
	Amount decimal.Decimal
}

// =============================================================================
// CONTRACT - One employment period
// =============================================================================

// Contract is one employment span for one employee.
//
// INVARIANTS:
//   - Rates is non-empty and ordered by start date ascending
//   - Rates are contiguous: each closed rate ends the day before its successor
//   - The first rate starts on the contract's start date
//   - At most the last rate is open
type Contract struct {
	ID uuid.UUID
	Interval
	Rates []SalaryRate
}

// NewContract creates an open contract with its initial open rate.
func NewContract(start Date, hourlyRate decimal.Decimal) *Contract {
	return &Contract{
		ID:       uuid.New(),
		Interval: Interval{Start: start},
		Rates: []SalaryRate{
			{Interval: Interval{Start: start}, Amount: hourlyRate},
		},
	}
}

// Clone returns a deep copy: the clone owns its rate slice and end-date
// pointers, so mutating either contract never touches the other. Stores hand
// out clones so concurrent readers only ever see immutable snapshots.
func (c *Contract) Clone() *Contract {
	clone := &Contract{
		ID:       c.ID,
		Interval: c.Interval.clone(),
		Rates:    make([]SalaryRate, len(c.Rates)),
	}
	for i, r := range c.Rates {
		clone.Rates[i] = SalaryRate{Interval: r.Interval.clone(), Amount: r.Amount}
	}
	return clone
}

// CurrentRate returns the last rate in the sequence. Given the ordering
// invariant this is the open rate while the contract is active.
func (c *Contract) CurrentRate() SalaryRate {
	return c.Rates[len(c.Rates)-1]
}

// ChangeRate closes the current rate the day before the given date and
// appends a new open rate starting at it. Changing the rate twice on the same
// date is allowed: the second change closes the first at date-1, leaving the
// second amount in effect from the date onward.
func (c *Contract) ChangeRate(d Date, newAmount decimal.Decimal) error {
	last := &c.Rates[len(c.Rates)-1]
	if d.Before(last.Start) {
		return &TransitionError{Requested: d, Start: last.Start}
	}
	last.CloseAt(d)
	c.Rates = append(c.Rates, SalaryRate{Interval: Interval{Start: d}, Amount: newAmount})
	return nil
}

// RateAt returns the last rate whose interval contains the day. Last match
// wins: if overlapping rates ever exist (bad data), the most recently
// appended one is preferred rather than erroring out.
func (c *Contract) RateAt(d Date) (SalaryRate, error) {
	for i := len(c.Rates) - 1; i >= 0; i-- {
		if c.Rates[i].Contains(d) {
			return c.Rates[i], nil
		}
	}
	return SalaryRate{}, ErrNoActiveRate
}

// Close ends the contract at the given date using the one-day-back rule: the
// contract remains active through the day before. The rates are left as they
// are; resolution always checks the contract span first.
func (c *Contract) Close(d Date) error {
	if d.Before(c.Start) {
		return &TransitionError{Requested: d, Start: c.Start}
	}
	c.CloseAt(d)
	return nil
}
