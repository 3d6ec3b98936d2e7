/*
resolver.go - Point-in-time rate resolution and monthly salary derivation

PURPOSE:
  The read side of the engine. Combines contract history and the work session
  ledger to answer two questions:
    - what hourly rate applies to employee E on date D?
    - what did employee E earn in month M?

RESOLUTION POLICY:
  - "Not employed" is a soft miss, distinct from a zero rate
  - Monthly salary samples the rate ONCE, on the first day of the month; a
    mid-month rate change does not prorate the month. Do not "fix" this into
    day-weighted proration, it changes reported figures.
  - A month with no active contract on its first day yields salary zero even
    if hours were logged: rate lookup misses before hours are consulted
*/
package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Resolver performs read-only resolution over history and ledger.
type Resolver struct {
	History *History
	Ledger  *Ledger
}

func NewResolver(history *History, ledger *Ledger) *Resolver {
	return &Resolver{History: history, Ledger: ledger}
}

// SalaryRateFor resolves the hourly rate for the employee on the given date.
// The second return value is false when the employee has no active contract
// or the contract has no rate covering the date (both soft misses).
func (r *Resolver) SalaryRateFor(ctx context.Context, id EmployeeID, d Date) (decimal.Decimal, bool, error) {
	contract, err := r.History.ContractAt(ctx, id, d)
	if err != nil {
		return decimal.Zero, false, err
	}
	if contract == nil {
		return decimal.Zero, false, nil
	}

	rate, err := contract.RateAt(d)
	if err != nil {
		// No rate inside an active contract: contiguity was violated or the
		// date precedes the first rate. Treated as not employed, not a crash.
		return decimal.Zero, false, nil
	}
	return rate.Amount, true, nil
}

// MonthlySalary derives the employee's salary for one calendar month:
// hours worked that month times the rate active on the month's first day.
// Zero when no contract is active on the first day.
func (r *Resolver) MonthlySalary(ctx context.Context, id EmployeeID, year int, month time.Month) (decimal.Decimal, error) {
	rate, ok, err := r.SalaryRateFor(ctx, id, StartOfMonth(year, month))
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, nil
	}

	hours, err := r.Ledger.HoursInMonth(ctx, id, year, month)
	if err != nil {
		return decimal.Zero, err
	}
	return hours.Mul(rate), nil
}
