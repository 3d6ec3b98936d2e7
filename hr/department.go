/*
department.go - Employment lifecycle over the payroll core

PURPOSE:
  The Department is the single write-side entry point: it validates input
  (collecting every violation before rejecting), keeps the active roster in
  step with contract history, and turns timesheet reports into ledger
  sessions. The payroll core trusts that anything reaching it passed here.

LOCKING:
  One mutex guards all mutations. Closing a rate and appending its successor
  (or closing a contract and dropping the roster entry) are multi-step and
  must appear atomic to concurrent readers behind the HTTP front end.
*/
package hr

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
)

// Department manages hiring, termination, salary changes and reported hours.
type Department struct {
	mu      sync.Mutex
	roster  Roster
	history *payroll.History
	ledger  *payroll.Ledger

	// Now supplies "today" for the not-in-past checks. Overridable in tests.
	Now func() payroll.Date
}

func NewDepartment(roster Roster, history *payroll.History, ledger *payroll.Ledger) *Department {
	return &Department{
		roster:  roster,
		history: history,
		ledger:  ledger,
		Now:     payroll.Today,
	}
}

// Hire validates the employee, adds them to the roster and opens their first
// contract with its initial rate. All violations are reported together; no
// state changes on rejection.
func (d *Department) Hire(ctx context.Context, e Employee, contractStart payroll.Date) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var violations []Violation
	checkPositiveID(e.ID, "id", &violations)
	checkNotBlank(e.FullName, "full_name", &violations)
	checkPositiveAmount(e.HourlyRate, "hourly_rate", &violations)
	checkNotInPast(contractStart, d.Now(), "contract_start", &violations)

	if existing, err := d.roster.Get(ctx, e.ID); err != nil {
		return err
	} else if existing != nil {
		violations = append(violations, Violation{Field: "id", Message: "employee already on the roster"})
	}

	if err := invalid(violations); err != nil {
		return err
	}

	// Roster first, contract second: contracts are append-only and cannot be
	// rolled back, a roster entry can. AppendContract still enforces the
	// single-open-contract invariant.
	if err := d.roster.Add(ctx, e); err != nil {
		return err
	}
	contract := payroll.NewContract(contractStart, e.HourlyRate)
	if err := d.history.AppendContract(ctx, e.ID, contract); err != nil {
		if rerr := d.roster.Remove(ctx, e.ID); rerr != nil {
			return errors.Join(err, rerr)
		}
		return err
	}
	return nil
}

// Terminate closes the employee's open contract at the given date and removes
// them from the active roster. Contract history is kept.
func (d *Department) Terminate(ctx context.Context, id payroll.EmployeeID, contractEnd payroll.Date) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var violations []Violation
	checkPositiveID(id, "id", &violations)
	checkNotInPast(contractEnd, d.Now(), "contract_end", &violations)
	if err := invalid(violations); err != nil {
		return err
	}

	employee, err := d.roster.Get(ctx, id)
	if err != nil {
		return err
	}
	if employee == nil {
		return payroll.ErrEmployeeNotFound
	}

	if err := d.history.CloseLatestContract(ctx, id, contractEnd); err != nil {
		return err
	}
	return d.roster.Remove(ctx, id)
}

// ChangeSalary applies a new hourly rate from the given date onward to the
// contract active on that date.
func (d *Department) ChangeSalary(ctx context.Context, id payroll.EmployeeID, from payroll.Date, newRate decimal.Decimal) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var violations []Violation
	checkPositiveID(id, "id", &violations)
	checkPositiveAmount(newRate, "hourly_rate", &violations)
	if err := invalid(violations); err != nil {
		return err
	}

	return d.history.ChangeRate(ctx, id, from, newRate)
}

// ReportHours converts a reported start time plus an hours/minutes duration
// into a ledger session. Hours must be in [0, 24) and minutes in [0, 60).
func (d *Department) ReportHours(ctx context.Context, id payroll.EmployeeID, startedAt time.Time, hours, minutes int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var violations []Violation
	checkPositiveID(id, "id", &violations)
	checkHourRange(hours, "hours", &violations)
	checkMinuteRange(minutes, "minutes", &violations)
	if err := invalid(violations); err != nil {
		return err
	}

	duration := decimal.NewFromInt(int64(hours)).
		Add(decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)))

	return d.ledger.Record(ctx, id, payroll.WorkSession{
		ID:        uuid.New(),
		StartedAt: startedAt,
		Hours:     duration,
	})
}
