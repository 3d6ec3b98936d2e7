/*
ledger.go - Append-only work session ledger

PURPOSE:
  Records reported work sessions per employee and answers the one question
  the resolver asks: how many hours were worked in a calendar month.

INVARIANTS:
  - Append-only: sessions are immutable once recorded, never deleted
  - Insertion order is irrelevant; monthly sums scan every session
  - An employee with no ledger entry at all sums to zero, never errors
*/
package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkSession is one reported stretch of work: when it started and how many
// hours it lasted. Duration validation (hour/minute ranges) happens upstream
// in the timesheet intake; the ledger records what it is given.
type WorkSession struct {
	ID        uuid.UUID
	StartedAt time.Time
	Hours     decimal.Decimal
}

// Ledger is the append-only work session log, backed by an injected store.
type Ledger struct {
	Store SessionStore
}

func NewLedger(store SessionStore) *Ledger {
	return &Ledger{Store: store}
}

// Record appends a session for the employee.
func (l *Ledger) Record(ctx context.Context, id EmployeeID, s WorkSession) error {
	return l.Store.AppendSession(ctx, id, s)
}

// HoursInMonth sums the hours of every session whose start timestamp falls in
// the given calendar month. Zero for employees with no sessions.
func (l *Ledger) HoursInMonth(ctx context.Context, id EmployeeID, year int, month time.Month) (decimal.Decimal, error) {
	sessions, err := l.Store.Sessions(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, s := range sessions {
		if SameMonth(s.StartedAt, year, month) {
			total = total.Add(s.Hours)
		}
	}
	return total, nil
}
