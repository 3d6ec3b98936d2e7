/*
Package payroll implements the temporal core of the payroll engine.

PURPOSE:
  This package contains the data model and resolution logic for time-varying
  pay: contracts bounded by dates, salary-rate intervals inside contracts,
  reported work sessions, and the derivation of per-employee monthly salary
  totals over an arbitrary date range.

KEY CONCEPTS:
  - Interval: a dated span whose end may still be open ("currently in effect")
  - Contract: one employment period, owning an ordered run of salary rates
  - Ledger: append-only record of reported work sessions
  - Resolver: point-in-time rate lookup and monthly salary derivation
  - ReportGenerator: one salary record per (employee, month) over a range

DESIGN PRINCIPLES:
  1. Precision: money and hours use decimal.Decimal, never float64
  2. Closed intervals are never deleted, only closed (end date set)
  3. Resolution is read-only; all mutation happens on the write path
  4. Storage is injected (see store.go) so the core stays backend-agnostic

SEE ALSO:
  - contract.go: Contract and SalaryRate
  - resolver.go: Rate and salary resolution
  - report.go: Monthly report generation
*/
package payroll

// =============================================================================
// INTERVAL - Dated span with a possibly open end
// =============================================================================

// Interval is a span of whole days. A nil End means the interval is still in
// effect. End dates are inclusive: closing an interval "at" date D sets its
// end to D-1, so the interval covers every day up to and including D-1 and a
// successor starting at D neither gaps nor overlaps it.
type Interval struct {
	Start Date
	End   *Date
}

// Open reports whether the interval has no end date yet.
func (iv Interval) Open() bool { return iv.End == nil }

// Contains reports whether the day falls inside the interval.
func (iv Interval) Contains(d Date) bool {
	if d.Before(iv.Start) {
		return false
	}
	return iv.End == nil || d.BeforeOrEqual(*iv.End)
}

// CloseAt ends the interval the day before the cut date. The one-day-back rule
// is deliberate: changing a rate or ending a contract "on" date D means the
// old interval is valid through D-1 and the new one from D inclusive.
func (iv *Interval) CloseAt(d Date) {
	end := d.AddDays(-1)
	iv.End = &end
}

// clone copies the interval, giving the copy its own End pointer.
func (iv Interval) clone() Interval {
	if iv.End == nil {
		return Interval{Start: iv.Start}
	}
	end := *iv.End
	return Interval{Start: iv.Start, End: &end}
}
