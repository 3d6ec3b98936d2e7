package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONTHLY REPORT - One salary record per (employee, month)
// =============================================================================

// MonthlyReportRecord is one employee's computed salary total for one
// calendar month. Derived fresh on every report request, never persisted.
type MonthlyReportRecord struct {
	EmployeeID EmployeeID
	Year       int
	Month      time.Month
	Salary     decimal.Decimal
}

// ReportGenerator produces monthly salary reports over a date range.
type ReportGenerator struct {
	Resolver *Resolver
}

func NewReportGenerator(resolver *Resolver) *ReportGenerator {
	return &ReportGenerator{Resolver: resolver}
}

// BuildReport emits one record per (employee, month) for every month touched
// by [start, end]. Employees come out in insertion order; months step from
// start while the cursor is on or before end, so a range ending mid-month
// still includes that month. Each record's salary is a fresh MonthlySalary
// derivation - a missing-contract month yields a zero record and enumeration
// continues, it never aborts the report.
func (g *ReportGenerator) BuildReport(ctx context.Context, start, end Date) ([]MonthlyReportRecord, error) {
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	ids, err := g.Resolver.History.EmployeeIDs(ctx)
	if err != nil {
		return nil, err
	}

	var records []MonthlyReportRecord
	for _, id := range ids {
		for cursor := start; cursor.BeforeOrEqual(end); cursor = cursor.AddMonths(1) {
			salary, err := g.Resolver.MonthlySalary(ctx, id, cursor.Year(), cursor.Month())
			if err != nil {
				return nil, err
			}
			records = append(records, MonthlyReportRecord{
				EmployeeID: id,
				Year:       cursor.Year(),
				Month:      cursor.Month(),
				Salary:     salary,
			})
		}
	}
	return records, nil
}
