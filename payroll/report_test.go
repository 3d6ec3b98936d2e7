/*
report_test.go - Scenario tests for monthly report generation

These tests exercise the full read path (history + ledger -> resolver ->
report) over the in-memory store, in GIVEN/WHEN/THEN form.
*/
package payroll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/warp/payroll-engine/payroll"
)

func TestBuildReport_EndNotAfterStart_InvalidRange(t *testing.T) {
	_, _, resolver := newEngine()
	reports := payroll.NewReportGenerator(resolver)
	ctx := context.Background()

	_, err := reports.BuildReport(ctx, d(2023, time.July, 1), d(2023, time.July, 1))
	if !errors.Is(err, payroll.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for end == start, got %v", err)
	}

	_, err = reports.BuildReport(ctx, d(2023, time.July, 1), d(2023, time.June, 1))
	if !errors.Is(err, payroll.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for end < start, got %v", err)
	}
}

func TestBuildReport_RateChangeScenario(t *testing.T) {
	// GIVEN: Employee 1 contracted from 2023-07-01 at $10/h, changed to
	//        $15/h on 2023-08-01; worked 160h in July and 150h in August
	// WHEN:  Building the report for 2023-07-01 .. 2023-08-31
	// THEN:  July is 160*10=1600 (July's rate is $10 throughout, sampled on
	//        day 1) and August is 150*15=2250

	ctx := context.Background()
	history, ledger, resolver := newEngine()
	reports := payroll.NewReportGenerator(resolver)

	if err := history.AppendContract(ctx, 1, payroll.NewContract(d(2023, time.July, 1), dec(10))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := history.ChangeRate(ctx, 1, d(2023, time.August, 1), dec(15)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for day := 1; day <= 20; day++ { // 160h
		if err := ledger.Record(ctx, 1, session(2023, time.July, day, 8)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	for day := 1; day <= 15; day++ { // 150h
		if err := ledger.Record(ctx, 1, session(2023, time.August, day, 10)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	records, err := reports.BuildReport(ctx, d(2023, time.July, 1), d(2023, time.August, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	july := records[0]
	if july.EmployeeID != 1 || july.Year != 2023 || july.Month != time.July {
		t.Fatalf("unexpected first record: %+v", july)
	}
	if !july.Salary.Equal(dec(1600)) {
		t.Errorf("expected July salary 1600, got %v", july.Salary)
	}

	august := records[1]
	if august.Month != time.August {
		t.Fatalf("unexpected second record: %+v", august)
	}
	if !august.Salary.Equal(dec(2250)) {
		t.Errorf("expected August salary 2250, got %v", august.Salary)
	}
}

func TestBuildReport_RangeEndingMidMonth_IncludesThatMonth(t *testing.T) {
	ctx := context.Background()
	history, _, resolver := newEngine()
	reports := payroll.NewReportGenerator(resolver)

	if err := history.AppendContract(ctx, 1, payroll.NewContract(d(2023, time.July, 1), dec(10))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := reports.BuildReport(ctx, d(2023, time.July, 1), d(2023, time.August, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected July and August records, got %d", len(records))
	}
}

func TestBuildReport_MonthWithoutContract_ZeroRecordNotSkipped(t *testing.T) {
	// GIVEN: Employee contracted only from September, hours logged in August
	// THEN:  August still gets a record with salary zero; the report never
	//        aborts over one employee's missing contract

	ctx := context.Background()
	history, ledger, resolver := newEngine()
	reports := payroll.NewReportGenerator(resolver)

	if err := history.AppendContract(ctx, 1, payroll.NewContract(d(2023, time.September, 1), dec(10))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ledger.Record(ctx, 1, session(2023, time.August, 7, 8)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ledger.Record(ctx, 1, session(2023, time.September, 4, 8)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := reports.BuildReport(ctx, d(2023, time.August, 1), d(2023, time.September, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !records[0].Salary.IsZero() {
		t.Errorf("expected zero salary for the uncontracted month, got %v", records[0].Salary)
	}
	if !records[1].Salary.Equal(dec(80)) {
		t.Errorf("expected 80 for September, got %v", records[1].Salary)
	}
}

func TestBuildReport_EmployeesInInsertionOrder(t *testing.T) {
	// Employee enumeration follows first-contract insertion order, not id
	// order. Report consumers rely on it being stable.

	ctx := context.Background()
	history, _, resolver := newEngine()
	reports := payroll.NewReportGenerator(resolver)

	for _, id := range []payroll.EmployeeID{7, 3, 5} {
		if err := history.AppendContract(ctx, id, payroll.NewContract(d(2023, time.July, 1), dec(10))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	records, err := reports.BuildReport(ctx, d(2023, time.July, 1), d(2023, time.July, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	want := []payroll.EmployeeID{7, 3, 5}
	for i, rec := range records {
		if rec.EmployeeID != want[i] {
			t.Errorf("record %d: expected employee %d, got %d", i, want[i], rec.EmployeeID)
		}
	}
}

func TestBuildReport_SingleRateProperty(t *testing.T) {
	// For a never-changed rate r, monthly salary equals hours * r for any
	// month on or after the contract start.

	ctx := context.Background()
	history, ledger, resolver := newEngine()
	reports := payroll.NewReportGenerator(resolver)

	if err := history.AppendContract(ctx, 1, payroll.NewContract(d(2023, time.January, 1), dec(13))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	months := []time.Month{time.January, time.February, time.March}
	hoursPerMonth := []int{10, 0, 17}
	for i, m := range months {
		for day := 1; day <= hoursPerMonth[i]; day++ {
			if err := ledger.Record(ctx, 1, session(2023, m, day, 1)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	}

	records, err := reports.BuildReport(ctx, d(2023, time.January, 1), d(2023, time.March, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	for i, rec := range records {
		hours, err := ledger.HoursInMonth(ctx, 1, 2023, months[i])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := hours.Mul(dec(13))
		if !rec.Salary.Equal(want) {
			t.Errorf("%v: expected %v, got %v", months[i], want, rec.Salary)
		}
	}
}
