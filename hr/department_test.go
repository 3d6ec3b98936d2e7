package hr_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/hr"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/payroll/store"
)

// =============================================================================
// TEST FIXTURE
// =============================================================================

// today is the frozen clock for every test; hire/terminate dates are checked
// against it rather than the wall clock.
var today = payroll.NewDate(2023, time.July, 1)

func newDepartment() (*hr.Department, *payroll.History, *payroll.Ledger) {
	mem := store.NewMemory()
	history := payroll.NewHistory(mem)
	ledger := payroll.NewLedger(mem)
	dept := hr.NewDepartment(hr.NewMemoryRoster(), history, ledger)
	dept.Now = func() payroll.Date { return today }
	return dept, history, ledger
}

func alice() hr.Employee {
	return hr.Employee{ID: 1, FullName: "Alice Smith", HourlyRate: decimal.NewFromInt(10)}
}

// =============================================================================
// HIRE
// =============================================================================

func TestDepartment_Hire_OpensContractAndAddsToRoster(t *testing.T) {
	ctx := context.Background()
	dept, history, _ := newDepartment()

	require.NoError(t, dept.Hire(ctx, alice(), today))

	contract, err := history.LatestContract(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, contract)
	assert.True(t, contract.Open())
	assert.True(t, contract.Start.Equal(today))

	rate, err := contract.RateAt(today)
	require.NoError(t, err)
	assert.True(t, rate.Amount.Equal(decimal.NewFromInt(10)))
}

func TestDepartment_Hire_AllViolationsReportedTogether(t *testing.T) {
	// GIVEN: A request that is wrong in three ways at once
	// THEN: One rejection carrying all three violations, not just the first

	ctx := context.Background()
	dept, history, _ := newDepartment()

	bad := hr.Employee{ID: 0, FullName: "   ", HourlyRate: decimal.NewFromInt(-5)}
	err := dept.Hire(ctx, bad, today)

	var verr *hr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 3)

	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{"id", "full_name", "hourly_rate"}, fields)

	// Nothing was written.
	contract, err := history.LatestContract(ctx, 0)
	require.NoError(t, err)
	assert.Nil(t, contract)
}

func TestDepartment_Hire_StartInPast_Rejected(t *testing.T) {
	ctx := context.Background()
	dept, _, _ := newDepartment()

	err := dept.Hire(ctx, alice(), today.AddDays(-1))

	var verr *hr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "contract_start", verr.Violations[0].Field)
}

func TestDepartment_Hire_ContractRejected_RosterRolledBack(t *testing.T) {
	// GIVEN: An open contract already stored for the id (no roster entry)
	// WHEN: Hire fails on the single-open-contract check
	// THEN: The roster entry added first is rolled back, nothing half-hired

	ctx := context.Background()
	mem := store.NewMemory()
	history := payroll.NewHistory(mem)
	roster := hr.NewMemoryRoster()
	dept := hr.NewDepartment(roster, history, payroll.NewLedger(mem))
	dept.Now = func() payroll.Date { return today }

	orphan := payroll.NewContract(today, decimal.NewFromInt(9))
	require.NoError(t, history.AppendContract(ctx, 1, orphan))

	err := dept.Hire(ctx, alice(), today)
	require.ErrorIs(t, err, payroll.ErrDuplicateActiveContract)

	entry, err := roster.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, entry, "rejected hire must not leave a roster entry behind")
}

func TestDepartment_Hire_Duplicate_Rejected(t *testing.T) {
	ctx := context.Background()
	dept, _, _ := newDepartment()

	require.NoError(t, dept.Hire(ctx, alice(), today))

	err := dept.Hire(ctx, alice(), today)
	var verr *hr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "already on the roster")
}

// =============================================================================
// TERMINATE
// =============================================================================

func TestDepartment_Terminate_RemovesFromRosterKeepsHistory(t *testing.T) {
	ctx := context.Background()
	dept, history, _ := newDepartment()

	require.NoError(t, dept.Hire(ctx, alice(), today))
	end := payroll.NewDate(2023, time.October, 1)
	require.NoError(t, dept.Terminate(ctx, 1, end))

	// Contract history survives termination, closed one day back.
	contract, err := history.LatestContract(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, contract)
	assert.False(t, contract.Open())
	assert.True(t, contract.End.Equal(end.AddDays(-1)))

	// Re-terminating fails: the employee left the roster.
	err = dept.Terminate(ctx, 1, end)
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
}

func TestDepartment_Terminate_UnknownEmployee_NotFound(t *testing.T) {
	dept, _, _ := newDepartment()

	err := dept.Terminate(context.Background(), 42, today)
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
}

func TestDepartment_RehireAfterTermination_OpensNewContract(t *testing.T) {
	// GIVEN: Alice terminated in October
	// WHEN: She is hired again in January
	// THEN: Two contracts exist and the new one is open

	ctx := context.Background()
	dept, history, _ := newDepartment()

	require.NoError(t, dept.Hire(ctx, alice(), today))
	require.NoError(t, dept.Terminate(ctx, 1, payroll.NewDate(2023, time.October, 1)))

	rehired := alice()
	rehired.HourlyRate = decimal.NewFromInt(12)
	require.NoError(t, dept.Hire(ctx, rehired, payroll.NewDate(2024, time.January, 1)))

	contracts, err := history.Store.Contracts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, contracts, 2)
	assert.False(t, contracts[0].Open())
	assert.True(t, contracts[1].Open())
}

// =============================================================================
// SALARY CHANGES AND HOURS
// =============================================================================

func TestDepartment_ChangeSalary_NotEmployed(t *testing.T) {
	dept, _, _ := newDepartment()

	err := dept.ChangeSalary(context.Background(), 1, today, decimal.NewFromInt(15))
	assert.ErrorIs(t, err, payroll.ErrNotEmployed)
}

func TestDepartment_ChangeSalary_ValidatesAmount(t *testing.T) {
	dept, _, _ := newDepartment()

	err := dept.ChangeSalary(context.Background(), 1, today, decimal.Zero)
	var verr *hr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "hourly_rate", verr.Violations[0].Field)
}

func TestDepartment_ChangeSalary_BeforeCurrentRate_TransitionError(t *testing.T) {
	ctx := context.Background()
	dept, _, _ := newDepartment()

	require.NoError(t, dept.Hire(ctx, alice(), today))
	require.NoError(t, dept.ChangeSalary(ctx, 1, payroll.NewDate(2023, time.August, 1), decimal.NewFromInt(15)))

	err := dept.ChangeSalary(ctx, 1, payroll.NewDate(2023, time.July, 15), decimal.NewFromInt(12))
	require.ErrorIs(t, err, payroll.ErrInvalidTransition)

	var terr *payroll.TransitionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, payroll.EmployeeID(1), terr.EmployeeID)
}

func TestDepartment_ReportHours_RecordsFractionalSession(t *testing.T) {
	ctx := context.Background()
	dept, _, ledger := newDepartment()

	require.NoError(t, dept.Hire(ctx, alice(), today))

	startedAt := time.Date(2023, time.July, 3, 9, 0, 0, 0, time.UTC)
	require.NoError(t, dept.ReportHours(ctx, 1, startedAt, 7, 30))

	total, err := ledger.HoursInMonth(ctx, 1, 2023, time.July)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("7.5")), "got %v", total)
}

func TestDepartment_ReportHours_RangeViolations(t *testing.T) {
	dept, _, _ := newDepartment()
	startedAt := time.Date(2023, time.July, 3, 9, 0, 0, 0, time.UTC)

	err := dept.ReportHours(context.Background(), 1, startedAt, 24, 60)
	var verr *hr.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 2)
	assert.Equal(t, "hours", verr.Violations[0].Field)
	assert.Equal(t, "minutes", verr.Violations[1].Field)
}
