// Package hr implements the employment lifecycle on top of the payroll core:
// hiring, termination, salary changes, and timesheet intake. It owns input
// validation so the core can trust what it is handed.
package hr

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
)

// Employee is one active roster entry. Terminated employees leave the roster;
// their contract history stays in payroll.History.
type Employee struct {
	ID         payroll.EmployeeID
	FullName   string
	HourlyRate decimal.Decimal
}

// Roster stores active employees.
type Roster interface {
	Add(ctx context.Context, e Employee) error

	// Get returns nil when the employee is not on the roster.
	Get(ctx context.Context, id payroll.EmployeeID) (*Employee, error)

	Remove(ctx context.Context, id payroll.EmployeeID) error

	// List returns active employees in hire order.
	List(ctx context.Context) ([]Employee, error)
}

// =============================================================================
// MEMORY ROSTER
// =============================================================================

// MemoryRoster is an in-memory Roster for tests and dev.
type MemoryRoster struct {
	mu        sync.RWMutex
	order     []payroll.EmployeeID
	employees map[payroll.EmployeeID]Employee
}

func NewMemoryRoster() *MemoryRoster {
	return &MemoryRoster{employees: make(map[payroll.EmployeeID]Employee)}
}

func (r *MemoryRoster) Add(_ context.Context, e Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.employees[e.ID]; !exists {
		r.order = append(r.order, e.ID)
	}
	r.employees[e.ID] = e
	return nil
}

func (r *MemoryRoster) Get(_ context.Context, id payroll.EmployeeID) (*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *MemoryRoster) Remove(_ context.Context, id payroll.EmployeeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.employees, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRoster) List(_ context.Context) ([]Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Employee, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.employees[id])
	}
	return result, nil
}
