/*
store.go - Persistence interfaces for contract history and work sessions

PURPOSE:
  Defines the boundary between the temporal core and storage. The core is
  storage-agnostic: History and Ledger operate through these interfaces, so
  the same resolution logic runs over the in-memory store (tests, dev) and
  the SQLite store (server) without change.

CONTRACT SEMANTICS:
  - AppendContract only appends; contracts are never deleted
  - UpdateContract persists in-place mutations (a closed rate, a closed
    contract) by contract ID; it never removes rates
  - EmployeeIDs yields employees in first-contract insertion order; report
    output depends on this order being stable

SESSION SEMANTICS:
  - Sessions are append-only and unordered; the ledger sums them per month
  - An employee with no recorded sessions is an empty slice, not an error

IMPLEMENTATIONS:
  - payroll/store/memory.go: in-memory (tests, dev)
  - store/sqlite: production SQLite
*/
package payroll

import "context"

// HistoryStore persists per-employee contract sequences.
type HistoryStore interface {
	// AppendContract appends to the employee's contract sequence.
	AppendContract(ctx context.Context, id EmployeeID, c *Contract) error

	// Contracts returns the employee's contracts ordered by start date
	// ascending (append order). Empty slice for an unknown employee.
	Contracts(ctx context.Context, id EmployeeID) ([]*Contract, error)

	// UpdateContract persists a mutated contract (rate change, close),
	// matched by Contract.ID.
	UpdateContract(ctx context.Context, id EmployeeID, c *Contract) error

	// EmployeeIDs returns every employee with at least one contract, in
	// insertion order.
	EmployeeIDs(ctx context.Context) ([]EmployeeID, error)
}

// SessionStore persists reported work sessions.
type SessionStore interface {
	// AppendSession records a session. Always succeeds for well-formed input.
	AppendSession(ctx context.Context, id EmployeeID, s WorkSession) error

	// Sessions returns all sessions for the employee; empty slice when none.
	Sessions(ctx context.Context, id EmployeeID) ([]WorkSession, error)
}
