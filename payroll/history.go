package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// HISTORY - Per-employee contract sequences
// =============================================================================

// History is the contract and rate history for all employees, backed by an
// injected HistoryStore. The write path enforces the single-open-contract
// invariant; the read path tolerates violations of it (last match wins).
type History struct {
	Store HistoryStore
}

func NewHistory(store HistoryStore) *History {
	return &History{Store: store}
}

// AppendContract appends a contract to the employee's sequence. Fails with
// ErrDuplicateActiveContract if any existing contract is still open; core
// state is left unchanged on rejection.
func (h *History) AppendContract(ctx context.Context, id EmployeeID, c *Contract) error {
	existing, err := h.Store.Contracts(ctx, id)
	if err != nil {
		return err
	}
	for _, prev := range existing {
		if prev.Open() {
			return ErrDuplicateActiveContract
		}
	}
	return h.Store.AppendContract(ctx, id, c)
}

// ContractAt returns the last contract containing the date, or nil if the
// employee wasn't employed then. Last match wins over overlapping spans.
func (h *History) ContractAt(ctx context.Context, id EmployeeID, d Date) (*Contract, error) {
	contracts, err := h.Store.Contracts(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := len(contracts) - 1; i >= 0; i-- {
		if contracts[i].Contains(d) {
			return contracts[i], nil
		}
	}
	return nil, nil
}

// LatestContract returns the last contract in the sequence regardless of
// whether it is open, or nil if the employee has none.
func (h *History) LatestContract(ctx context.Context, id EmployeeID) (*Contract, error) {
	contracts, err := h.Store.Contracts(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return nil, nil
	}
	return contracts[len(contracts)-1], nil
}

// ChangeRate applies a rate change to the contract active on the given date
// and persists it. Returns ErrNotEmployed when no contract covers the date.
func (h *History) ChangeRate(ctx context.Context, id EmployeeID, d Date, newAmount decimal.Decimal) error {
	contract, err := h.ContractAt(ctx, id, d)
	if err != nil {
		return err
	}
	if contract == nil {
		return ErrNotEmployed
	}
	if err := contract.ChangeRate(d, newAmount); err != nil {
		if te, ok := err.(*TransitionError); ok {
			te.EmployeeID = id
		}
		return err
	}
	return h.Store.UpdateContract(ctx, id, contract)
}

// CloseLatestContract ends the employee's open contract at the given date.
// Fails with ErrNoActiveContract when the latest contract is missing or
// already closed.
func (h *History) CloseLatestContract(ctx context.Context, id EmployeeID, end Date) error {
	contract, err := h.LatestContract(ctx, id)
	if err != nil {
		return err
	}
	if contract == nil || !contract.Open() {
		return ErrNoActiveContract
	}
	if err := contract.Close(end); err != nil {
		if te, ok := err.(*TransitionError); ok {
			te.EmployeeID = id
		}
		return err
	}
	return h.Store.UpdateContract(ctx, id, contract)
}

// EmployeeIDs returns all known employee ids in insertion order.
func (h *History) EmployeeIDs(ctx context.Context) ([]EmployeeID, error) {
	return h.Store.EmployeeIDs(ctx)
}
