// Package store provides storage implementations for the payroll core.
package store

import (
	"context"
	"sync"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements payroll.HistoryStore and payroll.SessionStore in memory.
// An ordered id slice is kept beside the contract map so EmployeeIDs yields
// insertion order; report output depends on it.
//
// Contracts are cloned on every write and read: a caller mutating a contract
// it holds (the ChangeRate read-modify-write cycle) never races a concurrent
// reader iterating the stored rate sequence.
type Memory struct {
	mu        sync.RWMutex
	order     []payroll.EmployeeID
	contracts map[payroll.EmployeeID][]*payroll.Contract
	sessions  map[payroll.EmployeeID][]payroll.WorkSession
}

func NewMemory() *Memory {
	return &Memory{
		contracts: make(map[payroll.EmployeeID][]*payroll.Contract),
		sessions:  make(map[payroll.EmployeeID][]payroll.WorkSession),
	}
}

func (m *Memory) AppendContract(_ context.Context, id payroll.EmployeeID, c *payroll.Contract) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, known := m.contracts[id]; !known {
		m.order = append(m.order, id)
	}
	m.contracts[id] = append(m.contracts[id], c.Clone())
	return nil
}

func (m *Memory) Contracts(_ context.Context, id payroll.EmployeeID) ([]*payroll.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*payroll.Contract, len(m.contracts[id]))
	for i, c := range m.contracts[id] {
		result[i] = c.Clone()
	}
	return result, nil
}

func (m *Memory) UpdateContract(_ context.Context, id payroll.EmployeeID, c *payroll.Contract) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.contracts[id] {
		if existing.ID == c.ID {
			m.contracts[id][i] = c.Clone()
			return nil
		}
	}
	return payroll.ErrContractNotFound
}

func (m *Memory) EmployeeIDs(_ context.Context) ([]payroll.EmployeeID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]payroll.EmployeeID, len(m.order))
	copy(ids, m.order)
	return ids, nil
}

func (m *Memory) AppendSession(_ context.Context, id payroll.EmployeeID, s payroll.WorkSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = append(m.sessions[id], s)
	return nil
}

func (m *Memory) Sessions(_ context.Context, id payroll.EmployeeID) ([]payroll.WorkSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]payroll.WorkSession, len(m.sessions[id]))
	copy(result, m.sessions[id])
	return result, nil
}
