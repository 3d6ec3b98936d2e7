/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements payroll.HistoryStore, payroll.SessionStore and hr.Roster using
  SQLite. The same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  employees:     Active roster (terminated employees are removed; their
                 history survives in contracts/salary_rates)
  contracts:     One row per employment period, append-only
  salary_rates:  Rate intervals per contract; closed via upsert, never deleted
  work_sessions: Append-only reported sessions

ORDERING:
  Employee enumeration order is first-contract insertion order (MIN(rowid)
  per employee). Report output depends on this, so it is part of the
  contract, not an implementation detail.

WAL MODE:
  SQLite is opened with WAL for better concurrency: multiple readers don't
  block, a single writer at a time.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  history := payroll.NewHistory(store)
  ledger := payroll.NewLedger(store)

SEE ALSO:
  - payroll/store.go: Interface definitions
  - payroll/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/hr"
	"github.com/warp/payroll-engine/payroll"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ payroll.HistoryStore = (*Store)(nil)
	_ payroll.SessionStore = (*Store)(nil)
	_ hr.Roster            = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Active roster
	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY,
		full_name TEXT NOT NULL,
		hourly_rate TEXT NOT NULL,
		hired_at TEXT NOT NULL
	);

	-- Employment periods (append-only)
	CREATE TABLE IF NOT EXISTS contracts (
		id TEXT PRIMARY KEY,
		employee_id INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_contracts_employee
		ON contracts(employee_id);

	-- Rate intervals per contract; closed by updating end_date, never deleted.
	-- Keyed by position in the contract's rate sequence: two changes on the
	-- same day produce two rows, exactly like the in-memory model.
	CREATE TABLE IF NOT EXISTS salary_rates (
		contract_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		amount TEXT NOT NULL,
		UNIQUE(contract_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_rates_contract
		ON salary_rates(contract_id);

	-- Reported work sessions (append-only)
	CREATE TABLE IF NOT EXISTS work_sessions (
		id TEXT PRIMARY KEY,
		employee_id INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		hours TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_employee
		ON work_sessions(employee_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// HISTORY STORE
// =============================================================================

func (s *Store) AppendContract(ctx context.Context, id payroll.EmployeeID, c *payroll.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO contracts (id, employee_id, start_date, end_date) VALUES (?, ?, ?, ?)`,
		c.ID.String(), int(id), c.Start.String(), dateOrNil(c.End))
	if err != nil {
		return err
	}

	for i, r := range c.Rates {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO salary_rates (contract_id, position, start_date, end_date, amount) VALUES (?, ?, ?, ?, ?)`,
			c.ID.String(), i, r.Start.String(), dateOrNil(r.End), r.Amount.String())
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) Contracts(ctx context.Context, id payroll.EmployeeID) ([]*payroll.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, start_date, end_date FROM contracts WHERE employee_id = ? ORDER BY rowid`,
		int(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []*payroll.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range contracts {
		if err := s.loadRates(ctx, c); err != nil {
			return nil, err
		}
	}
	return contracts, nil
}

func (s *Store) loadRates(ctx context.Context, c *payroll.Contract) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT start_date, end_date, amount FROM salary_rates WHERE contract_id = ? ORDER BY position`,
		c.ID.String())
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var startStr, amountStr string
		var endStr sql.NullString
		if err := rows.Scan(&startStr, &endStr, &amountStr); err != nil {
			return err
		}

		start, err := payroll.ParseDate(startStr)
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return err
		}

		rate := payroll.SalaryRate{Interval: payroll.Interval{Start: start}, Amount: amount}
		if endStr.Valid {
			end, err := payroll.ParseDate(endStr.String)
			if err != nil {
				return err
			}
			rate.End = &end
		}
		c.Rates = append(c.Rates, rate)
	}
	return rows.Err()
}

func (s *Store) UpdateContract(ctx context.Context, id payroll.EmployeeID, c *payroll.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE contracts SET end_date = ? WHERE id = ? AND employee_id = ?`,
		dateOrNil(c.End), c.ID.String(), int(id))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return payroll.ErrContractNotFound
	}

	for i, r := range c.Rates {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO salary_rates (contract_id, position, start_date, end_date, amount) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(contract_id, position)
			 DO UPDATE SET start_date = excluded.start_date, end_date = excluded.end_date, amount = excluded.amount`,
			c.ID.String(), i, r.Start.String(), dateOrNil(r.End), r.Amount.String())
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) EmployeeIDs(ctx context.Context) ([]payroll.EmployeeID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT employee_id FROM contracts GROUP BY employee_id ORDER BY MIN(rowid)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []payroll.EmployeeID
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, payroll.EmployeeID(id))
	}
	return ids, rows.Err()
}

// =============================================================================
// SESSION STORE
// =============================================================================

func (s *Store) AppendSession(ctx context.Context, id payroll.EmployeeID, sess payroll.WorkSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO work_sessions (id, employee_id, started_at, hours) VALUES (?, ?, ?, ?)`,
		sess.ID.String(), int(id), sess.StartedAt.UTC().Format(time.RFC3339), sess.Hours.String())
	return err
}

func (s *Store) Sessions(ctx context.Context, id payroll.EmployeeID) ([]payroll.WorkSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, hours FROM work_sessions WHERE employee_id = ? ORDER BY rowid`,
		int(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []payroll.WorkSession
	for rows.Next() {
		var idStr, startedStr, hoursStr string
		if err := rows.Scan(&idStr, &startedStr, &hoursStr); err != nil {
			return nil, err
		}

		sessionID, err := uuid.Parse(idStr)
		if err != nil {
			return nil, err
		}
		startedAt, err := time.Parse(time.RFC3339, startedStr)
		if err != nil {
			return nil, err
		}
		hours, err := decimal.NewFromString(hoursStr)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, payroll.WorkSession{ID: sessionID, StartedAt: startedAt, Hours: hours})
	}
	return sessions, rows.Err()
}

// =============================================================================
// ROSTER
// =============================================================================

func (s *Store) Add(ctx context.Context, e hr.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (id, full_name, hourly_rate, hired_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET full_name = excluded.full_name, hourly_rate = excluded.hourly_rate`,
		int(e.ID), e.FullName, e.HourlyRate.String(), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) Get(ctx context.Context, id payroll.EmployeeID) (*hr.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, full_name, hourly_rate FROM employees WHERE id = ?`, int(id))

	var rawID int
	var name, rateStr string
	if err := row.Scan(&rawID, &name, &rateStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, err
	}
	return &hr.Employee{ID: payroll.EmployeeID(rawID), FullName: name, HourlyRate: rate}, nil
}

func (s *Store) Remove(ctx context.Context, id payroll.EmployeeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, int(id))
	return err
}

func (s *Store) List(ctx context.Context) ([]hr.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, full_name, hourly_rate FROM employees ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []hr.Employee
	for rows.Next() {
		var rawID int
		var name, rateStr string
		if err := rows.Scan(&rawID, &name, &rateStr); err != nil {
			return nil, err
		}
		rate, err := decimal.NewFromString(rateStr)
		if err != nil {
			return nil, err
		}
		employees = append(employees, hr.Employee{ID: payroll.EmployeeID(rawID), FullName: name, HourlyRate: rate})
	}
	return employees, rows.Err()
}

// =============================================================================
// MAINTENANCE
// =============================================================================

// Reset wipes all tables. Dev/demo only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"employees", "contracts", "salary_rates", "work_sessions"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func dateOrNil(d *payroll.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func scanContract(rows *sql.Rows) (*payroll.Contract, error) {
	var idStr, startStr string
	var endStr sql.NullString
	if err := rows.Scan(&idStr, &startStr, &endStr); err != nil {
		return nil, err
	}

	contractID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	start, err := payroll.ParseDate(startStr)
	if err != nil {
		return nil, err
	}

	c := &payroll.Contract{ID: contractID, Interval: payroll.Interval{Start: start}}
	if endStr.Valid {
		end, err := payroll.ParseDate(endStr.String)
		if err != nil {
			return nil, err
		}
		c.End = &end
	}
	return c, nil
}
