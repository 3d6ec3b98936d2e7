/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP request/response and
  JSON serialization, delegates everything else to hr and payroll.

ENDPOINTS:
  Employees:
    GET    /api/employees                  List active roster
    POST   /api/employees                  Hire (opens first contract)
    POST   /api/employees/{id}/terminate   Close open contract
    POST   /api/employees/{id}/hours       Report a work session
    POST   /api/employees/{id}/rate        Change hourly rate
    GET    /api/employees/{id}/rate        Resolve rate for ?date=
    GET    /api/employees/{id}/contracts   Contract and rate history

  Reports:
    GET    /api/reports/monthly            ?start=&end= monthly salary records

  Dev:
    POST   /api/seed                       Load demo data
    POST   /api/reset                      Wipe all state

ERROR HANDLING:
  - 400: format errors, validation errors (all violations listed), invalid
         report range, invalid transition dates
  - 404: unknown employee / not employed on the date
  - 409: duplicate open contract, terminating without an open contract
  - 500: storage failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/hr"
	"github.com/warp/payroll-engine/payroll"
)

// Resetter is implemented by stores that can wipe all state (dev only).
type Resetter interface {
	Reset(ctx context.Context) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	HR       *hr.Department
	Roster   hr.Roster
	History  *payroll.History
	Resolver *payroll.Resolver
	Reports  *payroll.ReportGenerator
	Resetter Resetter
}

// NewHandler creates a handler over a wired engine.
func NewHandler(dept *hr.Department, roster hr.Roster, history *payroll.History, resolver *payroll.Resolver, reports *payroll.ReportGenerator) *Handler {
	return &Handler{
		HR:       dept,
		Roster:   roster,
		History:  history,
		Resolver: resolver,
		Reports:  reports,
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns the active roster.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Roster.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = EmployeeDTO{
			ID:         int(e.ID),
			FullName:   e.FullName,
			HourlyRate: e.HourlyRate.String(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Hire creates an employee and opens their first contract.
func (h *Handler) Hire(w http.ResponseWriter, r *http.Request) {
	var req HireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := payroll.ParseDate(req.ContractStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid contract_start (use YYYY-MM-DD)", err)
		return
	}
	rate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hourly_rate", err)
		return
	}

	employee := hr.Employee{
		ID:         payroll.EmployeeID(req.ID),
		FullName:   req.FullName,
		HourlyRate: rate,
	}
	if err := h.HR.Hire(r.Context(), employee, start); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, EmployeeDTO{
		ID:         req.ID,
		FullName:   req.FullName,
		HourlyRate: rate.String(),
	})
}

// Terminate closes the employee's open contract and drops them from the roster.
func (h *Handler) Terminate(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}

	var req TerminateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	end, err := payroll.ParseDate(req.ContractEnd)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid contract_end (use YYYY-MM-DD)", err)
		return
	}

	if err := h.HR.Terminate(r.Context(), id, end); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"terminated": int(id)})
}

// ReportHours records one work session.
func (h *Handler) ReportHours(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}

	var req ReportHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	startedAt, err := time.Parse(time.RFC3339, req.StartedAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid started_at (use RFC3339)", err)
		return
	}

	if err := h.HR.ReportHours(r.Context(), id, startedAt, req.Hours, req.Minutes); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"recorded": true})
}

// ChangeRate applies a new hourly rate from a date onward.
func (h *Handler) ChangeRate(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}

	var req ChangeRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	from, err := payroll.ParseDate(req.EffectiveDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid effective_date (use YYYY-MM-DD)", err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}

	if err := h.HR.ChangeSalary(r.Context(), id, from, amount); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"changed": true})
}

// GetRate resolves the employee's hourly rate on a date (default today).
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}

	date := payroll.Today()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := payroll.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
			return
		}
		date = parsed
	}

	rate, employed, err := h.Resolver.SalaryRateFor(r.Context(), id, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to resolve rate", err)
		return
	}

	dto := RateDTO{EmployeeID: int(id), Date: date.String(), Employed: employed}
	if employed {
		dto.Amount = rate.String()
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetContracts returns the employee's full contract and rate history.
func (h *Handler) GetContracts(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}

	contracts, err := h.History.Store.Contracts(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load contracts", err)
		return
	}

	dtos := make([]ContractDTO, len(contracts))
	for i, c := range contracts {
		dto := ContractDTO{
			ID:        c.ID.String(),
			StartDate: c.Start.String(),
			EndDate:   dateString(c.End),
			Rates:     make([]RateIntervalDTO, len(c.Rates)),
		}
		for j, rate := range c.Rates {
			dto.Rates[j] = RateIntervalDTO{
				StartDate: rate.Start.String(),
				EndDate:   dateString(rate.End),
				Amount:    rate.Amount.String(),
			}
		}
		dtos[i] = dto
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// MonthlyReport builds salary records for every (employee, month) in range.
func (h *Handler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	start, err := payroll.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start (use YYYY-MM-DD)", err)
		return
	}
	end, err := payroll.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end (use YYYY-MM-DD)", err)
		return
	}

	records, err := h.Reports.BuildReport(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]MonthlyRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = MonthlyRecordDTO{
			EmployeeID: int(rec.EmployeeID),
			Year:       rec.Year,
			Month:      int(rec.Month),
			Salary:     rec.Salary.String(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Reset wipes all state. Dev only.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if h.Resetter == nil {
		writeError(w, http.StatusNotImplemented, "Reset not supported by this store", nil)
		return
	}
	if err := h.Resetter.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}

// =============================================================================
// HELPERS
// =============================================================================

func employeeID(w http.ResponseWriter, r *http.Request) (payroll.EmployeeID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee id", err)
		return 0, false
	}
	return payroll.EmployeeID(id), true
}

func dateString(d *payroll.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// writeDomainError maps hr/payroll errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *hr.ValidationError
	if errors.As(err, &verr) {
		violations := make([]string, len(verr.Violations))
		for i, v := range verr.Violations {
			violations[i] = v.String()
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:      "Validation failed",
			Violations: violations,
		})
		return
	}

	switch {
	case errors.Is(err, payroll.ErrInvalidRange),
		errors.Is(err, payroll.ErrInvalidTransition):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	case payroll.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Employee not found", err)
	case errors.Is(err, payroll.ErrDuplicateActiveContract),
		errors.Is(err, payroll.ErrNoActiveContract):
		writeError(w, http.StatusConflict, "Contract conflict", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
