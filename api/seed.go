/*
seed.go - Demo data loader

PURPOSE:
  Fills the store with a small synthetic company so the API has something to
  show: a handful of employees hired this month, random hourly rates, and a
  few weeks of reported sessions. Dev/demo only; production data arrives
  through the lifecycle endpoints.
*/
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/hr"
	"github.com/warp/payroll-engine/payroll"
)

const seedEmployees = 5

// Seed hires a synthetic roster and reports hours for the current month.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	today := payroll.Today()

	hired := 0
	for i := 1; i <= seedEmployees; i++ {
		employee := hr.Employee{
			ID:         payroll.EmployeeID(i),
			FullName:   gofakeit.Name(),
			HourlyRate: decimal.NewFromInt(int64(gofakeit.Number(12, 60))),
		}
		if err := h.HR.Hire(ctx, employee, today); err != nil {
			// Re-seeding over existing data: skip employees already hired.
			continue
		}
		hired++

		// A work week of sessions starting today.
		for day := 0; day < 5; day++ {
			startedAt := time.Date(today.Year(), today.Month(), today.Day(), 9, 0, 0, 0, time.UTC).
				AddDate(0, 0, day)
			hours := gofakeit.Number(4, 8)
			minutes := gofakeit.Number(0, 59)
			if err := h.HR.ReportHours(ctx, employee.ID, startedAt, hours, minutes); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to seed hours", err)
				return
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"seeded":  hired,
		"message": fmt.Sprintf("%d employees hired with a week of sessions", hired),
	})
}
