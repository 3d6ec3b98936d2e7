/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the domain model.
  Dates travel as YYYY-MM-DD strings, timestamps as RFC3339, money and hours
  as decimal strings so no precision is lost in transit.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Format validation (parseable dates, parseable decimals) happens in the
  handlers; business validation happens in hr and comes back as a
  ValidationError with every violation listed.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// EmployeeDTO represents an active roster entry in API responses.
type EmployeeDTO struct {
	ID         int    `json:"id"`
	FullName   string `json:"full_name"`
	HourlyRate string `json:"hourly_rate"`
}

// HireRequest is the request to hire an employee.
type HireRequest struct {
	ID            int    `json:"id"`
	FullName      string `json:"full_name"`
	HourlyRate    string `json:"hourly_rate"`
	ContractStart string `json:"contract_start"`
}

// TerminateRequest ends an employee's open contract.
type TerminateRequest struct {
	ContractEnd string `json:"contract_end"`
}

// ReportHoursRequest reports one work session.
type ReportHoursRequest struct {
	StartedAt string `json:"started_at"`
	Hours     int    `json:"hours"`
	Minutes   int    `json:"minutes"`
}

// ChangeRateRequest applies a new hourly rate from a date onward.
type ChangeRateRequest struct {
	EffectiveDate string `json:"effective_date"`
	Amount        string `json:"amount"`
}

// RateDTO is the resolved hourly rate for an employee on a date.
type RateDTO struct {
	EmployeeID int    `json:"employee_id"`
	Date       string `json:"date"`
	Employed   bool   `json:"employed"`
	Amount     string `json:"amount,omitempty"`
}

// RateIntervalDTO is one salary-rate span inside a contract.
type RateIntervalDTO struct {
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
	Amount    string  `json:"amount"`
}

// ContractDTO is one employment period with its rate history.
type ContractDTO struct {
	ID        string            `json:"id"`
	StartDate string            `json:"start_date"`
	EndDate   *string           `json:"end_date,omitempty"`
	Rates     []RateIntervalDTO `json:"rates"`
}

// MonthlyRecordDTO is one employee's salary total for one calendar month.
type MonthlyRecordDTO struct {
	EmployeeID int    `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Salary     string `json:"salary"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error      string   `json:"error"`
	Details    string   `json:"details,omitempty"`
	Violations []string `json:"violations,omitempty"`
}
