package reports

import (
	"time"
)

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// Report types
const (
	ReportTypeExpenses   = "expenses"
	ReportTypeVolunteers = "volunteers"
)

// ExpenseReportRow is one line of the personal expense report.
type ExpenseReportRow struct {
	ID       uint      `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	SpentOn  string    `json:"spent_on"`
	AddedAt  time.Time `json:"added_at"`
}

// VolunteerReportRow is one line of the mandapam volunteer roster report.
type VolunteerReportRow struct {
	UserID     uint      `json:"user_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	AssignedAt time.Time `json:"assigned_at"`
}

// ReportData bundles the rows the exporter can render.
type ReportData struct {
	Expenses   []ExpenseReportRow
	Volunteers []VolunteerReportRow
}
