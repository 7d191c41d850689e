package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders report rows into a downloadable document.
type Exporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

func (e *exporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeExpenses:
		return e.exportExpensesByFormat(format, timestamp, data.Expenses)
	case ReportTypeVolunteers:
		return e.exportVolunteersByFormat(format, timestamp, data.Volunteers)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

//// ============================
/// EXPENSE EXPORTS
//// ============================

func (e *exporter) exportExpensesByFormat(format, timestamp string, rows []ExpenseReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportExpensesExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("expense_report_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportExpensesCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("expense_report_%s.csv", timestamp), "text/csv", nil

	case FormatPDF:
		data, err := e.exportExpensesPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("expense_report_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for expenses: %s", format)
	}
}

func (e *exporter) exportExpensesCSV(rows []ExpenseReportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{"id", "title", "category", "amount", "spent_on", "added_at"}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			fmt.Sprint(r.ID),
			r.Title,
			r.Category,
			fmt.Sprintf("%.2f", r.Amount),
			r.SpentOn,
			r.AddedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportExpensesExcel(rows []ExpenseReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Expenses"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"id", "title", "category", "amount", "spent_on", "added_at"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	var total float64
	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Title)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Category)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Amount)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.SpentOn)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.AddedAt.Format("2006-01-02 15:04:05"))
		total += r.Amount
	}

	totalRow := len(rows) + 2
	f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), total)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportExpensesPDF(rows []ExpenseReportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Expense Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "Title", "Category", "Amount", "Spent On"}
	widths := []float64{15, 70, 40, 30, 35}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	var total float64
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", r.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.SpentOn, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		total += r.Amount
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 7, fmt.Sprintf("%.2f", total), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

//// ============================
/// VOLUNTEER ROSTER EXPORTS
//// ============================

func (e *exporter) exportVolunteersByFormat(format, timestamp string, rows []VolunteerReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportVolunteersExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("volunteer_roster_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportVolunteersCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("volunteer_roster_%s.csv", timestamp), "text/csv", nil

	case FormatPDF:
		data, err := e.exportVolunteersPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("volunteer_roster_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for volunteers: %s", format)
	}
}

func (e *exporter) exportVolunteersCSV(rows []VolunteerReportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{"user_id", "full_name", "email", "role", "assigned_at"}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			fmt.Sprint(r.UserID),
			r.FullName,
			r.Email,
			r.Role,
			r.AssignedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportVolunteersExcel(rows []VolunteerReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Volunteers"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"user_id", "full_name", "email", "role", "assigned_at"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.UserID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Email)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Role)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.AssignedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportVolunteersPDF(rows []VolunteerReportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Volunteer Roster")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"User ID", "Name", "Email", "Role", "Assigned At"}
	widths := []float64{20, 50, 60, 25, 35}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.UserID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.FullName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.Role, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.AssignedAt.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
