package reports

import (
	"context"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auditlog"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
)

type Service struct {
	repo     Repository
	exporter Exporter
	auditSvc auditlog.Service
}

func NewService(repo Repository, exporter Exporter, auditSvc auditlog.Service) *Service {
	return &Service{repo: repo, exporter: exporter, auditSvc: auditSvc}
}

// ExportExpenses renders the caller's expense ledger as a download.
func (s *Service) ExportExpenses(identity middleware.Identity, format string) ([]byte, string, string, error) {
	rows, err := s.repo.ExpenseRows(identity.UserID)
	if err != nil {
		return nil, "", "", apperr.Unavailable("failed to fetch expense report data", err)
	}

	data, filename, contentType, err := s.exporter.Export(ReportTypeExpenses, format, ReportData{Expenses: rows})
	if err != nil {
		return nil, "", "", apperr.Validation(err.Error())
	}
	return data, filename, contentType, nil
}

// ExportVolunteers renders the mandapam's volunteer roster (admin only).
func (s *Service) ExportVolunteers(ctx context.Context, identity middleware.Identity, mandapamID uint, format, ip string) ([]byte, string, string, error) {
	if !identity.IsAdmin(mandapamID) {
		return nil, "", "", apperr.Forbidden("only the mandapam admin can export the volunteer roster")
	}

	rows, err := s.repo.VolunteerRows(mandapamID)
	if err != nil {
		return nil, "", "", apperr.Unavailable("failed to fetch volunteer report data", err)
	}

	data, filename, contentType, err := s.exporter.Export(ReportTypeVolunteers, format, ReportData{Volunteers: rows})
	if err != nil {
		return nil, "", "", apperr.Validation(err.Error())
	}

	uid := identity.UserID
	_ = s.auditSvc.LogAction(ctx, &uid, &mandapamID, "reports.volunteers_exported", map[string]interface{}{
		"format": format,
		"rows":   len(rows),
	}, ip, "success")

	return data, filename, contentType, nil
}
