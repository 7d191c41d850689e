package expense

import (
	"context"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/utils"
)

type Service struct {
	repo     Repository
	uploader *utils.Uploader
}

func NewService(repo Repository, uploader *utils.Uploader) *Service {
	return &Service{repo: repo, uploader: uploader}
}

// Add records an expense for the caller. The receipt image, when given, is
// stored first so a failed insert can clean it up.
func (s *Service) Add(ctx context.Context, identity middleware.Identity, req *AddRequest, receipt *multipart.FileHeader) (*Expense, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validation("title is required")
	}
	if req.Amount <= 0 {
		return nil, apperr.Validation("amount must be greater than zero")
	}
	if _, err := time.Parse("2006-01-02", req.SpentOn); err != nil {
		return nil, apperr.Validation("spent_on must be YYYY-MM-DD")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "general"
	}

	e := &Expense{
		UserID:   identity.UserID,
		Title:    strings.TrimSpace(req.Title),
		Amount:   req.Amount,
		Category: category,
		SpentOn:  req.SpentOn,
	}

	if receipt != nil {
		obj, err := s.uploader.Upload(ctx, receipt, "receipts")
		if err != nil {
			return nil, apperr.Unavailable("failed to upload receipt", err)
		}
		e.ReceiptURL = obj.URL
		e.ReceiptPublicID = obj.PublicID
	}

	if err := s.repo.Create(e); err != nil {
		if e.ReceiptPublicID != "" {
			if derr := s.uploader.Destroy(ctx, e.ReceiptPublicID); derr != nil {
				log.Printf("⚠️ Failed to clean up orphaned receipt %s: %v", e.ReceiptPublicID, derr)
			}
		}
		return nil, apperr.Unavailable("failed to record expense", err)
	}
	return e, nil
}

// List returns the caller's expenses, most recent spend first.
func (s *Service) List(identity middleware.Identity) ([]Expense, error) {
	es, err := s.repo.ListByUser(identity.UserID)
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch expenses", err)
	}
	return es, nil
}

// Delete removes one of the caller's expenses along with its receipt asset.
func (s *Service) Delete(ctx context.Context, identity middleware.Identity, id uint) error {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return apperr.FromDB(err, "expense not found")
	}
	if e.UserID != identity.UserID {
		return apperr.Forbidden("you can only delete your own expenses")
	}

	if err := s.repo.Delete(id); err != nil {
		return apperr.FromDB(err, "expense not found")
	}
	if e.ReceiptPublicID != "" {
		if derr := s.uploader.Destroy(ctx, e.ReceiptPublicID); derr != nil {
			log.Printf("⚠️ Failed to delete receipt %s: %v", e.ReceiptPublicID, derr)
		}
	}
	return nil
}

// GetSummary aggregates the caller's ledger: grand total plus category and
// per-day breakdowns.
func (s *Service) GetSummary(identity middleware.Identity) (*Summary, error) {
	total, err := s.repo.TotalByUser(identity.UserID)
	if err != nil {
		return nil, apperr.Unavailable("failed to compute summary", err)
	}
	byCategory, err := s.repo.TotalsByCategory(identity.UserID)
	if err != nil {
		return nil, apperr.Unavailable("failed to compute summary", err)
	}
	byDate, err := s.repo.TotalsByDate(identity.UserID)
	if err != nil {
		return nil, apperr.Unavailable("failed to compute summary", err)
	}
	return &Summary{Total: total, ByCategory: byCategory, ByDate: byDate}, nil
}
