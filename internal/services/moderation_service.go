package services

import (
	"context"
	"strings"

	"workmarket/internal/domain"
	"workmarket/internal/metrics"
	"workmarket/internal/store"
	"workmarket/internal/validate"
)

// ModerationService handles reports raised against listings.
type ModerationService struct {
	DB      *store.DB
	Metrics metrics.Recorder
}

func NewModerationService(db *store.DB, rec metrics.Recorder) *ModerationService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &ModerationService{DB: db, Metrics: rec}
}

type FlagInput struct {
	ListingID  string `json:"listingId" validate:"required,max=64"`
	ReportedBy string `json:"reportedBy" validate:"required,max=64"`
	Reason     string `json:"reason" validate:"required,max=500"`
}

func (s *ModerationService) Flag(ctx context.Context, in FlagInput) (domain.Report, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Report{}, err
	}
	r := domain.Report{
		ListingID:  strings.TrimSpace(in.ListingID),
		ReportedBy: strings.TrimSpace(in.ReportedBy),
		Reason:     validate.Text(in.Reason),
		Status:     domain.ReportPending,
	}
	if r.Reason == "" {
		return domain.Report{}, domain.Errorf(domain.KindInvalidInput, "reason is required")
	}
	err := s.DB.Update(ctx, func(doc *store.Document) error {
		if doc.FindListing(r.ListingID) == -1 {
			return domain.Errorf(domain.KindNotFound, "Listing not found")
		}
		r.ID = newID(prefixReport)
		r.CreatedAt = now()
		doc.Reports = append(doc.Reports, r)
		return nil
	})
	if err != nil {
		return domain.Report{}, err
	}
	return r, nil
}

// List returns reports, optionally filtered by status.
func (s *ModerationService) List(ctx context.Context, status domain.ReportStatus) ([]domain.Report, error) {
	out := []domain.Report{}
	err := s.DB.View(ctx, func(doc *store.Document) error {
		for _, r := range doc.Reports {
			if status == "" || r.Status == status {
				out = append(out, r)
			}
		}
		return nil
	})
	return out, err
}

// Approve keeps the listing and closes the report.
func (s *ModerationService) Approve(ctx context.Context, id string) (domain.Report, error) {
	return s.resolve(ctx, id, domain.ReportApproved)
}

// Remove closes the report and deletes the listing, with the usual cascade,
// in the same save.
func (s *ModerationService) Remove(ctx context.Context, id string) (domain.Report, error) {
	r, err := s.resolve(ctx, id, domain.ReportRemoved)
	if err == nil {
		s.Metrics.ListingDeleted()
	}
	return r, err
}

func (s *ModerationService) resolve(ctx context.Context, id string, to domain.ReportStatus) (domain.Report, error) {
	var out domain.Report
	err := s.DB.Update(ctx, func(doc *store.Document) error {
		for i := range doc.Reports {
			r := &doc.Reports[i]
			if r.ID != id {
				continue
			}
			if r.Status != domain.ReportPending {
				return domain.Errorf(domain.KindInvalidInput, "Report already %s", r.Status)
			}
			if to == domain.ReportRemoved {
				// the listing may already be gone; the report still closes
				doc.RemoveListing(r.ListingID)
			}
			t := now()
			r.Status, r.ResolvedAt = to, &t
			out = *r
			return nil
		}
		return domain.Errorf(domain.KindNotFound, "Report not found")
	})
	return out, err
}
