package services

import (
	"context"
	"strings"

	"workmarket/internal/domain"
	"workmarket/internal/metrics"
	"workmarket/internal/store"
)

type EnrollmentService struct {
	DB      *store.DB
	Metrics metrics.Recorder
}

func NewEnrollmentService(db *store.DB, rec metrics.Recorder) *EnrollmentService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &EnrollmentService{DB: db, Metrics: rec}
}

type EnrollInput struct {
	WorkshopID string `json:"workshopId"`
	UserID     string `json:"userId"`
}

// Enroll books one seat for userID on the workshop and returns the new
// booked-seat count. The seat counter and the enrollment record are written
// in the same save.
func (s *EnrollmentService) Enroll(ctx context.Context, in EnrollInput) (int, error) {
	workshopID, userID := strings.TrimSpace(in.WorkshopID), strings.TrimSpace(in.UserID)
	if workshopID == "" || userID == "" {
		return 0, domain.Errorf(domain.KindInvalidInput, "workshopId and userId are required")
	}

	var booked int
	err := s.DB.Update(ctx, func(doc *store.Document) error {
		idx := doc.FindListing(workshopID)
		if idx == -1 || !doc.Listings[idx].IsWorkshop() {
			return domain.Errorf(domain.KindNotFound, "Workshop not found")
		}
		w := &doc.Listings[idx]
		for _, e := range doc.Enrollments {
			if e.WorkshopID == workshopID && e.UserID == userID {
				return domain.Errorf(domain.KindAlreadyEnrolled, "You are already enrolled in this workshop")
			}
		}
		if w.BookedSeats >= w.MaxSeats {
			return domain.Errorf(domain.KindSoldOut, "Workshop is sold out")
		}
		w.BookedSeats++
		doc.Enrollments = append(doc.Enrollments, domain.Enrollment{
			ID:         newID(prefixEnrollment),
			WorkshopID: workshopID,
			UserID:     userID,
			CreatedAt:  now(),
		})
		booked = w.BookedSeats
		return nil
	})
	if err != nil {
		if k := domain.KindOf(err); k != "" {
			s.Metrics.Rejected("enroll", string(k))
		}
		return 0, err
	}
	s.Metrics.EnrollmentBooked()
	return booked, nil
}

// EnrollmentFilter matches on any non-empty field.
type EnrollmentFilter struct {
	UserID     string
	WorkshopID string
}

func (s *EnrollmentService) List(ctx context.Context, f EnrollmentFilter) ([]domain.Enrollment, error) {
	out := []domain.Enrollment{}
	err := s.DB.View(ctx, func(doc *store.Document) error {
		for _, e := range doc.Enrollments {
			if f.UserID != "" && e.UserID != f.UserID {
				continue
			}
			if f.WorkshopID != "" && e.WorkshopID != f.WorkshopID {
				continue
			}
			out = append(out, e)
		}
		return nil
	})
	return out, err
}
