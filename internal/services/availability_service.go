package services

import (
	"context"

	"workmarket/internal/domain"
	"workmarket/internal/store"
)

// fewSeatsThreshold is the seat count at or below which a workshop is shown
// as nearly full.
const fewSeatsThreshold = 4

type AvailabilityService struct {
	DB *store.DB
}

func NewAvailabilityService(db *store.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// Check converts a listing's state into OPEN / FEW_SEATS_LEFT / SOLD_OUT for
// workshops and AVAILABLE / SOLD for thrift items.
func (s *AvailabilityService) Check(ctx context.Context, id string) (domain.Availability, error) {
	var l domain.Listing
	err := s.DB.View(ctx, func(doc *store.Document) error {
		idx := doc.FindListing(id)
		if idx == -1 {
			return domain.Errorf(domain.KindNotFound, "Not found")
		}
		l = doc.Listings[idx]
		return nil
	})
	if err != nil {
		return domain.Availability{}, err
	}
	return availabilityOf(&l), nil
}

func availabilityOf(l *domain.Listing) domain.Availability {
	if !l.IsWorkshop() {
		if l.IsSold() {
			return domain.Availability{Status: "SOLD"}
		}
		return domain.Availability{Status: "AVAILABLE"}
	}
	left := l.SeatsLeft()
	status := "SOLD_OUT"
	switch {
	case left > fewSeatsThreshold:
		status = "OPEN"
	case left > 0:
		status = "FEW_SEATS_LEFT"
	}
	return domain.Availability{Status: status, SeatsLeft: left}
}
