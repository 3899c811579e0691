package services

import (
	"context"
	"strings"

	"workmarket/internal/domain"
	"workmarket/internal/metrics"
	"workmarket/internal/store"
)

type OrderService struct {
	DB      *store.DB
	Metrics metrics.Recorder
}

func NewOrderService(db *store.DB, rec metrics.Recorder) *OrderService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &OrderService{DB: db, Metrics: rec}
}

type PurchaseInput struct {
	ListingID string `json:"listingId"`
	BuyerID   string `json:"buyerId"`
	Quantity  int    `json:"quantity"`
}

// Purchase sells a thrift item exactly once. Marking it sold, recording the
// order and dropping it from the cart happen in one save. Quantity is kept on
// the order but items are single-unit.
func (s *OrderService) Purchase(ctx context.Context, in PurchaseInput) (domain.Order, error) {
	listingID, buyerID := strings.TrimSpace(in.ListingID), strings.TrimSpace(in.BuyerID)
	if listingID == "" || buyerID == "" {
		return domain.Order{}, domain.Errorf(domain.KindInvalidInput, "listingId and buyerId are required")
	}
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	var order domain.Order
	err := s.DB.Update(ctx, func(doc *store.Document) error {
		idx := doc.FindListing(listingID)
		if idx == -1 {
			return domain.Errorf(domain.KindNotFound, "Listing not found")
		}
		l := &doc.Listings[idx]
		if l.IsWorkshop() {
			return domain.Errorf(domain.KindInvalidInput, "Workshops are booked through enrollment")
		}
		if l.IsSold() {
			return domain.Errorf(domain.KindAlreadySold, "Item already sold")
		}
		l.Sold = true
		order = domain.Order{
			ID:        newID(prefixOrder),
			ListingID: listingID,
			BuyerID:   buyerID,
			Quantity:  qty,
			CreatedAt: now(),
		}
		doc.Orders = append(doc.Orders, order)
		doc.RemoveCartEntriesFor(listingID)
		return nil
	})
	if err != nil {
		if k := domain.KindOf(err); k != "" {
			s.Metrics.Rejected("purchase", string(k))
		}
		return domain.Order{}, err
	}
	s.Metrics.PurchaseCompleted()
	return order, nil
}

// List returns orders, optionally only those placed by buyerID.
func (s *OrderService) List(ctx context.Context, buyerID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := s.DB.View(ctx, func(doc *store.Document) error {
		for _, o := range doc.Orders {
			if buyerID == "" || o.BuyerID == buyerID {
				out = append(out, o)
			}
		}
		return nil
	})
	return out, err
}
