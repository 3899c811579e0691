package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"workmarket/internal/domain"
	"workmarket/internal/store"
	"workmarket/internal/validate"
)

type CartService struct {
	DB *store.DB
}

func NewCartService(db *store.DB) *CartService {
	return &CartService{DB: db}
}

type AddToCartInput struct {
	ListingID string `json:"listingId"`
	Quantity  int    `json:"quantity"`
}

type CartLine struct {
	Entry     domain.CartEntry `json:"entry"`
	Title     string           `json:"title,omitempty"`
	UnitPrice decimal.Decimal  `json:"unitPrice"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
	Available bool             `json:"available"`
}

type CartSummary struct {
	Lines []CartLine      `json:"lines"`
	Items int             `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func (s *CartService) List(ctx context.Context) ([]domain.CartEntry, error) {
	var out []domain.CartEntry
	err := s.DB.View(ctx, func(doc *store.Document) error {
		out = append([]domain.CartEntry{}, doc.Cart...)
		return nil
	})
	return out, err
}

// Add appends a cart entry. The listing is not looked up; Summary reports
// entries whose listing is gone or sold.
func (s *CartService) Add(ctx context.Context, in AddToCartInput) (domain.CartEntry, error) {
	listingID := strings.TrimSpace(in.ListingID)
	if listingID == "" {
		return domain.CartEntry{}, domain.Errorf(domain.KindInvalidInput, "listingId is required")
	}
	entry := domain.CartEntry{
		ID:        newID(prefixCart),
		ListingID: listingID,
		Quantity:  validate.Qty(in.Quantity),
		CreatedAt: now(),
	}
	err := s.DB.Update(ctx, func(doc *store.Document) error {
		doc.Cart = append(doc.Cart, entry)
		return nil
	})
	if err != nil {
		return domain.CartEntry{}, err
	}
	return entry, nil
}

func (s *CartService) Remove(ctx context.Context, id string) (domain.CartEntry, error) {
	var removed domain.CartEntry
	err := s.DB.Update(ctx, func(doc *store.Document) error {
		for i, c := range doc.Cart {
			if c.ID == id {
				removed = c
				doc.Cart = append(doc.Cart[:i], doc.Cart[i+1:]...)
				return nil
			}
		}
		return domain.Errorf(domain.KindNotFound, "Cart entry not found")
	})
	return removed, err
}

// Summary prices every cart entry against its listing. Unavailable lines are
// listed with a zero subtotal and left out of the total.
func (s *CartService) Summary(ctx context.Context) (CartSummary, error) {
	sum := CartSummary{Lines: []CartLine{}, Total: decimal.Zero}
	err := s.DB.View(ctx, func(doc *store.Document) error {
		for _, c := range doc.Cart {
			line := CartLine{Entry: c, UnitPrice: decimal.Zero, Subtotal: decimal.Zero}
			if idx := doc.FindListing(c.ListingID); idx != -1 {
				l := &doc.Listings[idx]
				line.Title = l.Title
				line.UnitPrice = decimal.NewFromFloat(l.Price)
				line.Available = !l.IsSold()
				if l.IsWorkshop() {
					line.Available = l.SeatsLeft() > 0
				}
			}
			if line.Available {
				line.Subtotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
				sum.Total = sum.Total.Add(line.Subtotal)
				sum.Items += c.Quantity
			}
			sum.Lines = append(sum.Lines, line)
		}
		return nil
	})
	return sum, err
}
