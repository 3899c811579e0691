package services

import (
	"context"
	"strings"

	"workmarket/internal/domain"
	"workmarket/internal/metrics"
	"workmarket/internal/store"
	"workmarket/internal/validate"
)

type ListingService struct {
	DB      *store.DB
	Metrics metrics.Recorder
}

func NewListingService(db *store.DB, rec metrics.Recorder) *ListingService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &ListingService{DB: db, Metrics: rec}
}

type CreateListingInput struct {
	Title       string   `json:"title" validate:"required,max=120"`
	Description string   `json:"description" validate:"required,max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Images      []string `json:"images" validate:"max=10,dive,max=2048"`
	OwnerID     *string  `json:"ownerId"`
	Type        string   `json:"type" validate:"omitempty,oneof=thrift workshop"`
	Category    string   `json:"category" validate:"max=60"`
	Date        string   `json:"date" validate:"required_if=Type workshop,max=32"`
	Time        string   `json:"time" validate:"required_if=Type workshop,max=32"`
	MaxSeats    int      `json:"maxSeats" validate:"gte=0,lte=10000"`
}

// ListingFilter narrows List; zero value returns everything.
type ListingFilter struct {
	Type     string
	Category string
	Query    string
}

func (s *ListingService) Create(ctx context.Context, in CreateListingInput) (domain.Listing, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Listing{}, err
	}
	title := validate.Text(in.Title)
	if title == "" {
		return domain.Listing{}, domain.Errorf(domain.KindInvalidInput, "title is required")
	}
	kind := domain.ListingType(in.Type)
	if kind == "" {
		kind = domain.TypeThrift
	}
	date, tm := strings.TrimSpace(in.Date), strings.TrimSpace(in.Time)
	if kind == domain.TypeWorkshop && (date == "" || tm == "") {
		return domain.Listing{}, domain.Errorf(domain.KindInvalidInput, "date and time are required for workshops")
	}

	var owner *string
	if in.OwnerID != nil && strings.TrimSpace(*in.OwnerID) != "" {
		o := strings.TrimSpace(*in.OwnerID)
		owner = &o
	}
	l := domain.Listing{
		Type:        kind,
		Title:       title,
		Description: validate.Text(in.Description),
		Images:      cleanImages(in.Images),
		Category:    validate.Text(in.Category),
		OwnerID:     owner,
	}
	if in.Price != nil {
		l.Price = *in.Price
	}
	if l.Category == "" {
		l.Category = domain.DefaultCategory
	}
	if kind == domain.TypeWorkshop {
		l.WorkshopDetails = &domain.WorkshopDetails{Date: date, Time: tm, MaxSeats: in.MaxSeats}
	} else {
		l.ThriftDetails = &domain.ThriftDetails{}
	}

	err := s.DB.Update(ctx, func(doc *store.Document) error {
		if err := checkDuplicate(doc, &l); err != nil {
			return err
		}
		if kind == domain.TypeWorkshop {
			l.ID = newID(prefixWorkshop)
		} else {
			l.ID = newID(prefixThrift)
		}
		l.CreatedAt = now()
		doc.Listings = append(doc.Listings, l)
		return nil
	})
	if err != nil {
		if k := domain.KindOf(err); k != "" {
			s.Metrics.Rejected("create_listing", string(k))
		}
		return domain.Listing{}, err
	}
	s.Metrics.ListingCreated(string(kind))
	return l, nil
}

// checkDuplicate enforces one thrift listing per (owner, title) ignoring case
// and one workshop per (owner, date, time).
func checkDuplicate(doc *store.Document, l *domain.Listing) error {
	owner := l.Owner()
	for i := range doc.Listings {
		existing := &doc.Listings[i]
		if existing.Type != l.Type || existing.Owner() != owner {
			continue
		}
		switch l.Type {
		case domain.TypeThrift:
			if strings.EqualFold(existing.Title, l.Title) {
				return domain.Errorf(domain.KindDuplicateListing, "You already have a listing with this title")
			}
		case domain.TypeWorkshop:
			if existing.Date == l.Date && existing.Time == l.Time {
				return domain.Errorf(domain.KindDuplicateSchedule, "You already have a workshop scheduled at this date and time")
			}
		}
	}
	return nil
}

func cleanImages(in []string) []string {
	out := make([]string, 0, len(in))
	for _, img := range in {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	if len(out) == 0 {
		return []string{domain.PlaceholderImage}
	}
	return out
}

func (s *ListingService) List(ctx context.Context, f ListingFilter) ([]domain.Listing, error) {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := []domain.Listing{}
	err := s.DB.View(ctx, func(doc *store.Document) error {
		for _, l := range doc.Listings {
			if f.Type != "" && string(l.Type) != f.Type {
				continue
			}
			if f.Category != "" && !strings.EqualFold(l.Category, f.Category) {
				continue
			}
			if q != "" && !strings.Contains(strings.ToLower(l.Title), q) &&
				!strings.Contains(strings.ToLower(l.Description), q) {
				continue
			}
			out = append(out, l)
		}
		return nil
	})
	return out, err
}

func (s *ListingService) Get(ctx context.Context, id string) (domain.Listing, error) {
	var out domain.Listing
	err := s.DB.View(ctx, func(doc *store.Document) error {
		idx := doc.FindListing(id)
		if idx == -1 {
			return domain.Errorf(domain.KindNotFound, "Not found")
		}
		out = doc.Listings[idx]
		return nil
	})
	return out, err
}

// Delete removes the listing and, in the same save, every enrollment and
// cart entry that points at it.
func (s *ListingService) Delete(ctx context.Context, id string) (domain.Listing, error) {
	var removed domain.Listing
	err := s.DB.Update(ctx, func(doc *store.Document) error {
		l, ok := doc.RemoveListing(id)
		if !ok {
			return domain.Errorf(domain.KindNotFound, "Listing not found")
		}
		removed = l
		return nil
	})
	if err != nil {
		return domain.Listing{}, err
	}
	s.Metrics.ListingDeleted()
	return removed, nil
}
