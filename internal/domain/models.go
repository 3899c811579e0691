package domain

import "time"

type ListingType string

const (
	TypeThrift   ListingType = "thrift"
	TypeWorkshop ListingType = "workshop"
)

const (
	DefaultCategory  = "Misc"
	PlaceholderImage = "https://placehold.co/600x400?text=No+Image"
)

// Listing is either a thrift item or a workshop. The common fields live on
// the listing itself; exactly one of ThriftDetails / WorkshopDetails is set,
// matching Type. Both embed flat into the JSON object.
type Listing struct {
	ID          string      `json:"id"`
	Type        ListingType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Images      []string    `json:"images"`
	Category    string      `json:"category"`
	OwnerID     *string     `json:"ownerId"`
	CreatedAt   time.Time   `json:"createdAt"`

	*ThriftDetails
	*WorkshopDetails
}

type ThriftDetails struct {
	Sold bool `json:"sold"`
}

type WorkshopDetails struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	MaxSeats    int    `json:"maxSeats"`
	BookedSeats int    `json:"bookedSeats"`
}

func (l *Listing) IsWorkshop() bool { return l.Type == TypeWorkshop }

// Owner returns the owner id, or "" for unowned listings.
func (l *Listing) Owner() string {
	if l.OwnerID == nil {
		return ""
	}
	return *l.OwnerID
}

func (l *Listing) IsSold() bool {
	return l.ThriftDetails != nil && l.ThriftDetails.Sold
}

// SeatsLeft is zero for thrift listings.
func (l *Listing) SeatsLeft() int {
	if l.WorkshopDetails == nil {
		return 0
	}
	if left := l.MaxSeats - l.BookedSeats; left > 0 {
		return left
	}
	return 0
}

// Normalize repairs records written by older clients: a missing type means
// thrift, and the variant pointer is made to agree with the type.
func (l *Listing) Normalize() {
	if l.Type == "" {
		l.Type = TypeThrift
	}
	switch l.Type {
	case TypeWorkshop:
		l.ThriftDetails = nil
		if l.WorkshopDetails == nil {
			l.WorkshopDetails = &WorkshopDetails{}
		}
	default:
		l.WorkshopDetails = nil
		if l.ThriftDetails == nil {
			l.ThriftDetails = &ThriftDetails{}
		}
	}
	if l.Images == nil {
		l.Images = []string{}
	}
}

type Enrollment struct {
	ID         string    `json:"id"`
	WorkshopID string    `json:"workshopId"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CartEntry struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listingId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

type Order struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listingId"`
	BuyerID   string    `json:"buyerId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

type Message struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportApproved ReportStatus = "approved"
	ReportRemoved  ReportStatus = "removed"
)

// Report is a flag raised against a listing, resolved by a moderator.
type Report struct {
	ID         string       `json:"id"`
	ListingID  string       `json:"listingId"`
	ReportedBy string       `json:"reportedBy"`
	Reason     string       `json:"reason"`
	Status     ReportStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	ResolvedAt *time.Time   `json:"resolvedAt,omitempty"`
}

type Availability struct {
	Status    string `json:"status"` // OPEN | FEW_SEATS_LEFT | SOLD_OUT | AVAILABLE | SOLD
	SeatsLeft int    `json:"seatsLeft,omitempty"`
}
