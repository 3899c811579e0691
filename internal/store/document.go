package store

import (
	"encoding/json"
	"fmt"

	"workmarket/internal/domain"
)

// Document is the whole database: every collection, loaded and saved as one
// unit.
type Document struct {
	Users       []domain.User       `json:"users"`
	Listings    []domain.Listing    `json:"listings"`
	Cart        []domain.CartEntry  `json:"cart"`
	Messages    []domain.Message    `json:"messages"`
	Enrollments []domain.Enrollment `json:"enrollments"`
	Orders      []domain.Order      `json:"orders"`
	Reports     []domain.Report     `json:"reports"`

	// version is the backend's write token; only SQLiteBackend uses it.
	version int64
}

// NewDocument returns a document with every collection present and empty.
func NewDocument() *Document {
	d := &Document{}
	d.normalize()
	return d
}

func (d *Document) normalize() {
	if d.Users == nil {
		d.Users = []domain.User{}
	}
	if d.Listings == nil {
		d.Listings = []domain.Listing{}
	}
	if d.Cart == nil {
		d.Cart = []domain.CartEntry{}
	}
	if d.Messages == nil {
		d.Messages = []domain.Message{}
	}
	if d.Enrollments == nil {
		d.Enrollments = []domain.Enrollment{}
	}
	if d.Orders == nil {
		d.Orders = []domain.Order{}
	}
	if d.Reports == nil {
		d.Reports = []domain.Report{}
	}
	for i := range d.Listings {
		d.Listings[i].Normalize()
	}
}

// FindListing returns the index of the listing with id, or -1.
func (d *Document) FindListing(id string) int {
	for i := range d.Listings {
		if d.Listings[i].ID == id {
			return i
		}
	}
	return -1
}

// RemoveListing deletes a listing together with the enrollments and cart
// entries that reference it. Orders and reports are history and stay.
func (d *Document) RemoveListing(id string) (domain.Listing, bool) {
	idx := d.FindListing(id)
	if idx == -1 {
		return domain.Listing{}, false
	}
	removed := d.Listings[idx]
	d.Listings = append(d.Listings[:idx], d.Listings[idx+1:]...)

	enrollments := d.Enrollments[:0]
	for _, e := range d.Enrollments {
		if e.WorkshopID != id {
			enrollments = append(enrollments, e)
		}
	}
	d.Enrollments = enrollments
	d.RemoveCartEntriesFor(id)
	return removed, true
}

func (d *Document) RemoveCartEntriesFor(listingID string) {
	cart := d.Cart[:0]
	for _, c := range d.Cart {
		if c.ListingID != listingID {
			cart = append(cart, c)
		}
	}
	d.Cart = cart
}

func decode(b []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	d.normalize()
	return &d, nil
}

func encode(d *Document) ([]byte, error) {
	d.normalize()
	return json.MarshalIndent(d, "", "  ")
}
