package store

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"workmarket/internal/domain"
)

// DemoPassword is the password every seeded demo account logs in with.
const DemoPassword = "Passw0rd!"

// SeedDemo ensures the demo accounts exist and, on an empty marketplace,
// adds a few starter listings. Safe to run on every start.
func SeedDemo(doc *Document) error {
	type u struct{ ID, Email, Name, Role string }
	users := []u{
		{"u-sarah", "sarah.chen@company.com", "Sarah Chen", domain.RoleUser},
		{"u-michael", "michael.torres@company.com", "Michael Torres", domain.RoleUser},
		{"u-emma", "emma.johnson@company.com", "Emma Johnson", domain.RoleUser},
		{"u-david", "david.park@company.com", "David Park", domain.RoleUser},
		{"u-admin", "admin@company.com", "Admin", domain.RoleAdmin},
	}

	known := make(map[string]bool, len(doc.Users))
	for _, x := range doc.Users {
		known[strings.ToLower(x.Email)] = true
	}
	for _, x := range users {
		if known[x.Email] {
			continue
		}
		h, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		doc.Users = append(doc.Users, domain.User{
			ID: x.ID, Email: x.Email, Name: x.Name, Role: x.Role, PasswordHash: string(h),
		})
	}

	if len(doc.Listings) > 0 {
		return nil
	}
	now := time.Now().UTC()
	owner := func(id string) *string { return &id }
	doc.Listings = append(doc.Listings,
		domain.Listing{
			ID: "l-seed-jacket", Type: domain.TypeThrift, Title: "Vintage Denim Jacket",
			Description: "Barely worn, size M.", Price: 45, Category: "Fashion",
			Images: []string{domain.PlaceholderImage}, OwnerID: owner("u-michael"), CreatedAt: now,
			ThriftDetails: &domain.ThriftDetails{},
		},
		domain.Listing{
			ID: "w-seed-photo", Type: domain.TypeWorkshop, Title: "Intro to Street Photography",
			Description: "Two hours of composition basics, bring any camera.", Price: 25, Category: "Photography",
			Images: []string{domain.PlaceholderImage}, OwnerID: owner("u-emma"), CreatedAt: now,
			WorkshopDetails: &domain.WorkshopDetails{Date: "2026-11-05", Time: "17:30", MaxSeats: 15},
		},
	)
	return nil
}
