package handlers

import (
	"workmarket/internal/auth"
	"workmarket/internal/metrics"
	"workmarket/internal/services"
	"workmarket/internal/store"
)

type Deps struct {
	Listings    *ListingHandler
	Enrollments *EnrollmentHandler
	Orders      *OrderHandler
	Cart        *CartHandler
	Messages    *MessageHandler
	Auth        *AuthHandler
	Reports     *ReportHandler
	Admin       *AdminHandler

	Tokens  *auth.TokenManager
	Metrics metrics.Recorder
}

func NewDeps(db *store.DB, rec metrics.Recorder, tokens *auth.TokenManager, allowedDomain string) *Deps {
	if rec == nil {
		rec = metrics.Nop{}
	}
	listingSvc := services.NewListingService(db, rec)
	availSvc := services.NewAvailabilityService(db)
	enrollSvc := services.NewEnrollmentService(db, rec)
	orderSvc := services.NewOrderService(db, rec)
	cartSvc := services.NewCartService(db)
	msgSvc := services.NewMessageService(db)
	authSvc := services.NewAuthService(db, tokens, allowedDomain)
	modSvc := services.NewModerationService(db, rec)

	return &Deps{
		Listings:    &ListingHandler{Listings: listingSvc, AvailabilitySvc: availSvc},
		Enrollments: &EnrollmentHandler{Enrollments: enrollSvc},
		Orders:      &OrderHandler{Orders: orderSvc},
		Cart:        &CartHandler{Cart: cartSvc},
		Messages:    &MessageHandler{Messages: msgSvc},
		Auth:        &AuthHandler{Auth: authSvc},
		Reports:     &ReportHandler{Moderation: modSvc},
		Admin:       &AdminHandler{Moderation: modSvc, Listings: listingSvc},
		Tokens:      tokens,
		Metrics:     rec,
	}
}
