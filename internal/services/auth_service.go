package services

import (
	"context"
	"strings"
	"time"

	"workmarket/internal/auth"
	"workmarket/internal/domain"
	"workmarket/internal/store"
	"workmarket/internal/validate"
)

var ErrBadCreds = domain.Errorf(domain.KindUnauthorized, "Invalid email or password")

type AuthService struct {
	DB     *store.DB
	Tokens *auth.TokenManager
	// AllowedDomain restricts logins to one company email domain; empty
	// allows any.
	AllowedDomain string
}

func NewAuthService(db *store.DB, tokens *auth.TokenManager, allowedDomain string) *AuthService {
	return &AuthService{DB: db, Tokens: tokens, AllowedDomain: allowedDomain}
}

type LoginResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      domain.PublicUser `json:"user"`
}

func (s *AuthService) Users(ctx context.Context) ([]domain.PublicUser, error) {
	out := []domain.PublicUser{}
	err := s.DB.View(ctx, func(doc *store.Document) error {
		for _, u := range doc.Users {
			out = append(out, u.Public())
		}
		return nil
	})
	return out, err
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email, ok := validate.Email(email)
	if !ok || password == "" {
		return LoginResult{}, ErrBadCreds
	}
	if !validate.EmailInDomain(email, s.AllowedDomain) {
		return LoginResult{}, domain.Errorf(domain.KindUnauthorized, "Please use your company email")
	}

	var user domain.User
	found := false
	err := s.DB.View(ctx, func(doc *store.Document) error {
		for _, u := range doc.Users {
			if strings.EqualFold(u.Email, email) {
				user, found = u, true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return LoginResult{}, err
	}
	if !found || user.PasswordHash == "" || auth.CheckPassword(user.PasswordHash, password) != nil {
		return LoginResult{}, ErrBadCreds
	}

	tok, exp, err := s.Tokens.Issue(user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: tok, ExpiresAt: exp, User: user.Public()}, nil
}

// Me resolves a bearer token into its claims.
func (s *AuthService) Me(token string) (*auth.Claims, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, domain.Errorf(domain.KindUnauthorized, "Missing token")
	}
	claims, err := s.Tokens.Verify(token)
	if err != nil {
		return nil, domain.Errorf(domain.KindUnauthorized, "Invalid or expired token")
	}
	return claims, nil
}
