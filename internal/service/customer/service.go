package customer

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	custrepo "storefront/internal/repository/customer"
	tokenrepo "storefront/internal/repository/token"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles signup/login flows and token lookups.
type Service struct {
	repo        custrepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(repo custrepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		passwordMin: 8,
	}
}

// AddressInput mirrors incoming address payloads.
type AddressInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	StreetName string `json:"streetName"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email                  string         `json:"email"`
	Password               string         `json:"password"`
	FirstName              string         `json:"firstName"`
	LastName               string         `json:"lastName"`
	Addresses              []AddressInput `json:"addresses"`
	DefaultShippingAddress *int           `json:"defaultShippingAddress"`
}

// Signup registers a new shopper.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.Customer, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, errors.New("email required")
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	addresses := make([]domain.CustomerAddress, 0, len(in.Addresses))
	for _, a := range in.Addresses {
		addresses = append(addresses, domain.CustomerAddress{
			ID:         randomAddressID(),
			FirstName:  a.FirstName,
			LastName:   a.LastName,
			Phone:      a.Phone,
			StreetName: a.StreetName,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Country:    a.Country,
		})
	}

	shippingID := addressIDFromIndex(addresses, in.DefaultShippingAddress)
	if shippingID == "" && len(addresses) > 0 {
		shippingID = addresses[0].ID
	}

	return s.repo.Create(ctx, domain.Customer{
		Email:                    email,
		PasswordHash:             string(hashed),
		FirstName:                in.FirstName,
		LastName:                 in.LastName,
		Addresses:                addresses,
		DefaultShippingAddressID: shippingID,
	})
}

// Login validates credentials and returns issued tokens plus the customer.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Customer, string, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, c.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.Issue(ctx, c.ID, "refresh", s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return c, access, refresh, nil
}

// LookupByToken resolves an access token to its customer.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.Customer, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	return s.repo.GetByID(ctx, meta.CustomerID)
}

// AccessTTLSeconds reports the access token lifetime for login responses.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

func validatePassword(password string, minLen int) error {
	if len(password) < minLen {
		return fmt.Errorf("password must be at least %d characters", minLen)
	}
	return nil
}

func addressIDFromIndex(addresses []domain.CustomerAddress, index *int) string {
	if index == nil || *index < 0 || *index >= len(addresses) {
		return ""
	}
	return addresses[*index].ID
}

func randomAddressID() string {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		return "addr"
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
