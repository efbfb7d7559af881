package product

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListPublished(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Upsert validates and stores an admin catalog entry.
func (s *Service) Upsert(ctx context.Context, in domain.Product) (*domain.Product, error) {
	in.Key = strings.TrimSpace(in.Key)
	if in.Key == "" {
		return nil, errors.New("key required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name required")
	}
	if in.PricePaise <= 0 {
		return nil, errors.New("price must be positive")
	}
	if in.Currency == "" {
		in.Currency = "INR"
	}
	if in.IsCombo {
		if in.ComboQuantity <= 0 {
			return nil, errors.New("combo quantity must be positive")
		}
		if in.ComboOfferPaise <= 0 {
			return nil, errors.New("combo offer price must be positive")
		}
	}
	return s.repo.Upsert(ctx, in)
}
