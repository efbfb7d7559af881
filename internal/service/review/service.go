package review

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	reviewrepo "storefront/internal/repository/review"
)

type Service struct {
	repo reviewrepo.Repository
}

func New(repo reviewrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Add stores a customer's review; re-reviewing the same product replaces the
// earlier entry.
func (s *Service) Add(ctx context.Context, in domain.Review) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	in.Body = strings.TrimSpace(in.Body)
	return s.repo.Upsert(ctx, in)
}

func (s *Service) ListByProduct(ctx context.Context, productID string) ([]domain.Review, *domain.ReviewSummary, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	summary, err := s.repo.Summary(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	return reviews, summary, nil
}
