package token

import (
	"context"
	"time"
)

// Token is an opaque access or refresh credential stored server-side.
type Token struct {
	Token      string
	CustomerID string
	Kind       string
	ExpiresAt  time.Time
}

type Repository interface {
	Create(ctx context.Context, in Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
