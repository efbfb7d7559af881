package guestcart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/domain"
)

type redisRepo struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) Repository {
	return &redisRepo{client: client, ttl: ttl}
}

func cartKey(guestID string) string {
	return "guestcart:" + guestID
}

func (r *redisRepo) Get(ctx context.Context, guestID string) ([]domain.CartItem, error) {
	raw, err := r.client.Get(ctx, cartKey(guestID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode guest cart: %w", err)
	}
	return items, nil
}

func (r *redisRepo) Put(ctx context.Context, guestID string, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode guest cart: %w", err)
	}
	return r.client.Set(ctx, cartKey(guestID), raw, r.ttl).Err()
}

func (r *redisRepo) Delete(ctx context.Context, guestID string) error {
	return r.client.Del(ctx, cartKey(guestID)).Err()
}
