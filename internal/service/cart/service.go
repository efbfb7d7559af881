package cart

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/pricing"
	"storefront/internal/repository/cartdoc"
	"storefront/internal/repository/guestcart"
)

// ErrNoIdentity is returned when a cart operation has neither a customer nor
// a guest id to resolve a store against.
var ErrNoIdentity = errors.New("cart identity required")

// Identity names the cart a request operates on. Customer carts live in the
// document store; guest carts live in the ephemeral key-value store. When
// both ids are present the customer cart wins and the guest store is only a
// degradation target for denied writes.
type Identity struct {
	CustomerID string
	GuestID    string
}

// Service is the single source of truth for a shopper's current selections.
type Service struct {
	docs   cartdoc.Repository
	guests guestcart.Repository
	logger *log.Logger
	now    func() time.Time
}

func New(docs cartdoc.Repository, guests guestcart.Repository, logger *log.Logger) *Service {
	return &Service{
		docs:   docs,
		guests: guests,
		logger: logger,
		now:    time.Now,
	}
}

// AddInput carries the catalog snapshot taken when an item enters the cart.
type AddInput struct {
	ProductID       string       `json:"productId"`
	Title           string       `json:"title"`
	PricePaise      int64        `json:"pricePaise"`
	Image           string       `json:"image"`
	Quantity        int          `json:"quantity"`
	Size            string       `json:"size"`
	Color           domain.Color `json:"color"`
	IsCombo         bool         `json:"isCombo"`
	ComboQuantity   int          `json:"comboQuantity"`
	ComboOfferPaise int64        `json:"comboOfferPaise"`
	ComboKey        string       `json:"comboKey"`
}

// UniqueKey derives the stable de-duplication identity for a
// (product, size, color, combo-flag) combination.
func UniqueKey(productID, title, size string, color domain.Color, isCombo bool) string {
	base := strings.TrimSpace(productID)
	if base == "" {
		base = strings.TrimSpace(title)
	}
	h := sha256.Sum256([]byte(base + "|" + strings.TrimSpace(size) + "|" + color.Normalized() + "|" + strconv.FormatBool(isCombo)))
	return hex.EncodeToString(h[:8])
}

// Get returns the current items for the identity, empty when no cart exists.
func (s *Service) Get(ctx context.Context, id Identity) ([]domain.CartItem, error) {
	return s.load(ctx, id)
}

// Add appends or merges an item. Non-combo adds with a matching uniqueKey
// increment the existing line; combo adds always create a new line, so each
// slot-filling action stays a distinguishable row.
func (s *Service) Add(ctx context.Context, id Identity, in AddInput) ([]domain.CartItem, error) {
	if in.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if strings.TrimSpace(in.ProductID) == "" && strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("productId or title required")
	}
	if in.PricePaise < 0 {
		return nil, errors.New("price must not be negative")
	}

	items, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	key := UniqueKey(in.ProductID, in.Title, in.Size, in.Color, in.IsCombo)
	if !in.IsCombo {
		for i := range items {
			if items[i].UniqueKey == key {
				items[i].Quantity += in.Quantity
				if err := s.save(ctx, id, items); err != nil {
					return nil, err
				}
				return items, nil
			}
		}
	} else {
		key = key + "-" + strconv.FormatInt(s.now().UnixNano(), 10)
	}

	items = append(items, domain.CartItem{
		ProductID:       in.ProductID,
		Title:           in.Title,
		PricePaise:      in.PricePaise,
		Image:           in.Image,
		Quantity:        in.Quantity,
		Size:            in.Size,
		Color:           in.Color,
		UniqueKey:       key,
		IsCombo:         in.IsCombo,
		ComboQuantity:   in.ComboQuantity,
		ComboOfferPaise: in.ComboOfferPaise,
		ComboKey:        in.ComboKey,
	})
	if err := s.save(ctx, id, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove drops the line at index. It is the only way to take a quantity to zero.
func (s *Service) Remove(ctx context.Context, id Identity, index int) ([]domain.CartItem, error) {
	items, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(items) {
		return nil, domain.ErrNotFound
	}
	items = append(items[:index], items[index+1:]...)
	if err := s.save(ctx, id, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Increment raises the quantity of the line at index by one.
func (s *Service) Increment(ctx context.Context, id Identity, index int) ([]domain.CartItem, error) {
	return s.bump(ctx, id, index, 1)
}

// Decrement lowers the quantity of the line at index by one; at quantity 1
// it is a no-op.
func (s *Service) Decrement(ctx context.Context, id Identity, index int) ([]domain.CartItem, error) {
	return s.bump(ctx, id, index, -1)
}

func (s *Service) bump(ctx context.Context, id Identity, index, delta int) ([]domain.CartItem, error) {
	items, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(items) {
		return nil, domain.ErrNotFound
	}
	next := items[index].Quantity + delta
	if next < 1 {
		return items, nil
	}
	items[index].Quantity = next
	if err := s.save(ctx, id, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Clear deletes the cart for the identity.
func (s *Service) Clear(ctx context.Context, id Identity) error {
	switch {
	case id.CustomerID != "":
		return s.docs.Delete(ctx, id.CustomerID)
	case id.GuestID != "":
		return s.guests.Delete(ctx, id.GuestID)
	default:
		return ErrNoIdentity
	}
}

// Merge reconciles a guest cart into a customer cart once at login: matching
// uniqueKeys add quantities, everything else is appended. On success the
// guest cart is cleared and the customer document becomes authoritative. If
// the document write is denied, the merged result is kept in the guest store
// instead of being discarded.
func (s *Service) Merge(ctx context.Context, guestID, customerID string) ([]domain.CartItem, error) {
	if guestID == "" || customerID == "" {
		return nil, ErrNoIdentity
	}

	guestItems, err := s.guests.Get(ctx, guestID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load guest cart: %w", err)
	}

	merged, err := s.docs.Get(ctx, customerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load customer cart: %w", err)
	}

	if len(guestItems) == 0 {
		return merged, nil
	}

	byKey := make(map[string]int, len(merged))
	for i, it := range merged {
		byKey[it.UniqueKey] = i
	}
	for _, it := range guestItems {
		if i, ok := byKey[it.UniqueKey]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		merged = append(merged, it)
		byKey[it.UniqueKey] = len(merged) - 1
	}

	if err := s.docs.Put(ctx, customerID, merged); err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			s.logger.Printf("cart merge: customer %s write denied, keeping merged cart in guest store", customerID)
			if gerr := s.guests.Put(ctx, guestID, merged); gerr != nil {
				return nil, fmt.Errorf("keep merged cart in guest store: %w", gerr)
			}
			return merged, nil
		}
		return nil, fmt.Errorf("write merged cart: %w", err)
	}

	if err := s.guests.Delete(ctx, guestID); err != nil {
		s.logger.Printf("cart merge: clear guest cart %s: %v", guestID, err)
	}
	return merged, nil
}

// Subtotal is the combo-aware subtotal of the given items.
func (s *Service) Subtotal(items []domain.CartItem) int64 {
	return pricing.Subtotal(items)
}

func (s *Service) load(ctx context.Context, id Identity) ([]domain.CartItem, error) {
	var (
		items []domain.CartItem
		err   error
	)
	switch {
	case id.CustomerID != "":
		items, err = s.docs.Get(ctx, id.CustomerID)
	case id.GuestID != "":
		items, err = s.guests.Get(ctx, id.GuestID)
	default:
		return nil, ErrNoIdentity
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.CartItem{}, nil
		}
		return nil, err
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

// save persists the full item list. A denied customer-document write falls
// back to the guest store when a guest id is present rather than failing the
// mutation: cart contents are never dropped on the floor.
func (s *Service) save(ctx context.Context, id Identity, items []domain.CartItem) error {
	switch {
	case id.CustomerID != "":
		err := s.docs.Put(ctx, id.CustomerID, items)
		if err != nil && errors.Is(err, domain.ErrPermissionDenied) && id.GuestID != "" {
			s.logger.Printf("cart save: customer %s write denied, falling back to guest store", id.CustomerID)
			return s.guests.Put(ctx, id.GuestID, items)
		}
		return err
	case id.GuestID != "":
		return s.guests.Put(ctx, id.GuestID, items)
	default:
		return ErrNoIdentity
	}
}
