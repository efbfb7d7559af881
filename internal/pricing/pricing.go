package pricing

import (
	"math"

	"storefront/internal/domain"
)

// Combo group statuses. A group prices at its flat offer only when full;
// under- and over-filled groups fall back to per-unit pricing.
const (
	StatusUnder = "under"
	StatusFull  = "full"
	StatusOver  = "over"
)

// ComboGroup is the derived view of all combo lines sharing one bundle key.
// Required and OfferPaise are read off the first member; members are assumed
// to agree (disagreeing members are undefined behavior upstream).
type ComboGroup struct {
	Key        string
	Items      []domain.CartItem
	Required   int
	OfferPaise int64
	Total      int
}

// Status reports whether the bundle is under-filled, exactly full, or over-filled.
func (g ComboGroup) Status() string {
	switch {
	case g.Total < g.Required:
		return StatusUnder
	case g.Total == g.Required:
		return StatusFull
	default:
		return StatusOver
	}
}

// Contribution is the group's share of the cart subtotal: the flat offer
// price when the bundle is exactly full and an offer exists, otherwise the
// sum of unit price times quantity across members.
func (g ComboGroup) Contribution() int64 {
	if g.Status() == StatusFull && g.OfferPaise > 0 {
		return g.OfferPaise
	}
	var sum int64
	for _, it := range g.Items {
		sum += it.PricePaise * int64(it.Quantity)
	}
	return sum
}

// GroupCombos collects combo lines into bundles keyed by BundleKey,
// preserving first-seen order. Regular lines are ignored.
func GroupCombos(items []domain.CartItem) []ComboGroup {
	var groups []ComboGroup
	index := make(map[string]int)
	for _, it := range items {
		if !it.IsCombo {
			continue
		}
		key := it.BundleKey()
		i, ok := index[key]
		if !ok {
			index[key] = len(groups)
			groups = append(groups, ComboGroup{
				Key:        key,
				Required:   it.ComboQuantity,
				OfferPaise: it.ComboOfferPaise,
			})
			i = len(groups) - 1
		}
		groups[i].Items = append(groups[i].Items, it)
		groups[i].Total += it.Quantity
	}
	return groups
}

// Subtotal computes the combo-aware cart subtotal: regular lines contribute
// unit price times quantity, combo bundles contribute per ComboGroup rules.
func Subtotal(items []domain.CartItem) int64 {
	var sum int64
	for _, it := range items {
		if it.IsCombo {
			continue
		}
		sum += it.PricePaise * int64(it.Quantity)
	}
	for _, g := range GroupCombos(items) {
		sum += g.Contribution()
	}
	return sum
}

// Shortfall reports how many more units an under-filled bundle needs.
type Shortfall struct {
	Key     string `json:"key"`
	Missing int    `json:"missing"`
}

// Shortfalls returns one entry per under-filled combo group. Checkout is
// blocked while this is non-empty.
func Shortfalls(items []domain.CartItem) []Shortfall {
	var out []Shortfall
	for _, g := range GroupCombos(items) {
		if g.Status() == StatusUnder {
			out = append(out, Shortfall{Key: g.Key, Missing: g.Required - g.Total})
		}
	}
	return out
}

// Discount computes a rounded percentage discount on the subtotal.
func Discount(subtotalPaise int64, percent int) int64 {
	if percent <= 0 || subtotalPaise <= 0 {
		return 0
	}
	return int64(math.Round(float64(subtotalPaise) * float64(percent) / 100))
}
