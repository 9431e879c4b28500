package domain

import (
	"bytes"
	"cmp"
	"slices"
	"strings"

	"estate_portal_backend/platform/apperr"
)

// SortKey names an ordering of the filtered listings.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
	SortArea      SortKey = "area"
)

// SortKeys lists every ordering in display order.
var SortKeys = []SortKey{SortFeatured, SortPriceLow, SortPriceHigh, SortNewest, SortArea}

// ErrInvalidSortKey is matched with errors.Is against ParseSortKey failures.
var ErrInvalidSortKey = apperr.Validation("invalid sort key").WithCode("INVALID_SORT_KEY")

// ParseSortKey accepts the known keys case-insensitively. The empty string
// selects SortFeatured.
func ParseSortKey(raw string) (SortKey, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return SortFeatured, nil
	}
	key := SortKey(trimmed)
	if !slices.Contains(SortKeys, key) {
		return "", apperr.Validation("unknown sort key: " + raw).
			WithCode(ErrInvalidSortKey.Code).
			WithDetails(map[string]any{"allowed": SortKeys})
	}
	return key, nil
}

func byID(a, b Listing) int {
	return bytes.Compare(a.ID[:], b.ID[:])
}

func byPriceLow(a, b Listing) int {
	if c := cmp.Compare(a.PriceRange.Min, b.PriceRange.Min); c != 0 {
		return c
	}
	return byID(a, b)
}

var comparators = map[SortKey]func(a, b Listing) int{
	SortPriceLow: byPriceLow,
	// Exact reverse of price-low, ties included.
	SortPriceHigh: func(a, b Listing) int {
		return byPriceLow(b, a)
	},
	SortNewest: func(a, b Listing) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return byID(a, b)
	},
	SortArea: func(a, b Listing) int {
		if c := cmp.Compare(b.Specifications.AreaSqFt, a.Specifications.AreaSqFt); c != 0 {
			return c
		}
		return byID(a, b)
	},
}

// Sort returns a sorted copy of listings. SortFeatured and unknown keys keep
// the input order.
func Sort(listings []Listing, key SortKey) []Listing {
	out := slices.Clone(listings)
	if out == nil {
		out = []Listing{}
	}
	if compare, ok := comparators[key]; ok {
		slices.SortStableFunc(out, compare)
	}
	return out
}
