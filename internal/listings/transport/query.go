package transport

import (
	"strconv"
	"strings"

	"estate_portal_backend/internal/listings/domain"
	"estate_portal_backend/platform/apperr"
)

// ErrInvalidPriceRange is returned for a price band that cannot be parsed
// or whose minimum exceeds its maximum.
var ErrInvalidPriceRange = apperr.Validation("invalid price range").WithCode("INVALID_PRICE_RANGE")

// Criteria converts the query string into filter criteria. priceRange takes
// "min-max" or "min+" and wins over priceMin/priceMax.
func (r BrowseRequest) Criteria() (domain.Criteria, error) {
	c := domain.Criteria{
		PropertyType: r.PropertyType,
		Location:     r.Location,
		Possession:   r.Possession,
		Builder:      r.Builder,
		BHK:          r.BHK,
		SearchQuery:  r.Search,
	}
	if amenities := splitList(r.Amenities); len(amenities) > 0 {
		c.Amenities = amenities
	}

	bound, err := r.priceBound()
	if err != nil {
		return domain.Criteria{}, err
	}
	c.PriceRange = bound
	return c, nil
}

func (r BrowseRequest) priceBound() (*domain.PriceBound, error) {
	raw := strings.TrimSpace(r.PriceRange)
	if raw != "" {
		return ParsePriceRange(raw)
	}
	if r.PriceMin == nil && r.PriceMax == nil {
		return nil, nil
	}

	bound := domain.OpenPriceBound(0)
	if r.PriceMin != nil {
		bound.Min = *r.PriceMin
	}
	if r.PriceMax != nil {
		bound.Max = *r.PriceMax
	}
	if bound.Min > bound.Max {
		return nil, ErrInvalidPriceRange
	}
	return &bound, nil
}

// ParsePriceRange parses "min-max" or "min+" in whole rupees.
func ParsePriceRange(raw string) (*domain.PriceBound, error) {
	raw = strings.TrimSpace(raw)
	if open, ok := strings.CutSuffix(raw, "+"); ok {
		min, err := parseAmount(open)
		if err != nil {
			return nil, err
		}
		bound := domain.OpenPriceBound(min)
		return &bound, nil
	}

	lo, hi, ok := strings.Cut(raw, "-")
	if !ok {
		return nil, ErrInvalidPriceRange
	}
	min, err := parseAmount(lo)
	if err != nil {
		return nil, err
	}
	max, err := parseAmount(hi)
	if err != nil {
		return nil, err
	}
	if min > max {
		return nil, ErrInvalidPriceRange
	}
	return &domain.PriceBound{Min: min, Max: max}, nil
}

func parseAmount(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 {
		return 0, ErrInvalidPriceRange
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
