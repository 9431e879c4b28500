package domain

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// PriceBound is a requested price band in whole rupees.
type PriceBound struct {
	Min int64
	Max int64
}

// OpenPriceBound returns a bound with no upper limit.
func OpenPriceBound(min int64) PriceBound {
	return PriceBound{Min: min, Max: math.MaxInt64}
}

// Criteria is the set of user-selected constraints. Zero values mean no
// constraint on that dimension.
type Criteria struct {
	PriceRange   *PriceBound
	PropertyType string
	Location     string
	Possession   string
	Builder      string
	BHK          string
	Amenities    []string
	SearchQuery  string
}

// IsEmpty reports whether the criteria constrain nothing.
func (c Criteria) IsEmpty() bool {
	return c.PriceRange == nil &&
		strings.TrimSpace(c.PropertyType) == "" &&
		strings.TrimSpace(c.Location) == "" &&
		strings.TrimSpace(c.Possession) == "" &&
		strings.TrimSpace(c.Builder) == "" &&
		strings.TrimSpace(c.BHK) == "" &&
		len(DedupeLabels(c.Amenities)) == 0 &&
		strings.TrimSpace(c.SearchQuery) == ""
}

// Key is a canonical form of the criteria: two criteria with the same key
// select the same listings. Amenity order and letter case do not matter.
func (c Criteria) Key() string {
	amenities := make([]string, 0, len(c.Amenities))
	for _, a := range DedupeLabels(c.Amenities) {
		amenities = append(amenities, fold(a))
	}
	slices.Sort(amenities)

	price := "-"
	if c.PriceRange != nil {
		price = strconv.FormatInt(c.PriceRange.Min, 10) + ".." + strconv.FormatInt(c.PriceRange.Max, 10)
	}

	return strings.Join([]string{
		price,
		fold(c.PropertyType),
		fold(c.Location),
		fold(c.Possession),
		fold(c.Builder),
		fold(c.BHK),
		strings.Join(amenities, ","),
		fold(c.SearchQuery),
	}, "\x1f")
}
