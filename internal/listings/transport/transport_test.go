package transport

import (
	"errors"
	"math"
	"testing"

	"estate_portal_backend/internal/listings/domain"
	"estate_portal_backend/platform/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParsePriceRange(t *testing.T) {
	bound, err := ParsePriceRange("5000000-10000000")
	require.NoError(t, err)
	assert.Equal(t, domain.PriceBound{Min: 5000000, Max: 10000000}, *bound)

	bound, err = ParsePriceRange(" 50000000+ ")
	require.NoError(t, err)
	assert.Equal(t, int64(50000000), bound.Min)
	assert.Equal(t, int64(math.MaxInt64), bound.Max)

	for _, raw := range []string{"abc", "10-5", "-5", "5-", "1e6-2e6"} {
		_, err := ParsePriceRange(raw)
		assert.True(t, errors.Is(err, ErrInvalidPriceRange), raw)
	}
}

func TestCriteriaFromQuery(t *testing.T) {
	req := BrowseRequest{
		Search:    "tower",
		BHK:       "3+ BHK",
		Amenities: "Gym, Swimming Pool,,",
		PriceMin:  ptr(int64(1_00_00_000)),
	}

	c, err := req.Criteria()
	require.NoError(t, err)
	assert.Equal(t, "tower", c.SearchQuery)
	assert.Equal(t, []string{"Gym", "Swimming Pool"}, c.Amenities)
	require.NotNil(t, c.PriceRange)
	assert.Equal(t, int64(1_00_00_000), c.PriceRange.Min)
	assert.Equal(t, int64(math.MaxInt64), c.PriceRange.Max)
}

func TestCriteriaRangeWinsOverBounds(t *testing.T) {
	req := BrowseRequest{PriceRange: "0-5000000", PriceMin: ptr(int64(9))}
	c, err := req.Criteria()
	require.NoError(t, err)
	assert.Equal(t, domain.PriceBound{Min: 0, Max: 5000000}, *c.PriceRange)
}

func TestCriteriaRejectsInvertedBounds(t *testing.T) {
	req := BrowseRequest{PriceMin: ptr(int64(10)), PriceMax: ptr(int64(5))}
	_, err := req.Criteria()
	assert.ErrorIs(t, err, ErrInvalidPriceRange)
}

func TestCriteriaWithoutPriceIsUnbounded(t *testing.T) {
	c, err := BrowseRequest{}.Criteria()
	require.NoError(t, err)
	assert.Nil(t, c.PriceRange)
	assert.True(t, c.IsEmpty())
}

func TestRegisteredTags(t *testing.T) {
	val := validator.New()
	require.NoError(t, RegisterValidations(val))

	assert.NoError(t, val.Struct(BrowseRequest{Sort: "price-low", BHK: "4+ BHK"}))
	assert.Error(t, val.Struct(BrowseRequest{Sort: "cheapest"}))
	assert.Error(t, val.Struct(BrowseRequest{BHK: "studio"}))
	assert.Error(t, val.Struct(BrowseRequest{PageSize: 101}))
}
