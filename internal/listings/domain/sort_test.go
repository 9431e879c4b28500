package domain

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortFeatured, key)

	key, err = ParseSortKey(" Price-High ")
	require.NoError(t, err)
	assert.Equal(t, SortPriceHigh, key)

	_, err = ParseSortKey("rating")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSortKey))
}

func TestFeaturedKeepsInputOrder(t *testing.T) {
	listings := sampleListings()
	slices.Reverse(listings)
	assert.Equal(t, ids(listings), ids(Sort(listings, SortFeatured)))
}

func TestPriceLowReversedIsPriceHigh(t *testing.T) {
	listings := append(sampleListings(), manyListings(50)...)

	low := Sort(listings, SortPriceLow)
	high := Sort(listings, SortPriceHigh)
	slices.Reverse(low)

	assert.Equal(t, ids(high), ids(low))
}

func TestPriceLowBreaksTiesByID(t *testing.T) {
	got := ids(Sort(sampleListings(), SortPriceLow))
	// Sobha City and Corporate Greens share a minimum price.
	assert.Equal(t, []uuid.UUID{id(3), id(4), id(2), id(1), id(5)}, got)
}

func TestNewestAndArea(t *testing.T) {
	listings := sampleListings()
	assert.Equal(t, []uuid.UUID{id(5), id(2), id(4), id(1), id(3)}, ids(Sort(listings, SortNewest)))
	assert.Equal(t, []uuid.UUID{id(4), id(5), id(1), id(2), id(3)}, ids(Sort(listings, SortArea)))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	listings := sampleListings()
	before := ids(listings)
	_ = Sort(listings, SortPriceHigh)
	assert.Equal(t, before, ids(listings))
	assert.NotNil(t, Sort(nil, SortNewest))
}
