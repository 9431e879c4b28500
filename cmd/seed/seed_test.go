package main

import (
	"bytes"
	"strings"
	"testing"

	"estate_portal_backend/internal/listings/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledSeedParses(t *testing.T) {
	listings, err := parseSeed(bytes.NewReader(defaultSeed))
	require.NoError(t, err)
	require.Len(t, listings, 12)

	first := listings[0]
	assert.Equal(t, "Godrej Aristocrat", first.Name)
	assert.Equal(t, BuilderID("godrej_001"), first.BuilderID)
	assert.Equal(t, domain.StatusActive, first.Status)
	assert.Equal(t, "Golf Course Extension Road", first.Location.SubArea)
	assert.Equal(t, "2026-12-31", first.PossessionDate.String())
	assert.Equal(t, 1850, first.Specifications.AreaSqFt)
	assert.Equal(t, 2024, first.CreatedAt.Year())

	ids := map[string]bool{}
	for _, l := range listings {
		assert.False(t, ids[l.ID.String()], "duplicate id for %s", l.Name)
		ids[l.ID.String()] = true
	}
}

func TestSeedIDsAreStable(t *testing.T) {
	a, err := parseSeed(bytes.NewReader(defaultSeed))
	require.NoError(t, err)
	b, err := parseSeed(bytes.NewReader(defaultSeed))
	require.NoError(t, err)
	assert.Equal(t, a[3].ID, b[3].ID)
}

func TestSeedRejectsUnknownFieldsAndBadListings(t *testing.T) {
	_, err := parseSeed(strings.NewReader("listings:\n  - key: x\n    colour: blue\n"))
	assert.Error(t, err)

	_, err = parseSeed(strings.NewReader("listings:\n  - key: x\n    name: X\n    location: {city: Pune}\n    propertyType: Castle\n"))
	assert.Error(t, err)
}
