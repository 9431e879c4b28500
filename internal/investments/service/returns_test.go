package service

import (
	"testing"

	"estate_portal_backend/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnsCompoundsAnnually(t *testing.T) {
	got, err := Returns(5_000_000, 7_200_000, 4)
	require.NoError(t, err)
	assert.Equal(t, 2_200_000.0, got.TotalReturn)
	assert.Equal(t, 44.0, got.TotalReturnPercentage)
	// 1.44^(1/4) = 1.0954451...
	assert.Equal(t, 9.54, got.AnnualizedReturn)
}

func TestReturnsHandlesLoss(t *testing.T) {
	got, err := Returns(1_000_000, 810_000, 2)
	require.NoError(t, err)
	assert.Equal(t, -190_000.0, got.TotalReturn)
	assert.Equal(t, -19.0, got.TotalReturnPercentage)
	assert.Equal(t, -10.0, got.AnnualizedReturn)
}

func TestReturnsRejectsBadInput(t *testing.T) {
	cases := []struct {
		name                     string
		purchase, current, years float64
	}{
		{"zero purchase", 0, 100, 1},
		{"negative current", 100, -1, 1},
		{"zero years", 100, 120, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Returns(tc.purchase, tc.current, tc.years)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
		})
	}
}
