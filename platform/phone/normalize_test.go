package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToIndia(t *testing.T) {
	got, err := Parse("98765 43210")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", got)
}

func TestParseKeepsExplicitCountryCode(t *testing.T) {
	got, err := Parse("+1 650-253-0000")
	require.NoError(t, err)
	assert.Equal(t, "+16502530000", got)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("12")
	assert.ErrorIs(t, err, ErrInvalidNumber)
	_, err = Parse("   ")
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestNormalizeE164FallsBackToTrimmedInput(t *testing.T) {
	assert.Equal(t, "abc", NormalizeE164("  abc "))
	assert.Equal(t, "+919876543210", NormalizeE164("+91 98765 43210"))
}
