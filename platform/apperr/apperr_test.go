package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusByKind(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:      http.StatusNotFound,
		KindValidation:    http.StatusBadRequest,
		KindConflict:      http.StatusConflict,
		KindForbidden:     http.StatusForbidden,
		KindUnauthorized:  http.StatusUnauthorized,
		KindInternal:      http.StatusInternalServerError,
		KindUnprocessable: http.StatusUnprocessableEntity,
		KindUnknown:       http.StatusBadRequest,
	}
	for kind, want := range cases {
		assert.Equal(t, want, New(kind, "x").HTTPStatus(), "kind %d", kind)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := Validation("invalid loan parameters").WithCode("INVALID_LOAN_PARAMETERS")
	err := Validation("tenure must be positive").WithCode("INVALID_LOAN_PARAMETERS")

	assert.True(t, errors.Is(err, sentinel))
	assert.False(t, errors.Is(Validation("other"), sentinel))
}

func TestGetKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("load listing: %w", NotFound("listing not found"))
	assert.Equal(t, KindNotFound, GetKind(err))
	assert.True(t, Is(err, KindNotFound))
	assert.Equal(t, KindUnknown, GetKind(errors.New("plain")))
}

func TestErrorMessageIncludesOp(t *testing.T) {
	err := Conflict("listing already sold").WithOp("UpdateStatus")
	assert.Equal(t, "UpdateStatus: listing already sold", err.Error())
}
