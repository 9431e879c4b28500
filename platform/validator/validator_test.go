package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Page  int    `form:"page" validate:"gte=0"`
}

type painted struct {
	Color string `json:"color" validate:"omitempty,even"`
}

func TestFieldsUsesJSONNames(t *testing.T) {
	v := New()
	err := v.Struct(sample{Page: -1})
	require.Error(t, err)

	fields := Fields(err)
	assert.Equal(t, map[string]string{"name": "required", "page": "gte"}, fields)
}

func TestRegisterValidation(t *testing.T) {
	v := New()
	require.NoError(t, v.RegisterValidation("even", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String())%2 == 0
	}))

	assert.NoError(t, v.Struct(painted{Color: "ab"}))
	assert.Equal(t, map[string]string{"color": "even"}, Fields(v.Struct(painted{Color: "abc"})))
}

func TestFieldsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, Fields(assert.AnError))
}
