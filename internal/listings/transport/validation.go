package transport

import (
	"estate_portal_backend/internal/listings/domain"
	"estate_portal_backend/platform/validator"

	playground "github.com/go-playground/validator/v10"
)

// RegisterValidations adds the listing-specific tags: "sortkey" accepts any
// grid sort key and "bhk" accepts labels such as "3 BHK" or "4+ BHK".
func RegisterValidations(val *validator.Validator) error {
	if err := val.RegisterValidation("sortkey", func(fl playground.FieldLevel) bool {
		_, err := domain.ParseSortKey(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return val.RegisterValidation("bhk", func(fl playground.FieldLevel) bool {
		return domain.IsBHKLabel(fl.Field().String())
	})
}
