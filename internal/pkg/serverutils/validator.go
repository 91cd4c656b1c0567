package serverutils

import (
	"github.com/go-playground/validator/v10"

	"ai-promptcraft-be/internal/pkg/apperr"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a DTO and converts failures
// into the InvalidInput variant.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return apperr.New(apperr.KindInvalidInput, err)
	}
	return nil
}
