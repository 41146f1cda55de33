package serverutils

import (
	"fmt"
	"strings"

	"contract-iq-be/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into
// a validation error the error handler maps to 400.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validation("invalid request payload")
	}

	messages := make([]string, len(validationErrors))
	for i, fe := range validationErrors {
		messages[i] = fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag())
	}
	return apperrors.Validation(strings.Join(messages, "; "))
}
