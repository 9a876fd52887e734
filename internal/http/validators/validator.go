package validators

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
)

// RequestValidator plugs go-playground/validator into echo.Context.Validate
// and turns field failures into client-facing errors.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return apperrors.ErrEmailRequired
		}
	}
	for _, fe := range fieldErrs {
		if fe.Field() == "Email" {
			return apperrors.ErrInvalidEmail
		}
	}
	return apperrors.InvalidInput(fieldErrs[0].Error())
}
