// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "bookbridge/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// RequestValidator validates bound request structs by their validate tags.
type RequestValidator struct {
	validate *playground.Validate
}

// New creates a RequestValidator backed by a shared validator instance.
func New() *RequestValidator {
	return &RequestValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
