// Package validator plugs go-playground/validator into Echo's Validator
// hook.
package validator

import (
	playground "github.com/go-playground/validator/v10"

	domainerrors "shield/internal/domain/errors"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *playground.Validate
}

// New creates the request validator.
func New() *Validator {
	return &Validator{validate: playground.New()}
}

// Validate checks the bound request struct against its validate tags.
// Failures surface as the domain validation error so the error middleware
// renders a 400.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
