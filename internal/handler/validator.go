package handler

import (
	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to echo's Validator interface.
// Constraint enforcement lives here rather than on the storage client, so
// the store can be swapped without losing it.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns the request validator used by every handler.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
