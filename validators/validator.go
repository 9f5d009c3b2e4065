// Package validators adapts go-playground/validator to echo's Validator interface.
package validators

import (
	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validate *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validate: generation.NewValidator()}
}

// Validate implements echo.Validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}
