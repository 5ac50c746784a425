// internal/services/errors.go
package services

import (
	"errors"

	"github.com/nexcart/storefront/internal/utils"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidUpload      = errors.New("invalid upload")
)

// ValidationError is a user-correctable input problem. Nothing is written
// when a service returns one.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Message
}

// newValidationError converts validator output into a ValidationError
// describing the first failing field.
func newValidationError(err error) error {
	if errs := utils.GetValidationErrors(err); len(errs) > 0 {
		return &ValidationError{Field: errs[0].Field, Message: errs[0].Message}
	}
	return &ValidationError{Field: "input", Message: err.Error()}
}
