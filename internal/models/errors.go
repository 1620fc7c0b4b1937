package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison with errors.Is. The presentation layer
// decides banner vs sign-in redirect off these, never off error strings.
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrMutationInFlight     = errors.New("another mutation is in flight")
	ErrCheckoutRequiresAuth = errors.New("checkout requires a signed-in session")
	ErrEmptyCart            = errors.New("cart is empty")
)

// GatewayError wraps a failed remote call with the gateway and operation
// that produced it.
type GatewayError struct {
	Gateway string
	Op      string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Gateway, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Gateway, e.Op, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGatewayError creates a GatewayError.
func NewGatewayError(gateway, op, message string, err error) *GatewayError {
	return &GatewayError{
		Gateway: gateway,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// IsAuthFailure reports whether err means the session is no longer valid and
// the shopper must sign in again.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrAuthenticationFailed)
}
