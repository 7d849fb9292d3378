package errors

import (
	"errors"
)

var (
	ErrPersistenceRead    = errors.New("failed reading persisted state")
	ErrPersistenceWrite   = errors.New("failed writing persisted state")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidItem        = errors.New("invalid cart item")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrGatewayFailure     = errors.New("order could not be submitted")
	ErrGatewayAmbiguous   = errors.New("order submission outcome unknown")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("missing or expired session")
	ErrTokenInvalid       = errors.New("invalid token")
)
