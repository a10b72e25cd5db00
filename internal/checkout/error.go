package checkout

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidCart      = errors.New("cannot start checkout with an empty cart")
	ErrNoPaymentMethod  = errors.New("no payment method attached to session")
	ErrNoShippingMethod = errors.New("no shipping method attached to session")

	// -- Resource State --
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrSessionExpired  = errors.New("checkout session expired")
	ErrForbidden       = errors.New("forbidden")

	// -- Persistence --
	ErrPersistence = errors.New("checkout session persistence failed")
)
