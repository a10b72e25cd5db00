package cart

import "errors"

var (
	// -- Authentication/Authorization --
	ErrCustomerNotAuthenticated = errors.New("customer not authenticated")

	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrNothingToUpdate = errors.New("nothing to update")

	// -- Resource State --
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartEmpty        = errors.New("cart is empty")

	// -- Catalog --
	ErrProductNotFound = errors.New("product not found")
)
