// internal/application/usecase/errors.go
package usecase

import "errors"

// Shared failure taxonomy across the usecases.
//
// NotAuthenticated and policy refusals are handled by the immediate caller;
// remote-store failures are surfaced as wrapped errors with no retry.
var (
	ErrNotAuthenticated = errors.New("usecase: not authenticated")
	ErrInvalidArgument  = errors.New("usecase: invalid argument")
	ErrNotFound         = errors.New("usecase: not found")

	// ErrMinQuantity refuses quantity updates below the floor of 1
	// ("minimum 1 item"). Removal goes through RemoveFromCart instead.
	ErrMinQuantity = errors.New("usecase: minimum 1 item")
)
