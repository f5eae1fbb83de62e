// Package service holds the domain logic: lifecycle validation for users and
// accounts, cascading deletes, atomic transfers and CSV export. Everything
// below the HTTP layer and above raw storage lives here.
package service

import "errors"

// Domain errors. The HTTP layer translates these into status codes; anything
// else surfaces as an internal error.
var (
	// ErrNotFound means a referenced entity id does not exist.
	ErrNotFound = errors.New("entity doesn't exist")

	// ErrInvalidData means input failed a domain validation rule: empty name
	// fields, negative balance, non-positive amount, self-transfer or
	// insufficient funds.
	ErrInvalidData = errors.New("invalid data")
)
