// internal/services/errors.go
package services

import "errors"

// Domain error taxonomy. Handlers map these onto HTTP statuses with errors.Is;
// anything not matching is treated as an internal failure. Authorization
// failures (wrong actor) and precondition failures (wrong status, missing
// fields) are deliberately distinct.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("operation not allowed for this actor")
	ErrInvalidState = errors.New("operation not allowed in the current state")
)
