package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrMissingClaim            = errors.New("required token claim is missing")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
